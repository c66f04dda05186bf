package postgres

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

const tableEntries = "ledger_entries"

var entryTable = tableDef[entity.LedgerEntry]{
	name:    tableEntries,
	columns: []string{"id", "lot_id", "location_id", "quantity", "created_at", "updated_at"},
	scan: func(s scanner, e *entity.LedgerEntry) error {
		return s.Scan(&e.ID, &e.LotID, &e.LocationID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt)
	},
	values: func(e *entity.LedgerEntry) []any {
		return []any{e.ID, e.LotID, e.LocationID, e.Quantity, e.CreatedAt, e.UpdatedAt}
	},
}

// LedgerEntryRepo implementación de LedgerEntryRepository sobre PostgreSQL (usable con pool o tx).
// La unicidad (lot_id, location_id) y quantity > 0 las garantizan constraints de la tabla.
type LedgerEntryRepo struct {
	crudRepo[entity.LedgerEntry]
}

// NewLedgerEntryRepository construye el adaptador de entradas. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{crudRepo[entity.LedgerEntry]{q: q, def: entryTable}}
}

// GetForUpdate obtiene la entrada y bloquea la fila para update (SELECT FOR UPDATE).
func (r *LedgerEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.queryOne(ctx, "lock "+tableEntries, r.selectSQL()+" WHERE id = $1 FOR UPDATE", id)
}

// FindByLotAndLocation busca la entrada del lote en la ubicación. (nil, nil) si no existe.
func (r *LedgerEntryRepo) FindByLotAndLocation(ctx context.Context, lotID, locationID string) (*entity.LedgerEntry, error) {
	return r.queryOne(ctx, "find "+tableEntries,
		r.selectSQL()+" WHERE lot_id = $1 AND location_id = $2 FOR UPDATE", lotID, locationID)
}

func (r *LedgerEntryRepo) ListByLot(ctx context.Context, lotID string) ([]*entity.LedgerEntry, error) {
	return r.queryList(ctx, "list "+tableEntries,
		r.selectSQL()+" WHERE lot_id = $1 ORDER BY created_at, id", lotID)
}

func (r *LedgerEntryRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.LedgerEntry, error) {
	return r.queryList(ctx, "list "+tableEntries,
		r.selectSQL()+" WHERE location_id = $1 ORDER BY created_at, id", locationID)
}

// CountByLot cuenta las entradas restantes del lote en todas las ubicaciones.
func (r *LedgerEntryRepo) CountByLot(ctx context.Context, lotID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, "SELECT count(*) FROM "+tableEntries+" WHERE lot_id = $1", lotID).Scan(&n)
	if err != nil {
		return 0, domain.Persistence("count "+tableEntries, err)
	}
	return n, nil
}
