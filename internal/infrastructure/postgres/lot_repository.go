package postgres

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const tableLots = "vaccine_lots"

var lotTable = tableDef[entity.Lot]{
	name: tableLots,
	columns: []string{
		"id", "batch_code", "expiry", "identifier", "short_code", "product_name",
		"product_type", "manufacturer", "doses_per_unit", "opened", "created_at", "updated_at",
	},
	scan: func(s scanner, l *entity.Lot) error {
		return s.Scan(
			&l.ID, &l.BatchCode, &l.Expiry, &l.Identifier, &l.ShortCode, &l.ProductName,
			&l.ProductType, &l.Manufacturer, &l.DosesPerUnit, &l.Opened, &l.CreatedAt, &l.UpdatedAt,
		)
	},
	values: func(l *entity.Lot) []any {
		return []any{
			l.ID, l.BatchCode, l.Expiry, l.Identifier, l.ShortCode, l.ProductName,
			l.ProductType, l.Manufacturer, l.DosesPerUnit, l.Opened, l.CreatedAt, l.UpdatedAt,
		}
	},
}

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	crudRepo[entity.Lot]
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{crudRepo[entity.Lot]{q: q, def: lotTable}}
}

// GetForUpdate obtiene el lote y bloquea la fila hasta el fin de la transacción.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return r.queryOne(ctx, "lock "+tableLots, r.selectSQL()+" WHERE id = $1 FOR UPDATE", id)
}

// List lista lotes, los más recientes primero.
func (r *LotRepo) List(ctx context.Context, limit, offset int) ([]*entity.Lot, error) {
	return r.queryList(ctx, "list "+tableLots,
		r.selectSQL()+" ORDER BY created_at DESC, id LIMIT $1 OFFSET $2", limit, offset)
}
