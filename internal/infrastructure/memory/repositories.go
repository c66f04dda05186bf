package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var (
	_ repository.LotRepository                = (*LotRepo)(nil)
	_ repository.LedgerEntryRepository        = (*LedgerEntryRepo)(nil)
	_ repository.StockLocationRepository      = (*StockLocationRepo)(nil)
	_ repository.TemperatureReadingRepository = (*TemperatureReadingRepo)(nil)
)

var (
	errForeignKey = errors.New("violates foreign key constraint")
	errCheck      = errors.New("violates check constraint quantity > 0")
)

// LotRepo lotes en memoria.
type LotRepo struct {
	*crud[entity.Lot]
}

func newLotRepo(s *Store, acc accessor) *LotRepo {
	return &LotRepo{&crud[entity.Lot]{
		store: s, access: acc, name: TableLots,
		pick: func(st *state) *table[entity.Lot] { return st.lots },
	}}
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya están serializadas.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return r.GetByID(ctx, id)
}

func (r *LotRepo) List(ctx context.Context, limit, offset int) ([]*entity.Lot, error) {
	all, err := r.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	return page(all, limit, offset), nil
}

// Delete rechaza borrar un lote que aún tiene entradas (ON DELETE RESTRICT).
func (r *LotRepo) Delete(ctx context.Context, id string) error {
	if err := r.fail("delete"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error {
		if len(st.entries.filter(func(e *entity.LedgerEntry) bool { return e.LotID == id })) > 0 {
			return errForeignKey
		}
		st.lots.delete(id)
		return nil
	})
	return deleteError(TableLots, err)
}

// deleteError traduce la restricción ON DELETE RESTRICT a ErrConflict, como el adaptador SQL.
func deleteError(table string, err error) error {
	if errors.Is(err, errForeignKey) {
		return domain.Conflict("delete "+table+" (foreign key violation)", err)
	}
	return domain.Persistence("delete "+table, err)
}

// LedgerEntryRepo entradas del ledger en memoria.
type LedgerEntryRepo struct {
	*crud[entity.LedgerEntry]
}

func newLedgerEntryRepo(s *Store, acc accessor) *LedgerEntryRepo {
	return &LedgerEntryRepo{&crud[entity.LedgerEntry]{
		store: s, access: acc, name: TableEntries,
		pick: func(st *state) *table[entity.LedgerEntry] { return st.entries },
	}}
}

// Create aplica las mismas restricciones que el esquema SQL: (lot_id, location_id) único,
// quantity > 0 y claves foráneas a lote y ubicación.
func (r *LedgerEntryRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	if err := r.fail("create"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error {
		if e.Quantity <= 0 {
			return errCheck
		}
		if st.lots.get(e.LotID) == nil || st.locations.get(e.LocationID) == nil {
			return errForeignKey
		}
		if findEntry(st, e.LotID, e.LocationID) != nil {
			return errDuplicateKey
		}
		return st.entries.insert(e)
	})
	return domain.Persistence("insert "+TableEntries, err)
}

func (r *LedgerEntryRepo) Update(ctx context.Context, e *entity.LedgerEntry) error {
	if e.Quantity <= 0 {
		return domain.Persistence("update "+TableEntries, errCheck)
	}
	return r.crud.Update(ctx, e)
}

func (r *LedgerEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *LedgerEntryRepo) FindByLotAndLocation(ctx context.Context, lotID, locationID string) (*entity.LedgerEntry, error) {
	list, err := r.list(ctx, func(e *entity.LedgerEntry) bool {
		return e.LotID == lotID && e.LocationID == locationID
	})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *LedgerEntryRepo) ListByLot(ctx context.Context, lotID string) ([]*entity.LedgerEntry, error) {
	return r.list(ctx, func(e *entity.LedgerEntry) bool { return e.LotID == lotID })
}

func (r *LedgerEntryRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.LedgerEntry, error) {
	return r.list(ctx, func(e *entity.LedgerEntry) bool { return e.LocationID == locationID })
}

func (r *LedgerEntryRepo) CountByLot(ctx context.Context, lotID string) (int, error) {
	list, err := r.ListByLot(ctx, lotID)
	return len(list), err
}

func findEntry(st *state, lotID, locationID string) *entity.LedgerEntry {
	list := st.entries.filter(func(e *entity.LedgerEntry) bool {
		return e.LotID == lotID && e.LocationID == locationID
	})
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// StockLocationRepo ubicaciones en memoria.
type StockLocationRepo struct {
	*crud[entity.StockLocation]
}

func newStockLocationRepo(s *Store, acc accessor) *StockLocationRepo {
	return &StockLocationRepo{&crud[entity.StockLocation]{
		store: s, access: acc, name: TableLocations,
		pick: func(st *state) *table[entity.StockLocation] { return st.locations },
	}}
}

func (r *StockLocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	all, err := r.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	return page(all, limit, offset), nil
}

// Delete rechaza borrar una ubicación con entradas y elimina sus lecturas de temperatura.
func (r *StockLocationRepo) Delete(ctx context.Context, id string) error {
	if err := r.fail("delete"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error {
		if len(st.entries.filter(func(e *entity.LedgerEntry) bool { return e.LocationID == id })) > 0 {
			return errForeignKey
		}
		for _, rd := range st.readings.filter(func(rd *entity.TemperatureReading) bool { return rd.LocationID == id }) {
			st.readings.delete(rd.ID)
		}
		st.locations.delete(id)
		return nil
	})
	return deleteError(TableLocations, err)
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya están serializadas.
func (r *StockLocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLocation, error) {
	return r.GetByID(ctx, id)
}

// TemperatureReadingRepo lecturas de temperatura en memoria.
type TemperatureReadingRepo struct {
	*crud[entity.TemperatureReading]
}

func newTemperatureReadingRepo(s *Store, acc accessor) *TemperatureReadingRepo {
	return &TemperatureReadingRepo{&crud[entity.TemperatureReading]{
		store: s, access: acc, name: TableReadings,
		pick: func(st *state) *table[entity.TemperatureReading] { return st.readings },
	}}
}

func (r *TemperatureReadingRepo) Create(ctx context.Context, rd *entity.TemperatureReading) error {
	if err := r.fail("create"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error {
		if st.locations.get(rd.LocationID) == nil {
			return errForeignKey
		}
		return st.readings.insert(rd)
	})
	return domain.Persistence("insert "+TableReadings, err)
}

// ListByLocation lista las lecturas de la ubicación, más recientes (recorded_at) primero.
func (r *TemperatureReadingRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.TemperatureReading, error) {
	list, err := r.list(ctx, func(rd *entity.TemperatureReading) bool { return rd.LocationID == locationID })
	if err != nil {
		return nil, err
	}
	// page invierte el orden: ordenar ascendente para obtener descendente.
	sort.SliceStable(list, func(i, j int) bool { return list[i].RecordedAt.Before(list[j].RecordedAt) })
	return page(list, limit, offset), nil
}

// LatestByLocations recorre las lecturas en orden de inserción; ante empate en updated_at
// gana la última insertada.
func (r *TemperatureReadingRepo) LatestByLocations(ctx context.Context, locationIDs []string) (map[string]*entity.TemperatureReading, error) {
	wanted := make(map[string]struct{}, len(locationIDs))
	for _, id := range locationIDs {
		wanted[id] = struct{}{}
	}
	list, err := r.list(ctx, func(rd *entity.TemperatureReading) bool {
		_, ok := wanted[rd.LocationID]
		return ok
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.TemperatureReading)
	for _, rd := range list {
		cur, ok := out[rd.LocationID]
		if !ok || !rd.UpdatedAt.Before(cur.UpdatedAt) {
			out[rd.LocationID] = rd
		}
	}
	return out, nil
}
