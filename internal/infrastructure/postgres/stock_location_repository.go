package postgres

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var _ repository.StockLocationRepository = (*StockLocationRepo)(nil)

const tableLocations = "stock_locations"

var locationTable = tableDef[entity.StockLocation]{
	name:    tableLocations,
	columns: []string{"id", "room_id", "kind", "created_at", "updated_at"},
	scan: func(s scanner, l *entity.StockLocation) error {
		return s.Scan(&l.ID, &l.RoomID, &l.Kind, &l.CreatedAt, &l.UpdatedAt)
	},
	values: func(l *entity.StockLocation) []any {
		return []any{l.ID, l.RoomID, l.Kind, l.CreatedAt, l.UpdatedAt}
	},
}

// StockLocationRepo implementación de StockLocationRepository sobre PostgreSQL.
type StockLocationRepo struct {
	crudRepo[entity.StockLocation]
}

// NewStockLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewStockLocationRepository(q Querier) *StockLocationRepo {
	return &StockLocationRepo{crudRepo[entity.StockLocation]{q: q, def: locationTable}}
}

// GetForUpdate obtiene la ubicación y bloquea la fila. Las inserciones de entradas que la
// referencian esperan al fin de la transacción.
func (r *StockLocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLocation, error) {
	return r.queryOne(ctx, "lock "+tableLocations, r.selectSQL()+" WHERE id = $1 FOR UPDATE", id)
}

func (r *StockLocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	return r.queryList(ctx, "list "+tableLocations,
		r.selectSQL()+" ORDER BY created_at DESC, id LIMIT $1 OFFSET $2", limit, offset)
}
