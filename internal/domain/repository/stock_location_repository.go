package repository

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// StockLocationRepository define el puerto de persistencia para ubicaciones (DIP).
type StockLocationRepository interface {
	Repository[entity.StockLocation]
	// GetForUpdate bloquea la fila de la ubicación (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockLocation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error)
}
