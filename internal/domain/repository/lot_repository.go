package repository

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes de vacuna.
type LotRepository interface {
	Repository[entity.Lot]
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE). Serializa las mutaciones
	// del ledger sobre el mismo lote.
	GetForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Lot, error)
}
