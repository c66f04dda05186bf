package repository

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// LedgerEntryRepository define el puerto para las entradas (lote, ubicación) -> cantidad.
// Usado dentro de transacciones para garantizar consistencia.
type LedgerEntryRepository interface {
	Repository[entity.LedgerEntry]
	// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// FindByLotAndLocation busca por la clave compuesta y bloquea la fila si existe.
	FindByLotAndLocation(ctx context.Context, lotID, locationID string) (*entity.LedgerEntry, error)
	ListByLot(ctx context.Context, lotID string) ([]*entity.LedgerEntry, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.LedgerEntry, error)
	CountByLot(ctx context.Context, lotID string) (int, error)
}
