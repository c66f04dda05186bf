package monitoring

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// TxRunner ejecuta fn con el repositorio de lecturas atado a una transacción.
type TxRunner interface {
	RunReadings(ctx context.Context, fn func(readingRepo repository.TemperatureReadingRepository) error) error
}
