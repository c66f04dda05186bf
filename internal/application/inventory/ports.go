package inventory

import (
	"context"
	"time"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el ledger: si fn devuelve error, nada de lo escrito se confirma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		entryRepo repository.LedgerEntryRepository,
		locationRepo repository.StockLocationRepository,
	) error) error
}

// Operaciones del ledger (etiqueta "operation" en métricas y logs).
const (
	OpCreateLot = "create_lot"
	OpTransfer  = "transfer"
	OpConsume   = "consume"
)

// Metrics recibe el resultado de cada operación del ledger.
type Metrics interface {
	ObserveOperation(op string, doses int, err error, elapsed time.Duration)
	LotRetired()
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, int, error, time.Duration) {}
func (nopMetrics) LotRetired()                                        {}
