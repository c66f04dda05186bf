package memory

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ monitoring.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción en memoria.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a una copia del estado; si fn falla, la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	entryRepo repository.LedgerEntryRepository,
	locationRepo repository.StockLocationRepository,
) error) error {
	return r.store.inTx(ctx, func(acc accessor) error {
		return fn(
			newLotRepo(r.store, acc),
			newLedgerEntryRepo(r.store, acc),
			newStockLocationRepo(r.store, acc),
		)
	})
}

// RunReadings ejecuta fn con el repositorio de lecturas atado a la transacción.
func (r *TxRunner) RunReadings(ctx context.Context, fn func(readingRepo repository.TemperatureReadingRepository) error) error {
	return r.store.inTx(ctx, func(acc accessor) error {
		return fn(newTemperatureReadingRepo(r.store, acc))
	})
}
