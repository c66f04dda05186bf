package postgres

import (
	"context"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and monitoring.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ monitoring.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	entryRepo repository.LedgerEntryRepository,
	locationRepo repository.StockLocationRepository,
) error) error {
	return r.within(ctx, func(q Querier) error {
		return fn(NewLotRepository(q), NewLedgerEntryRepository(q), NewStockLocationRepository(q))
	})
}

// RunReadings inicia una transacción con el repositorio de lecturas (inserción en lote).
func (r *TxRunner) RunReadings(ctx context.Context, fn func(readingRepo repository.TemperatureReadingRepository) error) error {
	return r.within(ctx, func(q Querier) error {
		return fn(NewTemperatureReadingRepository(q))
	})
}

func (r *TxRunner) within(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Persistence("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Persistence("commit transaction", err)
	}
	return nil
}
