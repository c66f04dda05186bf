package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

var (
	ts          = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	entryCols   = []string{"id", "lot_id", "location_id", "quantity", "created_at", "updated_at"}
	lotCols     = lotTable.columns
	errConnLost = errors.New("conn closed")
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestLedgerEntryRepo_GetForUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewLedgerEntryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM ledger_entries WHERE id = $1 FOR UPDATE")).
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows(entryCols).AddRow("e1", "lot1", "loc1", 30, ts, ts))

	got, err := repo.GetForUpdate(context.Background(), "e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "lot1", got.LotID)
	assert.Equal(t, 30, got.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_FindByLotAndLocation_SinFilas(t *testing.T) {
	mock := newMock(t)
	repo := NewLedgerEntryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lot_id = $1 AND location_id = $2 FOR UPDATE")).
		WithArgs("lot1", "loc2").
		WillReturnRows(pgxmock.NewRows(entryCols))

	got, err := repo.FindByLotAndLocation(context.Background(), "lot1", "loc2")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_Create_ViolacionDeUnicidad(t *testing.T) {
	mock := newMock(t)
	repo := NewLedgerEntryRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ledger_entries (id, lot_id, location_id, quantity, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs("e2", "lot1", "loc2", 5, ts, ts).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

	err := repo.Create(context.Background(), &entity.LedgerEntry{
		ID: "e2", LotID: "lot1", LocationID: "loc2", Quantity: 5, CreatedAt: ts, UpdatedAt: ts,
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "unique violation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewLedgerEntryRepository(mock)
	e := &entity.LedgerEntry{ID: "e1", LotID: "lot1", LocationID: "loc1", Quantity: 20, CreatedAt: ts, UpdatedAt: ts}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE ledger_entries SET lot_id = $2, location_id = $3, quantity = $4, created_at = $5, updated_at = $6 WHERE id = $1")).
		WithArgs("e1", "lot1", "loc1", 20, ts, ts).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Update(context.Background(), e))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE ledger_entries SET")).
		WithArgs("e1", "lot1", "loc1", 20, ts, ts).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(context.Background(), e), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_CountAndList(t *testing.T) {
	mock := newMock(t)
	repo := NewLedgerEntryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM ledger_entries WHERE lot_id = $1")).
		WithArgs("lot1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	n, err := repo.CountByLot(context.Background(), "lot1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lot_id = $1 ORDER BY created_at, id")).
		WithArgs("lot1").
		WillReturnRows(pgxmock.NewRows(entryCols).
			AddRow("e1", "lot1", "loc1", 20, ts, ts).
			AddRow("e2", "lot1", "loc2", 10, ts, ts))
	list, err := repo.ListByLot(context.Background(), "lot1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "loc2", list[1].LocationID)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE location_id = $1")).
		WithArgs("loc1").
		WillReturnError(errConnLost)
	_, err = repo.ListByLocation(context.Background(), "loc1")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errConnLost)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotRepo_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewLotRepository(mock)
	expiry := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vaccine_lots WHERE id = $1")).
		WithArgs("lot1").
		WillReturnRows(pgxmock.NewRows(lotCols).
			AddRow("lot1", "ABC123", expiry, "", "BCG", "BCG", "viva", "Butantan", 10, false, ts, ts))

	got, err := repo.GetByID(context.Background(), "lot1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ABC123", got.BatchCode)
	assert.Equal(t, expiry, got.Expiry)
	assert.Equal(t, 10, got.DosesPerUnit)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vaccine_lots WHERE id = $1")).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(lotCols))
	got, err = repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemperatureReadingRepo_LatestByLocations(t *testing.T) {
	mock := newMock(t)
	repo := NewTemperatureReadingRepository(mock)

	got, err := repo.LatestByLocations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got, "sin ubicaciones no se consulta la base")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT ON (location_id)")).
		WithArgs([]string{"L1", "L2"}).
		WillReturnError(errConnLost)
	_, err = repo.LatestByLocations(context.Background(), []string{"L1", "L2"})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_CommitAndRollback(t *testing.T) {
	mock := newMock(t)
	runner := NewTxRunner(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM vaccine_lots WHERE id = $1 FOR UPDATE")).
		WithArgs("lot1").
		WillReturnRows(pgxmock.NewRows(lotCols).
			AddRow("lot1", "ABC123", ts, "", "", "BCG", "", "", 1, false, ts, ts))
	mock.ExpectCommit()

	err := runner.Run(ctx, func(lotRepo repository.LotRepository, _ repository.LedgerEntryRepository, _ repository.StockLocationRepository) error {
		lot, err := lotRepo.GetForUpdate(ctx, "lot1")
		require.NotNil(t, lot)
		return err
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ledger_entries WHERE id = $1")).
		WithArgs("e1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectRollback()

	errAbort := errors.New("abort")
	err = runner.Run(ctx, func(_ repository.LotRepository, entryRepo repository.LedgerEntryRepository, _ repository.StockLocationRepository) error {
		if err := entryRepo.Delete(ctx, "e1"); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_FalloEnBeginYCommit(t *testing.T) {
	mock := newMock(t)
	runner := NewTxRunner(mock)
	ctx := context.Background()
	noop := func(repository.TemperatureReadingRepository) error { return nil }

	mock.ExpectBegin().WillReturnError(errConnLost)
	assert.ErrorIs(t, runner.RunReadings(ctx, noop), domain.ErrPersistence)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errConnLost)
	mock.ExpectRollback()
	err := runner.RunReadings(ctx, noop)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errConnLost)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockLocationRepo_GetForUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewStockLocationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stock_locations WHERE id = $1 FOR UPDATE")).
		WithArgs("loc1").
		WillReturnRows(pgxmock.NewRows(locationTable.columns).AddRow("loc1", "sala-1", "refrigerador", ts, ts))

	got, err := repo.GetForUpdate(context.Background(), "loc1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "refrigerador", got.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockLocationRepo_Delete_ClaveForaneaEsConflicto(t *testing.T) {
	mock := newMock(t)
	repo := NewStockLocationRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stock_locations WHERE id = $1")).
		WithArgs("loc1").
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})

	err := repo.Delete(ctx, "loc1")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "foreign key violation")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stock_locations WHERE id = $1")).
		WithArgs("loc2").
		WillReturnError(errConnLost)

	err = repo.Delete(ctx, "loc2")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NotErrorIs(t, err, domain.ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}
