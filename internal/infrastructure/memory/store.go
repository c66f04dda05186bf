// Package memory implementa los puertos de persistencia en memoria con semántica transaccional
// (snapshot + swap al confirmar). Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// Nombres de tabla (prefijo de las operaciones para FailOn).
const (
	TableLots      = "vaccine_lots"
	TableEntries   = "ledger_entries"
	TableLocations = "stock_locations"
	TableReadings  = "temperature_readings"
)

type state struct {
	lots      *table[entity.Lot]
	entries   *table[entity.LedgerEntry]
	locations *table[entity.StockLocation]
	readings  *table[entity.TemperatureReading]
}

func newState() *state {
	return &state{
		lots:      newTable(TableLots, func(l *entity.Lot) string { return l.ID }),
		entries:   newTable(TableEntries, func(e *entity.LedgerEntry) string { return e.ID }),
		locations: newTable(TableLocations, func(l *entity.StockLocation) string { return l.ID }),
		readings:  newTable(TableReadings, func(r *entity.TemperatureReading) string { return r.ID }),
	}
}

func (s *state) clone() *state {
	return &state{
		lots:      s.lots.clone(),
		entries:   s.entries.clone(),
		locations: s.locations.clone(),
		readings:  s.readings.clone(),
	}
}

// accessor ejecuta f sobre el estado visible para el repositorio (el de la tx o el global).
type accessor func(ctx context.Context, write bool, f func(*state) error) error

// Store guarda todas las tablas. Las transacciones se serializan (txMu) y trabajan sobre
// una copia; solo al confirmar la copia reemplaza el estado visible.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state

	faultMu sync.Mutex
	faults  map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), faults: map[string]error{}}
}

// FailOn hace que la próxima llamada a op devuelva err (una sola vez).
// op tiene la forma "<tabla>.<create|update|delete|get|list>" o "tx.begin" / "tx.commit".
func (s *Store) FailOn(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// direct accede al estado confirmado. Las escrituras fuera de tx esperan a que termine
// cualquier transacción en curso para no perderse al confirmarla.
func (s *Store) direct(ctx context.Context, write bool, f func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if write {
		s.txMu.Lock()
		defer s.txMu.Unlock()
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return f(s.st)
}

func (s *Store) inTx(ctx context.Context, fn func(accessor) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Persistence("begin transaction", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := s.fault("tx.begin"); err != nil {
		return domain.Persistence("begin transaction", err)
	}
	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	acc := func(ctx context.Context, _ bool, f func(*state) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return f(work)
	}
	if err := fn(acc); err != nil {
		return err
	}
	if err := s.fault("tx.commit"); err != nil {
		return domain.Persistence("commit transaction", err)
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Lots devuelve el repositorio de lotes fuera de transacción.
func (s *Store) Lots() *LotRepo { return newLotRepo(s, s.direct) }

// LedgerEntries devuelve el repositorio de entradas fuera de transacción.
func (s *Store) LedgerEntries() *LedgerEntryRepo { return newLedgerEntryRepo(s, s.direct) }

// StockLocations devuelve el repositorio de ubicaciones fuera de transacción.
func (s *Store) StockLocations() *StockLocationRepo { return newStockLocationRepo(s, s.direct) }

// TemperatureReadings devuelve el repositorio de lecturas fuera de transacción.
func (s *Store) TemperatureReadings() *TemperatureReadingRepo {
	return newTemperatureReadingRepo(s, s.direct)
}
