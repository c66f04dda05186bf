package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	rules "github.com/vacinas-ubs/estoque-vacinas/internal/domain/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// LedgerUseCase mantiene el inventario de vacunas: alta de lote con su primera entrada,
// traslado entre ubicaciones y consumo, con conservación exacta de dosis. Cada operación corre
// en una sola transacción (TxRunner) y bloquea la fila del lote antes de tocar sus entradas,
// de modo que dos operaciones sobre el mismo lote nunca leen la misma cantidad previa.
type LedgerUseCase struct {
	txRunner  TxRunner
	lotRepo   repository.LotRepository
	entryRepo repository.LedgerEntryRepository
	metrics   Metrics
	log       zerolog.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso. lotRepo y entryRepo se usan solo para consultas
// fuera de transacción. metrics puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	entryRepo repository.LedgerEntryRepository,
	metrics Metrics,
	log zerolog.Logger,
) *LedgerUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		lotRepo:   lotRepo,
		entryRepo: entryRepo,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// CreateLotInput entrada para registrar un lote nuevo junto con su primera entrada.
type CreateLotInput struct {
	BatchCode    string
	Expiry       string // dd/mm/aaaa
	Identifier   string
	ShortCode    string
	ProductName  string
	ProductType  string
	Manufacturer string
	DosesPerUnit int // 0 = 1 (monodosis)
	LocationID   string
	Quantity     int
}

// LotStock agrupa un lote con todas sus entradas y el total de dosis.
type LotStock struct {
	Lot     *entity.Lot
	Entries []*entity.LedgerEntry
	Total   int
}

// CreateLotWithEntry registra el lote y su entrada inicial en la ubicación indicada.
// O existen ambos registros o ninguno.
func (uc *LedgerUseCase) CreateLotWithEntry(ctx context.Context, in CreateLotInput) (lot *entity.Lot, entry *entity.LedgerEntry, err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation(OpCreateLot, in.Quantity, err, time.Since(start)) }()

	expiry, err := rules.ParseExpiry(in.Expiry)
	if err != nil {
		return nil, nil, err
	}
	if err = rules.ValidateQuantity(in.Quantity); err != nil {
		return nil, nil, err
	}
	if in.DosesPerUnit < 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.DosesPerUnit == 0 {
		in.DosesPerUnit = 1
	}
	if strings.TrimSpace(in.BatchCode) == "" || strings.TrimSpace(in.ProductName) == "" || in.LocationID == "" {
		err = domain.ErrInvalidInput
		return nil, nil, err
	}

	now := uc.now()
	lot = &entity.Lot{
		ID:           uuid.New().String(),
		BatchCode:    strings.TrimSpace(in.BatchCode),
		Expiry:       expiry,
		Identifier:   in.Identifier,
		ShortCode:    in.ShortCode,
		ProductName:  in.ProductName,
		ProductType:  in.ProductType,
		Manufacturer: in.Manufacturer,
		DosesPerUnit: in.DosesPerUnit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	entry = &entity.LedgerEntry{
		ID:         uuid.New().String(),
		LotID:      lot.ID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		entryRepo repository.LedgerEntryRepository,
		locationRepo repository.StockLocationRepository,
	) error {
		if err := requireLocation(ctx, locationRepo, in.LocationID); err != nil {
			return err
		}
		if err := lotRepo.Create(ctx, lot); err != nil {
			return err
		}
		return entryRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.log.Info().
		Str("lot_id", lot.ID).
		Str("batch_code", lot.BatchCode).
		Str("location_id", entry.LocationID).
		Int("quantity", entry.Quantity).
		Msg("lote registrado")
	return lot, entry, nil
}

// Transfer mueve quantity dosis de la entrada entryID a la ubicación destino y devuelve la entrada
// destino con su nueva cantidad. Si se traslada todo, la entrada origen se elimina.
func (uc *LedgerUseCase) Transfer(ctx context.Context, entryID string, quantity int, destinationLocationID string) (result *entity.LedgerEntry, err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation(OpTransfer, quantity, err, time.Since(start)) }()

	if err = rules.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if entryID == "" || destinationLocationID == "" {
		err = domain.ErrInvalidInput
		return nil, err
	}

	now := uc.now()
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		entryRepo repository.LedgerEntryRepository,
		locationRepo repository.StockLocationRepository,
	) error {
		source, err := lockEntry(ctx, lotRepo, entryRepo, entryID)
		if err != nil {
			return err
		}
		if source.LocationID == destinationLocationID {
			return domain.ErrSameLocation
		}
		if err := rules.ValidateWithdrawal(quantity, source.Quantity); err != nil {
			return err
		}
		if err := requireLocation(ctx, locationRepo, destinationLocationID); err != nil {
			return err
		}

		if rules.Drains(quantity, source.Quantity) {
			if err := entryRepo.Delete(ctx, source.ID); err != nil {
				return err
			}
		} else {
			source.Quantity -= quantity
			source.UpdatedAt = now
			if err := entryRepo.Update(ctx, source); err != nil {
				return err
			}
		}

		target, err := entryRepo.FindByLotAndLocation(ctx, source.LotID, destinationLocationID)
		if err != nil {
			return err
		}
		if target != nil {
			target.Quantity += quantity
			target.UpdatedAt = now
			if err := entryRepo.Update(ctx, target); err != nil {
				return err
			}
		} else {
			target = &entity.LedgerEntry{
				ID:         uuid.New().String(),
				LotID:      source.LotID,
				LocationID: destinationLocationID,
				Quantity:   quantity,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := entryRepo.Create(ctx, target); err != nil {
				return err
			}
		}
		result = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("entry_id", entryID).
		Str("lot_id", result.LotID).
		Str("to_location_id", destinationLocationID).
		Int("quantity", quantity).
		Msg("traslado registrado")
	return result, nil
}

// Consume retira quantity dosis de la entrada. Si la entrada queda en cero se elimina, y si era
// la última entrada del lote en cualquier ubicación, el lote también se elimina.
func (uc *LedgerUseCase) Consume(ctx context.Context, entryID string, quantity int) (err error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperation(OpConsume, quantity, err, time.Since(start)) }()

	if err = rules.ValidateQuantity(quantity); err != nil {
		return err
	}
	if entryID == "" {
		err = domain.ErrInvalidInput
		return err
	}

	var retiredLotID string
	now := uc.now()
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		entryRepo repository.LedgerEntryRepository,
		_ repository.StockLocationRepository,
	) error {
		entry, err := lockEntry(ctx, lotRepo, entryRepo, entryID)
		if err != nil {
			return err
		}
		if err := rules.ValidateWithdrawal(quantity, entry.Quantity); err != nil {
			return err
		}

		if !rules.Drains(quantity, entry.Quantity) {
			entry.Quantity -= quantity
			entry.UpdatedAt = now
			return entryRepo.Update(ctx, entry)
		}

		if err := entryRepo.Delete(ctx, entry.ID); err != nil {
			return err
		}
		remaining, err := entryRepo.CountByLot(ctx, entry.LotID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		if err := lotRepo.Delete(ctx, entry.LotID); err != nil {
			return err
		}
		retiredLotID = entry.LotID
		return nil
	})
	if err != nil {
		return err
	}

	if retiredLotID != "" {
		uc.metrics.LotRetired()
		uc.log.Info().Str("lot_id", retiredLotID).Msg("lote sin stock eliminado")
	}
	return nil
}

// GetEntry obtiene una entrada por ID.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ListEntriesByLot lista las entradas de un lote en todas las ubicaciones.
func (uc *LedgerUseCase) ListEntriesByLot(ctx context.Context, lotID string) ([]*entity.LedgerEntry, error) {
	return uc.entryRepo.ListByLot(ctx, lotID)
}

// ListEntriesByLocation lista las entradas presentes en una ubicación.
func (uc *LedgerUseCase) ListEntriesByLocation(ctx context.Context, locationID string) ([]*entity.LedgerEntry, error) {
	return uc.entryRepo.ListByLocation(ctx, locationID)
}

// LotStock devuelve el lote con sus entradas y el total de dosis en todas las ubicaciones.
func (uc *LedgerUseCase) LotStock(ctx context.Context, lotID string) (*LotStock, error) {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.entryRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	out := &LotStock{Lot: lot, Entries: entries}
	for _, e := range entries {
		out.Total += e.Quantity
	}
	return out, nil
}

// lockEntry carga la entrada, bloquea la fila de su lote y relee la entrada con FOR UPDATE.
// Entre la primera lectura y el bloqueo otra transacción pudo haberla eliminado.
func lockEntry(
	ctx context.Context,
	lotRepo repository.LotRepository,
	entryRepo repository.LedgerEntryRepository,
	entryID string,
) (*entity.LedgerEntry, error) {
	entry, err := entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	lot, err := lotRepo.GetForUpdate(ctx, entry.LotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	entry, err = entryRepo.GetForUpdate(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// requireLocation bloquea la ubicación hasta el fin de la transacción: un borrado concurrente
// espera a que la entrada exista (y entonces ve el conflicto) o la ubicación ya no aparece.
func requireLocation(ctx context.Context, locationRepo repository.StockLocationRepository, id string) error {
	loc, err := locationRepo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return nil
}
