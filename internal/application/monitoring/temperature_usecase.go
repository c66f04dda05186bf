package monitoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// TemperatureUseCase registra lecturas de temperatura y consulta la más reciente por ubicación.
type TemperatureUseCase struct {
	txRunner TxRunner
	repo     repository.TemperatureReadingRepository
	now      func() time.Time
}

// NewTemperatureUseCase construye el caso de uso.
func NewTemperatureUseCase(txRunner TxRunner, repo repository.TemperatureReadingRepository) *TemperatureUseCase {
	return &TemperatureUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// RecordReadingInput una lectura a registrar. RecordedAt vacío = ahora.
type RecordReadingInput struct {
	LocationID string
	Celsius    decimal.Decimal
	RecordedAt time.Time
	RecordedBy string
}

// Record inserta un lote de lecturas (típicamente de un dispositivo) en una sola transacción.
func (uc *TemperatureUseCase) Record(ctx context.Context, in []RecordReadingInput) ([]*entity.TemperatureReading, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	readings := make([]*entity.TemperatureReading, 0, len(in))
	for _, r := range in {
		if r.LocationID == "" {
			return nil, domain.ErrInvalidInput
		}
		recordedAt := r.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = now
		}
		readings = append(readings, &entity.TemperatureReading{
			ID:         uuid.New().String(),
			LocationID: r.LocationID,
			Celsius:    r.Celsius,
			RecordedAt: recordedAt,
			RecordedBy: r.RecordedBy,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	err := uc.txRunner.RunReadings(ctx, func(readingRepo repository.TemperatureReadingRepository) error {
		for _, r := range readings {
			if err := readingRepo.Create(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// ListByLocation lista el historial de una ubicación, más recientes primero.
func (uc *TemperatureUseCase) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.TemperatureReading, error) {
	return uc.repo.ListByLocation(ctx, locationID, limit, offset)
}

// Get obtiene una lectura por ID. Devuelve ErrNotFound si no existe.
func (uc *TemperatureUseCase) Get(ctx context.Context, id string) (*entity.TemperatureReading, error) {
	reading, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, domain.ErrNotFound
	}
	return reading, nil
}

// UpdateReadingInput corrección parcial de una lectura. Los campos nil no cambian.
type UpdateReadingInput struct {
	Celsius    *decimal.Decimal
	RecordedAt *time.Time
	RecordedBy *string
}

// Update corrige una lectura. updated_at avanza, así que la lectura corregida pasa a ser la
// última de su ubicación para LatestByLocation.
func (uc *TemperatureUseCase) Update(ctx context.Context, id string, in UpdateReadingInput) (*entity.TemperatureReading, error) {
	if in.RecordedAt != nil && in.RecordedAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.TemperatureReading
	err := uc.txRunner.RunReadings(ctx, func(readingRepo repository.TemperatureReadingRepository) error {
		reading, err := readingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if reading == nil {
			return domain.ErrNotFound
		}
		if in.Celsius != nil {
			reading.Celsius = *in.Celsius
		}
		if in.RecordedAt != nil {
			reading.RecordedAt = *in.RecordedAt
		}
		if in.RecordedBy != nil {
			reading.RecordedBy = *in.RecordedBy
		}
		reading.UpdatedAt = uc.now()
		if err := readingRepo.Update(ctx, reading); err != nil {
			return err
		}
		out = reading
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina una lectura. Devuelve ErrNotFound si no existe.
func (uc *TemperatureUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunReadings(ctx, func(readingRepo repository.TemperatureReadingRepository) error {
		reading, err := readingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if reading == nil {
			return domain.ErrNotFound
		}
		return readingRepo.Delete(ctx, id)
	})
}

// LatestByLocation devuelve, para cada ubicación con al menos una lectura, la más recientemente
// actualizada. Las ubicaciones sin lecturas se omiten (no es error). El orden es el de la primera
// aparición de cada ID en locationIDs.
func (uc *TemperatureUseCase) LatestByLocation(ctx context.Context, locationIDs []string) (*LatestReadings, error) {
	out := &LatestReadings{byLocation: map[string]*entity.TemperatureReading{}}
	keys := dedupe(locationIDs)
	if len(keys) == 0 {
		return out, nil
	}
	latest, err := uc.repo.LatestByLocations(ctx, keys)
	if err != nil {
		return nil, err
	}
	for _, id := range keys {
		if r, ok := latest[id]; ok && r != nil {
			out.order = append(out.order, id)
			out.byLocation[id] = r
		}
	}
	return out, nil
}

// LatestReadings mapa ordenado ubicación -> lectura más reciente.
type LatestReadings struct {
	order      []string
	byLocation map[string]*entity.TemperatureReading
}

// Get devuelve la lectura de la ubicación, si tiene.
func (l *LatestReadings) Get(locationID string) (*entity.TemperatureReading, bool) {
	r, ok := l.byLocation[locationID]
	return r, ok
}

// Locations devuelve las ubicaciones presentes, en el orden de la consulta.
func (l *LatestReadings) Locations() []string {
	return append([]string(nil), l.order...)
}

// Readings devuelve las lecturas en el orden de la consulta.
func (l *LatestReadings) Readings() []*entity.TemperatureReading {
	out := make([]*entity.TemperatureReading, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byLocation[id])
	}
	return out
}

func (l *LatestReadings) Len() int { return len(l.order) }

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
