package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// StockLocationUseCase casos de uso CRUD para ubicaciones (puntos de almacenamiento).
// Delete corre dentro de una transacción del ledger para no competir con un traslado
// que esté creando una entrada en la misma ubicación.
type StockLocationUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.StockLocationRepository
}

// NewStockLocationUseCase construye el caso de uso.
func NewStockLocationUseCase(txRunner inventory.TxRunner, repo repository.StockLocationRepository) *StockLocationUseCase {
	return &StockLocationUseCase{txRunner: txRunner, repo: repo}
}

// Create registra una nueva ubicación.
func (uc *StockLocationUseCase) Create(ctx context.Context, in dto.CreateStockLocationRequest) (*dto.StockLocationResponse, error) {
	if in.Kind == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loc := &entity.StockLocation{
		ID:        uuid.New().String(),
		RoomID:    in.RoomID,
		Kind:      in.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toStockLocationResponse(loc), nil
}

// GetByID obtiene una ubicación por ID. Devuelve (nil, nil) si no existe.
func (uc *StockLocationUseCase) GetByID(ctx context.Context, id string) (*dto.StockLocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return toStockLocationResponse(loc), nil
}

// List lista ubicaciones con paginación.
func (uc *StockLocationUseCase) List(ctx context.Context, limit, offset int) (*dto.StockLocationListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toStockLocationResponse(l))
	}
	return &dto.StockLocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update corrige sala y tipo de la ubicación. Devuelve (nil, nil) si no existe.
func (uc *StockLocationUseCase) Update(ctx context.Context, id string, in dto.UpdateStockLocationRequest) (*dto.StockLocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	if in.Kind != nil {
		if strings.TrimSpace(*in.Kind) == "" {
			return nil, domain.ErrInvalidInput
		}
		loc.Kind = *in.Kind
	}
	if in.RoomID != nil {
		loc.RoomID = *in.RoomID
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toStockLocationResponse(loc), nil
}

// Delete elimina una ubicación vacía. Con dosis registradas devuelve ErrConflict.
// La fila de la ubicación queda bloqueada mientras se comprueba que no tenga entradas.
func (uc *StockLocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.LotRepository,
		entryRepo repository.LedgerEntryRepository,
		locationRepo repository.StockLocationRepository,
	) error {
		loc, err := locationRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
		entries, err := entryRepo.ListByLocation(ctx, id)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return domain.ErrConflict
		}
		return locationRepo.Delete(ctx, id)
	})
}

func toStockLocationResponse(l *entity.StockLocation) *dto.StockLocationResponse {
	if l == nil {
		return nil
	}
	return &dto.StockLocationResponse{
		ID:        l.ID,
		RoomID:    l.RoomID,
		Kind:      l.Kind,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
