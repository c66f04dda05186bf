package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
)

// LotUseCase consulta y corrige metadatos de lotes. El alta (con su primera entrada) y la
// baja (al agotarse el stock) pertenecen al ledger, no a este caso de uso.
type LotUseCase struct {
	repo repository.LotRepository
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repo repository.LotRepository) *LotUseCase {
	return &LotUseCase{repo: repo}
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (uc *LotUseCase) GetByID(ctx context.Context, id string) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	out := dto.NewLotResponse(lot)
	return &out, nil
}

// List lista lotes con paginación (más recientes primero).
func (uc *LotUseCase) List(ctx context.Context, limit, offset int) (*dto.LotListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LotResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.NewLotResponse(l))
	}
	return &dto.LotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update corrige metadatos (vencimiento, fabricante, frasco abierto, etc.). Devuelve (nil, nil)
// si el lote no existe.
func (uc *LotUseCase) Update(ctx context.Context, id string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	if in.Expiry != nil {
		expiry, err := inventory.ParseExpiry(*in.Expiry)
		if err != nil {
			return nil, err
		}
		lot.Expiry = expiry
	}
	if in.BatchCode != nil {
		if strings.TrimSpace(*in.BatchCode) == "" {
			return nil, domain.ErrInvalidInput
		}
		lot.BatchCode = strings.TrimSpace(*in.BatchCode)
	}
	if in.ProductName != nil {
		if strings.TrimSpace(*in.ProductName) == "" {
			return nil, domain.ErrInvalidInput
		}
		lot.ProductName = *in.ProductName
	}
	if in.DosesPerUnit != nil {
		if *in.DosesPerUnit <= 0 {
			return nil, domain.ErrInvalidInput
		}
		lot.DosesPerUnit = *in.DosesPerUnit
	}
	if in.Identifier != nil {
		lot.Identifier = *in.Identifier
	}
	if in.ShortCode != nil {
		lot.ShortCode = *in.ShortCode
	}
	if in.ProductType != nil {
		lot.ProductType = *in.ProductType
	}
	if in.Manufacturer != nil {
		lot.Manufacturer = *in.Manufacturer
	}
	if in.Opened != nil {
		lot.Opened = *in.Opened
	}
	lot.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, lot); err != nil {
		return nil, err
	}
	out := dto.NewLotResponse(lot)
	return &out, nil
}
