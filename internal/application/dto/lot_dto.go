package dto

import (
	"time"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/inventory"
)

// CreateLotRequest body para POST /api/lots: lote nuevo y su primera entrada de stock.
type CreateLotRequest struct {
	BatchCode    string `json:"batch_code" validate:"required"`
	Expiry       string `json:"expiry" validate:"required"` // dd/mm/aaaa
	Identifier   string `json:"identifier"`
	ShortCode    string `json:"short_code"`
	ProductName  string `json:"product_name" validate:"required"`
	ProductType  string `json:"product_type"`
	Manufacturer string `json:"manufacturer"`
	DosesPerUnit int    `json:"doses_per_unit"`
	LocationID   string `json:"location_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
}

// UpdateLotRequest actualización parcial de metadatos del lote (no toca el stock).
type UpdateLotRequest struct {
	BatchCode    *string `json:"batch_code"`
	Expiry       *string `json:"expiry"`
	Identifier   *string `json:"identifier"`
	ShortCode    *string `json:"short_code"`
	ProductName  *string `json:"product_name"`
	ProductType  *string `json:"product_type"`
	Manufacturer *string `json:"manufacturer"`
	DosesPerUnit *int    `json:"doses_per_unit"`
	Opened       *bool   `json:"opened"`
}

// LotResponse salida de un lote. Expiry en dd/mm/aaaa, igual que la entrada.
type LotResponse struct {
	ID           string    `json:"id"`
	BatchCode    string    `json:"batch_code"`
	Expiry       string    `json:"expiry"`
	Identifier   string    `json:"identifier,omitempty"`
	ShortCode    string    `json:"short_code"`
	ProductName  string    `json:"product_name"`
	ProductType  string    `json:"product_type"`
	Manufacturer string    `json:"manufacturer"`
	DosesPerUnit int       `json:"doses_per_unit"`
	Opened       bool      `json:"opened"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LotListResponse lista paginada de lotes.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// NewLotResponse mapea la entidad a su salida HTTP.
func NewLotResponse(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:           l.ID,
		BatchCode:    l.BatchCode,
		Expiry:       l.Expiry.Format(inventory.ExpiryLayout),
		Identifier:   l.Identifier,
		ShortCode:    l.ShortCode,
		ProductName:  l.ProductName,
		ProductType:  l.ProductType,
		Manufacturer: l.Manufacturer,
		DosesPerUnit: l.DosesPerUnit,
		Opened:       l.Opened,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
