package dto

import (
	"time"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// TransferRequest body para POST /api/stock-entries/:id/transfer.
type TransferRequest struct {
	Quantity              int    `json:"quantity"`
	DestinationLocationID string `json:"destination_location_id"`
}

// ConsumeRequest body para POST /api/stock-entries/:id/consume (uso, pérdida o descarte).
type ConsumeRequest struct {
	Quantity int `json:"quantity"`
}

// LedgerEntryResponse salida de una entrada (lote, ubicación) -> cantidad.
type LedgerEntryResponse struct {
	ID         string    `json:"id"`
	LotID      string    `json:"lot_id"`
	LocationID string    `json:"location_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateLotResponse salida de POST /api/lots.
type CreateLotResponse struct {
	Lot   LotResponse         `json:"lot"`
	Entry LedgerEntryResponse `json:"entry"`
}

// LotStockResponse lote con sus entradas en todas las ubicaciones.
type LotStockResponse struct {
	Lot     LotResponse           `json:"lot"`
	Entries []LedgerEntryResponse `json:"entries"`
	Total   int                   `json:"total"`
}

// NewLedgerEntryResponse mapea la entidad a su salida HTTP.
func NewLedgerEntryResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:         e.ID,
		LotID:      e.LotID,
		LocationID: e.LocationID,
		Quantity:   e.Quantity,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// NewLedgerEntryList mapea una lista (nunca nil, para serializar []).
func NewLedgerEntryList(list []*entity.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, NewLedgerEntryResponse(e))
	}
	return out
}
