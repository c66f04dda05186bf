package dto

import "time"

// CreateStockLocationRequest entrada para registrar una ubicación (refrigerador, caja térmica).
type CreateStockLocationRequest struct {
	RoomID string `json:"room_id"`
	Kind   string `json:"kind" validate:"required,min=1,max=100"`
}

// UpdateStockLocationRequest actualización parcial de una ubicación.
type UpdateStockLocationRequest struct {
	RoomID *string `json:"room_id"`
	Kind   *string `json:"kind"`
}

// StockLocationResponse salida de una ubicación.
type StockLocationResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockLocationListResponse lista paginada de ubicaciones.
type StockLocationListResponse struct {
	Items []StockLocationResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
