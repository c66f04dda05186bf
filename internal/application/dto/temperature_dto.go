package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
)

// RecordTemperatureRequest una lectura dentro del body (array) de POST /api/temperature-readings.
type RecordTemperatureRequest struct {
	LocationID string          `json:"location_id"`
	Celsius    decimal.Decimal `json:"celsius"`
	RecordedAt *time.Time      `json:"recorded_at,omitempty"`
	RecordedBy string          `json:"recorded_by"`
}

// TemperatureReadingResponse salida de una lectura.
type TemperatureReadingResponse struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	Celsius    decimal.Decimal `json:"celsius"`
	RecordedAt time.Time       `json:"recorded_at"`
	RecordedBy string          `json:"recorded_by,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// UpdateTemperatureRequest corrección parcial de una lectura (PATCH /api/temperature-readings/:id).
type UpdateTemperatureRequest struct {
	Celsius    *decimal.Decimal `json:"celsius"`
	RecordedAt *time.Time       `json:"recorded_at"`
	RecordedBy *string          `json:"recorded_by"`
}

// NewTemperatureReadingResponse mapea la entidad a su salida HTTP.
func NewTemperatureReadingResponse(r *entity.TemperatureReading) TemperatureReadingResponse {
	return TemperatureReadingResponse{
		ID:         r.ID,
		LocationID: r.LocationID,
		Celsius:    r.Celsius,
		RecordedAt: r.RecordedAt,
		RecordedBy: r.RecordedBy,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewTemperatureReadingList mapea lecturas preservando el orden.
func NewTemperatureReadingList(list []*entity.TemperatureReading) []TemperatureReadingResponse {
	out := make([]TemperatureReadingResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewTemperatureReadingResponse(r))
	}
	return out
}
