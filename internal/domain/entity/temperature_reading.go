package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemperatureReading es una lectura de temperatura de una ubicación.
type TemperatureReading struct {
	ID         string
	LocationID string
	Celsius    decimal.Decimal
	RecordedAt time.Time
	RecordedBy string // ID del profesional responsable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
