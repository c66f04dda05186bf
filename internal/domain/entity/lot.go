package entity

import "time"

// Lot representa un lote de vacuna producido por un fabricante (metadatos casi inmutables).
// Un lote existe mientras tenga al menos una entrada de ledger con dosis en alguna ubicación.
type Lot struct {
	ID           string
	BatchCode    string    // código del lote impreso por el fabricante
	Expiry       time.Time // fecha de vencimiento (solo fecha)
	Identifier   string    // código interno opcional (código de barras, etc.)
	ShortCode    string    // sigla
	ProductName  string
	ProductType  string
	Manufacturer string
	DosesPerUnit int // dosis por frasco; 1 para monodosis
	Opened       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
