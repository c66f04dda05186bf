package entity

import "time"

// LedgerEntry representa "esta cantidad de dosis de este lote está en esta ubicación".
// (LotID, LocationID) es único; una entrada con cantidad cero no se persiste, se elimina.
type LedgerEntry struct {
	ID         string
	LotID      string
	LocationID string
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
