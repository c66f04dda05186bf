package entity

import "time"

// StockLocation representa un punto físico de almacenamiento (refrigerador, caja térmica)
// dentro de una sala. El ledger solo usa su ID.
type StockLocation struct {
	ID        string
	RoomID    string
	Kind      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
