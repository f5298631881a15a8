package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lot is one discrete addition of stock: one contributor, one price, one date.
// Lots are never merged; two additions of the same item on the same day stay
// separate so FIFO order and per-acquisition pricing are preserved.
type Lot struct {
	ID          uuid.UUID `json:"id"`
	Item        string    `json:"item"`
	Contributor string    `json:"contributor"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int       `json:"unit_price"`
	AcquiredAt  time.Time `json:"acquired_at"`
	// Seq breaks AcquiredAt ties: lower Seq was inserted earlier.
	Seq uint64 `json:"seq"`
}

// Before reports whether l is consumed ahead of other under FIFO order.
func (l *Lot) Before(other *Lot) bool {
	if l.AcquiredAt.Equal(other.AcquiredAt) {
		return l.Seq < other.Seq
	}
	return l.AcquiredAt.Before(other.AcquiredAt)
}
