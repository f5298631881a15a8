package store

import (
	"context"

	"stockroom-backend/internal/domain"
)

// Snapshot is the whole persisted aggregate: per-item lots, earnings balances,
// baskets, bounded history, and catalog price overrides. Saves overwrite the
// previous snapshot wholesale; there is no incremental diffing.
type Snapshot struct {
	Items    map[string][]domain.Lot             `json:"items"`
	Earnings map[string]int                      `json:"earnings"`
	Baskets  map[string]map[string]domain.Basket `json:"baskets"`
	History  []domain.HistoryEntry               `json:"history"`
	Prices   map[string]int                      `json:"prices"`
}

// Empty returns a snapshot with all maps allocated.
func Empty() *Snapshot {
	return &Snapshot{
		Items:    make(map[string][]domain.Lot),
		Earnings: make(map[string]int),
		Baskets:  make(map[string]map[string]domain.Basket),
		Prices:   make(map[string]int),
	}
}

// Store is the persistence adapter. LoadAll runs once at startup; SaveAll runs
// after every mutating operation. The in-memory aggregate is authoritative: a
// SaveAll failure is reported, never rolled back.
type Store interface {
	LoadAll(ctx context.Context) (*Snapshot, error)
	SaveAll(ctx context.Context, snap *Snapshot) error
}
