package state

import (
	"context"
	"sync"
	"time"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// State is the whole in-memory aggregate: ledger, earnings, baskets, history,
// and catalog. It is loaded once at startup and is the sole source of truth
// thereafter; the document store only ever receives snapshots of it.
//
// State has no internal locking. Mutating operations must hold Mu; the HTTP
// handlers take it for the duration of each call, which is the single-writer
// critical section the engine assumes.
type State struct {
	Mu sync.Mutex

	Catalog  *catalog.Catalog
	Ledger   *domain.Ledger
	Earnings map[string]int
	Baskets  map[string]map[string]domain.Basket
	History  *domain.History

	seq uint64
}

func New(cat *catalog.Catalog, historyCap int) *State {
	return &State{
		Catalog:  cat,
		Ledger:   domain.NewLedger(),
		Earnings: make(map[string]int),
		Baskets:  make(map[string]map[string]domain.Basket),
		History:  domain.NewHistory(historyCap),
	}
}

// NewLot builds a lot dated now with the next insertion sequence number.
func (s *State) NewLot(item, contributor string, quantity, unitPrice int) *domain.Lot {
	s.seq++
	return &domain.Lot{
		ID:          uuid.New(),
		Item:        item,
		Contributor: contributor,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		AcquiredAt:  time.Now().UTC(),
		Seq:         s.seq,
	}
}

// Record appends one audit entry. Exactly one entry per successful mutation.
func (s *State) Record(action, item string, quantity, price int, actor string) {
	s.History.Append(domain.HistoryEntry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Item:      item,
		Quantity:  quantity,
		Price:     price,
		Actor:     actor,
	})
}

// Credit adds settlement proceeds to a contributor's balance.
func (s *State) Credit(contributor string, amount int) {
	s.Earnings[contributor] += amount
}

// Snapshot copies the aggregate into its persisted form.
func (s *State) Snapshot() *store.Snapshot {
	snap := store.Empty()
	for _, item := range s.Ledger.Items() {
		lots := s.Ledger.LotsFIFO(item)
		copies := make([]domain.Lot, 0, len(lots))
		for _, lot := range lots {
			copies = append(copies, *lot)
		}
		if len(copies) > 0 {
			snap.Items[item] = copies
		}
	}
	for who, balance := range s.Earnings {
		snap.Earnings[who] = balance
	}
	for owner, baskets := range s.Baskets {
		out := make(map[string]domain.Basket, len(baskets))
		for name, basket := range baskets {
			out[name] = basket.Clone()
		}
		snap.Baskets[owner] = out
	}
	snap.History = s.History.All()
	snap.Prices = s.Catalog.Overrides()
	return snap
}

// Restore rebuilds the aggregate from a loaded snapshot.
func (s *State) Restore(snap *store.Snapshot) {
	s.Ledger = domain.NewLedger()
	for item, lots := range snap.Items {
		ptrs := make([]*domain.Lot, 0, len(lots))
		for i := range lots {
			if lots[i].Quantity > 0 {
				lot := lots[i]
				ptrs = append(ptrs, &lot)
			}
		}
		s.Ledger.SetLots(item, ptrs)
	}
	s.seq = s.Ledger.MaxSeq()

	s.Earnings = make(map[string]int, len(snap.Earnings))
	for who, balance := range snap.Earnings {
		s.Earnings[who] = balance
	}

	s.Baskets = make(map[string]map[string]domain.Basket, len(snap.Baskets))
	for owner, baskets := range snap.Baskets {
		out := make(map[string]domain.Basket, len(baskets))
		for name, basket := range baskets {
			out[name] = basket.Clone()
		}
		s.Baskets[owner] = out
	}

	s.History = domain.NewHistory(s.History.Cap())
	for _, entry := range snap.History {
		s.History.Append(entry)
	}

	s.Catalog.ApplyOverrides(snap.Prices)
}

// Persist saves the current snapshot. The in-memory mutation is already
// committed; a failed save is logged and reported, never rolled back.
func (s *State) Persist(ctx context.Context, st store.Store) bool {
	if st == nil {
		return true
	}
	if err := st.SaveAll(ctx, s.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("Snapshot save failed; in-memory state remains authoritative")
		return false
	}
	return true
}
