package domain

import "time"

// History actions recorded for mutating operations.
const (
	ActionAdd         = "add"
	ActionRemove      = "remove"
	ActionSale        = "sale"
	ActionSet         = "set"
	ActionClear       = "clear"
	ActionPayout      = "payout"
	ActionPriceChange = "price_change"
	ActionBasketApply = "basket_apply"
)

// HistoryEntry is an immutable audit record. History is never read back to
// reconstruct ledger state.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	Price     int       `json:"price"`
	Actor     string    `json:"actor"`
}

// History is a bounded append-only ring: once the cap is reached the oldest
// entries are dropped.
type History struct {
	cap     int
	entries []HistoryEntry
}

func NewHistory(cap int) *History {
	if cap <= 0 {
		cap = 1000
	}
	return &History{cap: cap}
}

func (h *History) Append(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.cap {
		h.entries = h.entries[len(h.entries)-h.cap:]
	}
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) []HistoryEntry {
	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(h.entries) - 1; i >= len(h.entries)-n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// All returns entries oldest first (for persistence).
func (h *History) All() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Cap() int { return h.cap }
