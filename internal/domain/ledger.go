package domain

import "sort"

// Ledger maps item key -> that item's lots. All derived quantities are pure
// sums over the lot collection; there are no cached counters to drift.
//
// The Ledger itself does no validation and no locking. Writes go through the
// stock and settlement services, which enforce the invariants and are
// serialized by the caller.
type Ledger struct {
	lots map[string][]*Lot
}

func NewLedger() *Ledger {
	return &Ledger{lots: make(map[string][]*Lot)}
}

// TotalQuantity sums every lot of the item across all contributors.
func (l *Ledger) TotalQuantity(item string) int {
	total := 0
	for _, lot := range l.lots[item] {
		total += lot.Quantity
	}
	return total
}

// ContributorQuantity sums the item's lots owned by one contributor.
func (l *Ledger) ContributorQuantity(item, contributor string) int {
	total := 0
	for _, lot := range l.lots[item] {
		if lot.Contributor == contributor {
			total += lot.Quantity
		}
	}
	return total
}

// Append adds a new lot at the end of the item's collection.
func (l *Ledger) Append(lot *Lot) {
	l.lots[lot.Item] = append(l.lots[lot.Item], lot)
}

// LotsFIFO returns the item's non-empty lots sorted oldest first
// (AcquiredAt ascending, insertion order on ties). The returned slice is a
// copy but the lots are shared, so decrementing them mutates the ledger.
func (l *Ledger) LotsFIFO(item string) []*Lot {
	lots := make([]*Lot, 0, len(l.lots[item]))
	for _, lot := range l.lots[item] {
		if lot.Quantity > 0 {
			lots = append(lots, lot)
		}
	}
	sort.SliceStable(lots, func(i, j int) bool { return lots[i].Before(lots[j]) })
	return lots
}

// ContributorLotsFIFO is LotsFIFO narrowed to one contributor's lots.
func (l *Ledger) ContributorLotsFIFO(item, contributor string) []*Lot {
	lots := make([]*Lot, 0)
	for _, lot := range l.lots[item] {
		if lot.Contributor == contributor && lot.Quantity > 0 {
			lots = append(lots, lot)
		}
	}
	sort.SliceStable(lots, func(i, j int) bool { return lots[i].Before(lots[j]) })
	return lots
}

// Purge drops the item's lots left at zero quantity. A zero lot carries no
// information and must not linger.
func (l *Ledger) Purge(item string) {
	kept := l.lots[item][:0]
	for _, lot := range l.lots[item] {
		if lot.Quantity > 0 {
			kept = append(kept, lot)
		}
	}
	if len(kept) == 0 {
		delete(l.lots, item)
		return
	}
	l.lots[item] = kept
}

// DeleteContributor removes all of one contributor's lots for one item.
// Returns the number of units deleted.
func (l *Ledger) DeleteContributor(item, contributor string) int {
	deleted := 0
	kept := l.lots[item][:0]
	for _, lot := range l.lots[item] {
		if lot.Contributor == contributor {
			deleted += lot.Quantity
			continue
		}
		kept = append(kept, lot)
	}
	if len(kept) == 0 {
		delete(l.lots, item)
	} else {
		l.lots[item] = kept
	}
	return deleted
}

// DeleteItem removes every lot of one item. Returns units deleted.
func (l *Ledger) DeleteItem(item string) int {
	deleted := l.TotalQuantity(item)
	delete(l.lots, item)
	return deleted
}

// DeleteContributorEverywhere removes one contributor's lots across all items.
// Returns units deleted.
func (l *Ledger) DeleteContributorEverywhere(contributor string) int {
	deleted := 0
	for item := range l.lots {
		deleted += l.DeleteContributor(item, contributor)
	}
	return deleted
}

// DeleteAll empties the ledger. Returns units deleted.
func (l *Ledger) DeleteAll() int {
	deleted := 0
	for item := range l.lots {
		deleted += l.TotalQuantity(item)
	}
	l.lots = make(map[string][]*Lot)
	return deleted
}

// Items returns the item keys that currently have lots, sorted.
func (l *Ledger) Items() []string {
	items := make([]string, 0, len(l.lots))
	for item := range l.lots {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Contributors returns who holds stock of the item and how much each holds.
func (l *Ledger) Contributors(item string) map[string]int {
	byOwner := make(map[string]int)
	for _, lot := range l.lots[item] {
		if lot.Quantity > 0 {
			byOwner[lot.Contributor] += lot.Quantity
		}
	}
	return byOwner
}

// SetLots replaces the item's lot collection wholesale (snapshot restore).
func (l *Ledger) SetLots(item string, lots []*Lot) {
	if len(lots) == 0 {
		delete(l.lots, item)
		return
	}
	l.lots[item] = lots
}

// MaxSeq returns the highest Seq present, so a restored ledger can keep
// issuing increasing sequence numbers.
func (l *Ledger) MaxSeq() uint64 {
	var max uint64
	for _, lots := range l.lots {
		for _, lot := range lots {
			if lot.Seq > max {
				max = lot.Seq
			}
		}
	}
	return max
}
