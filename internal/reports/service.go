package reports

import (
	"sort"

	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/state"
	"stockroom-backend/internal/store"
)

// Service derives read-only views: the activity log, aggregate analytics and
// the full snapshot export.
type Service struct {
	State *state.State
}

// Recent returns the newest history entries, most recent first. limit <= 0 or
// beyond the retained window returns everything retained.
func (s *Service) Recent(limit int) []domain.HistoryEntry {
	if limit <= 0 || limit > s.State.History.Len() {
		limit = s.State.History.Len()
	}
	return s.State.History.Recent(limit)
}

// CategoryTotal is one category row of the analytics report.
type CategoryTotal struct {
	Category string `json:"category"`
	Units    int    `json:"units"`
	Value    int    `json:"value"` // at current catalog prices
}

// ContributorTotal ranks one contributor by units on hand.
type ContributorTotal struct {
	Contributor string `json:"contributor"`
	Units       int    `json:"units"`
	StockValue  int    `json:"stock_value"`
	Earnings    int    `json:"earnings"`
}

// Analytics is the aggregate report over the current ledger and the retained
// history window.
type Analytics struct {
	TotalUnits          int                `json:"total_units"`
	TotalStockValue     int                `json:"total_stock_value"`
	Categories          []CategoryTotal    `json:"categories"`
	Contributors        []ContributorTotal `json:"contributors"`
	SalesCount          int                `json:"sales_count"`
	UnitsSold           int                `json:"units_sold"`
	SalesValue          int                `json:"sales_value"`
	OutstandingEarnings int                `json:"outstanding_earnings"`
}

func (s *Service) Analytics() *Analytics {
	out := &Analytics{Categories: []CategoryTotal{}, Contributors: []ContributorTotal{}}

	byContributor := make(map[string]*ContributorTotal)
	for _, cat := range s.State.Catalog.Categories() {
		row := CategoryTotal{Category: cat}
		for _, item := range s.State.Catalog.ItemsIn(cat) {
			price, _ := s.State.Catalog.PriceFor(item)
			for who, qty := range s.State.Ledger.Contributors(item) {
				row.Units += qty
				row.Value += qty * price
				ct := byContributor[who]
				if ct == nil {
					ct = &ContributorTotal{Contributor: who}
					byContributor[who] = ct
				}
				ct.Units += qty
				ct.StockValue += qty * price
			}
		}
		if row.Units > 0 {
			out.Categories = append(out.Categories, row)
		}
		out.TotalUnits += row.Units
		out.TotalStockValue += row.Value
	}

	for who, balance := range s.State.Earnings {
		ct := byContributor[who]
		if ct == nil {
			ct = &ContributorTotal{Contributor: who}
			byContributor[who] = ct
		}
		ct.Earnings = balance
		out.OutstandingEarnings += balance
	}
	for _, ct := range byContributor {
		out.Contributors = append(out.Contributors, *ct)
	}
	sortContributors(out.Contributors)

	// Sales figures come from the retained history window, so they are a
	// recent-activity view, not an all-time ledger.
	for _, e := range s.State.History.All() {
		if e.Action != domain.ActionSale {
			continue
		}
		out.SalesCount++
		out.UnitsSold += e.Quantity
		out.SalesValue += e.Quantity * e.Price
	}
	return out
}

// sortContributors orders by units on hand, then stock value, then name so
// the ranking is stable across runs.
func sortContributors(rows []ContributorTotal) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Units != rows[j].Units {
			return rows[i].Units > rows[j].Units
		}
		if rows[i].StockValue != rows[j].StockValue {
			return rows[i].StockValue > rows[j].StockValue
		}
		return rows[i].Contributor < rows[j].Contributor
	})
}

// Export returns the full persistence snapshot, the same shape the document
// store saves. Intended for admin backup.
func (s *Service) Export() *store.Snapshot {
	return s.State.Snapshot()
}
