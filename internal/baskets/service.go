package baskets

import (
	"context"
	"sort"
	"strings"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/state"
	"stockroom-backend/internal/stock"
	"stockroom-backend/internal/store"

	"github.com/rs/zerolog/log"
)

// Service manages named restock baskets. Baskets live independently of the
// ledger; applying one just replays plain Add operations, so applying twice
// doubles the stock. Replay is deliberately not idempotent.
type Service struct {
	State *state.State
	Store store.Store
	Stock *stock.Service
}

type SaveResult struct {
	Owner     string        `json:"owner"`
	Name      string        `json:"name"`
	Items     domain.Basket `json:"items"`
	Persisted bool          `json:"-"`
}

// Save upserts a basket. Entries with non-positive quantities are dropped
// before storage; unknown items are rejected so a basket can't be saved in a
// state that could never apply.
func (s *Service) Save(ctx context.Context, owner, name string, items map[string]int) (*SaveResult, error) {
	if owner == "" {
		return nil, domain.ErrInvalidContributor
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrBasketNotFound
	}

	basket := make(domain.Basket)
	for rawItem, qty := range items {
		if qty <= 0 {
			continue
		}
		item := catalog.NormalizeKey(rawItem)
		if !s.State.Catalog.IsKnownItem(item) {
			return nil, domain.ErrInvalidItem
		}
		basket[item] = qty
	}
	if len(basket) == 0 {
		return nil, domain.ErrEmptyBasket
	}

	if s.State.Baskets[owner] == nil {
		s.State.Baskets[owner] = make(map[string]domain.Basket)
	}
	s.State.Baskets[owner][name] = basket
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("owner", owner).Str("basket", name).Int("items", len(basket)).Msg("Basket saved")

	return &SaveResult{Owner: owner, Name: name, Items: basket.Clone(), Persisted: persisted}, nil
}

// ItemError reports one basket entry that could not be applied.
type ItemError struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

type ApplyReport struct {
	Owner         string      `json:"owner"`
	Name          string      `json:"name"`
	ItemsApplied  int         `json:"items_applied"`
	TotalQuantity int         `json:"total_quantity"`
	TotalValue    int         `json:"total_value"`
	Errors        []ItemError `json:"errors"`
	Persisted     bool        `json:"-"`
}

// Apply replays the basket through the ordinary Add operation, one call per
// entry. Partial application is expected: an entry that became invalid since
// the basket was saved is skipped and reported, not fatal.
func (s *Service) Apply(ctx context.Context, owner, name string) (*ApplyReport, error) {
	basket, ok := s.State.Baskets[owner][name]
	if !ok {
		return nil, domain.ErrBasketNotFound
	}

	report := &ApplyReport{Owner: owner, Name: name, Errors: []ItemError{}}

	items := make([]string, 0, len(basket))
	for item := range basket {
		items = append(items, item)
	}
	sort.Strings(items)

	for _, item := range items {
		qty := basket[item]
		if qty <= 0 {
			continue
		}
		res, err := s.Stock.Add(ctx, stock.AddInput{Item: item, Quantity: qty, Contributor: owner})
		if err != nil {
			report.Errors = append(report.Errors, ItemError{Item: item, Reason: err.Error()})
			continue
		}
		report.ItemsApplied++
		report.TotalQuantity += qty
		report.TotalValue += qty * res.UnitPrice
	}

	s.State.Record(domain.ActionBasketApply, name, report.TotalQuantity, report.TotalValue, owner)
	report.Persisted = s.State.Persist(ctx, s.Store)

	log.Info().Str("owner", owner).Str("basket", name).Int("items", report.ItemsApplied).
		Int("quantity", report.TotalQuantity).Msg("Basket applied")

	return report, nil
}

// Delete removes a basket.
func (s *Service) Delete(ctx context.Context, owner, name string) (bool, error) {
	if _, ok := s.State.Baskets[owner][name]; !ok {
		return false, domain.ErrBasketNotFound
	}
	delete(s.State.Baskets[owner], name)
	if len(s.State.Baskets[owner]) == 0 {
		delete(s.State.Baskets, owner)
	}
	persisted := s.State.Persist(ctx, s.Store)
	return persisted, nil
}

// List returns copies of the owner's baskets.
func (s *Service) List(owner string) map[string]domain.Basket {
	out := make(map[string]domain.Basket, len(s.State.Baskets[owner]))
	for name, basket := range s.State.Baskets[owner] {
		out[name] = basket.Clone()
	}
	return out
}
