package stock

import (
	"context"
	"fmt"
	"sort"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/state"
	"stockroom-backend/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service implements the stock adjustment operations. Every successful
// mutation appends exactly one history entry and triggers a snapshot save;
// failed validations leave the aggregate untouched.
type Service struct {
	State *state.State
	Store store.Store
}

type AddInput struct {
	Item        string
	Quantity    int
	Contributor string
	Price       *int // nil defaults to the catalog price
}

type AddResult struct {
	LotID     uuid.UUID `json:"lot_id"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	UnitPrice int       `json:"unit_price"`
	Total     int       `json:"total_quantity"`
	Persisted bool      `json:"-"`
}

// Add appends one new lot dated now. It never fails because of existing
// stock state; it is a pure append.
func (s *Service) Add(ctx context.Context, in AddInput) (*AddResult, error) {
	item := catalog.NormalizeKey(in.Item)
	if !s.State.Catalog.IsKnownItem(item) {
		return nil, domain.ErrInvalidItem
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Contributor == "" {
		return nil, domain.ErrInvalidContributor
	}
	price := 0
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		price = *in.Price
	} else {
		price, _ = s.State.Catalog.PriceFor(item)
	}

	lot := s.State.NewLot(item, in.Contributor, in.Quantity, price)
	s.State.Ledger.Append(lot)
	s.State.Record(domain.ActionAdd, item, in.Quantity, price, in.Contributor)
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("item", item).Int("quantity", in.Quantity).Int("price", price).
		Str("contributor", in.Contributor).Msg("Stock added")

	return &AddResult{
		LotID:     lot.ID,
		Item:      item,
		Quantity:  in.Quantity,
		UnitPrice: price,
		Total:     s.State.Ledger.TotalQuantity(item),
		Persisted: persisted,
	}, nil
}

type RemoveResult struct {
	Item      string `json:"item"`
	Removed   int    `json:"removed"`
	Remaining int    `json:"remaining"`
	Persisted bool   `json:"-"`
}

// Remove spends quantity from one contributor's holdings, oldest lot first.
// The same per-contributor FIFO rule applies everywhere stock is spent from
// one person's lots.
func (s *Service) Remove(ctx context.Context, item string, quantity int, contributor string) (*RemoveResult, error) {
	item = catalog.NormalizeKey(item)
	if !s.State.Catalog.IsKnownItem(item) {
		return nil, domain.ErrInvalidItem
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if contributor == "" {
		return nil, domain.ErrInvalidContributor
	}
	if s.State.Ledger.ContributorQuantity(item, contributor) < quantity {
		return nil, domain.ErrInsufficientStock
	}

	remaining := quantity
	for _, lot := range s.State.Ledger.ContributorLotsFIFO(item, contributor) {
		if remaining == 0 {
			break
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		lot.Quantity -= take
		remaining -= take
	}
	if remaining != 0 {
		// Unreachable given the availability check above; a partial removal
		// would silently corrupt conservation.
		panic(fmt.Sprintf("stock: removal mismatch for %s/%s: %d units unaccounted", item, contributor, remaining))
	}
	s.State.Ledger.Purge(item)
	s.State.Record(domain.ActionRemove, item, quantity, 0, contributor)
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("item", item).Int("quantity", quantity).Str("contributor", contributor).Msg("Stock removed")

	return &RemoveResult{
		Item:      item,
		Removed:   quantity,
		Remaining: s.State.Ledger.ContributorQuantity(item, contributor),
		Persisted: persisted,
	}, nil
}

type SetInput struct {
	Item        string
	Quantity    int
	Contributor string
	Price       *int
}

type SetResult struct {
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Replaced  int    `json:"replaced"`
	Persisted bool   `json:"-"`
}

// Set is the administrative override: it deletes all of the contributor's
// lots for the item and, if quantity > 0, creates exactly one fresh lot.
// Intentionally not additive.
func (s *Service) Set(ctx context.Context, in SetInput) (*SetResult, error) {
	item := catalog.NormalizeKey(in.Item)
	if !s.State.Catalog.IsKnownItem(item) {
		return nil, domain.ErrInvalidItem
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Contributor == "" {
		return nil, domain.ErrInvalidContributor
	}
	price := 0
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		price = *in.Price
	} else {
		price, _ = s.State.Catalog.PriceFor(item)
	}

	replaced := s.State.Ledger.DeleteContributor(item, in.Contributor)
	if in.Quantity > 0 {
		s.State.Ledger.Append(s.State.NewLot(item, in.Contributor, in.Quantity, price))
	}
	s.State.Record(domain.ActionSet, item, in.Quantity, price, in.Contributor)
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("item", item).Int("quantity", in.Quantity).Str("contributor", in.Contributor).
		Int("replaced", replaced).Msg("Stock set")

	return &SetResult{
		Item:      item,
		Quantity:  in.Quantity,
		UnitPrice: price,
		Replaced:  replaced,
		Persisted: persisted,
	}, nil
}

type ClearResult struct {
	Scope     string `json:"scope"`
	Deleted   int    `json:"deleted_units"`
	Persisted bool   `json:"-"`
}

// Clear bulk-deletes lots. Four modes depending on which arguments are set:
// a specific item/contributor pair, one contributor everywhere, one item for
// everyone, or the whole ledger. Unconditional and irreversible.
func (s *Service) Clear(ctx context.Context, item, contributor, actor string) (*ClearResult, error) {
	var deleted int
	var scope string

	switch {
	case item != "" && contributor != "":
		item = catalog.NormalizeKey(item)
		if !s.State.Catalog.IsKnownItem(item) {
			return nil, domain.ErrInvalidItem
		}
		deleted = s.State.Ledger.DeleteContributor(item, contributor)
		scope = fmt.Sprintf("%s/%s", item, contributor)
	case item != "":
		item = catalog.NormalizeKey(item)
		if !s.State.Catalog.IsKnownItem(item) {
			return nil, domain.ErrInvalidItem
		}
		deleted = s.State.Ledger.DeleteItem(item)
		scope = item
	case contributor != "":
		deleted = s.State.Ledger.DeleteContributorEverywhere(contributor)
		scope = "all items for " + contributor
	default:
		deleted = s.State.Ledger.DeleteAll()
		scope = "everything"
	}

	target := item
	if target == "" {
		target = "all"
	}
	who := contributor
	if who == "" {
		who = "all"
	}
	if actor == "" {
		actor = "admin"
	}
	s.State.Record(domain.ActionClear, target, deleted, 0, actor+" -> "+who)
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("scope", scope).Int("deleted", deleted).Msg("Stock cleared")

	return &ClearResult{Scope: scope, Deleted: deleted, Persisted: persisted}, nil
}

type PriceChangeResult struct {
	Item        string `json:"item"`
	OldPrice    int    `json:"old_price"`
	NewPrice    int    `json:"new_price"`
	LotsUpdated int    `json:"lots_updated"`
	Persisted   bool   `json:"-"`
}

// ChangePrice updates the catalog price for an item. With updateExisting the
// new price is also written onto every lot already on the books; otherwise
// existing lots keep their recorded acquisition price and only future defaults
// change.
func (s *Service) ChangePrice(ctx context.Context, item string, price int, updateExisting bool) (*PriceChangeResult, error) {
	item = catalog.NormalizeKey(item)
	old, err := s.State.Catalog.SetPrice(item, price)
	if err != nil {
		return nil, err
	}

	updated := 0
	if updateExisting {
		for _, lot := range s.State.Ledger.LotsFIFO(item) {
			lot.UnitPrice = price
			updated++
		}
	}
	s.State.Record(domain.ActionPriceChange, item, updated, price, "admin")
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("item", item).Int("old", old).Int("new", price).
		Int("lots_updated", updated).Msg("Price changed")

	return &PriceChangeResult{
		Item:        item,
		OldPrice:    old,
		NewPrice:    price,
		LotsUpdated: updated,
		Persisted:   persisted,
	}, nil
}

// ItemView is one item's row in the stock overview.
type ItemView struct {
	Item     string         `json:"item"`
	Label    string         `json:"label"`
	Category string         `json:"category"`
	Total    int            `json:"total"`
	ByOwner  map[string]int `json:"by_contributor"`
	LowStock bool           `json:"low_stock"`
}

// View returns the stock overview grouped in catalog order, only items with
// stock on hand.
func (s *Service) View() []ItemView {
	out := make([]ItemView, 0)
	for _, cat := range s.State.Catalog.Categories() {
		for _, item := range s.State.Catalog.ItemsIn(cat) {
			total := s.State.Ledger.TotalQuantity(item)
			if total == 0 {
				continue
			}
			out = append(out, ItemView{
				Item:     item,
				Label:    s.State.Catalog.LabelFor(item),
				Category: cat,
				Total:    total,
				ByOwner:  s.State.Ledger.Contributors(item),
				LowStock: s.State.Catalog.IsLowStock(item, total),
			})
		}
	}
	return out
}

// ContributorHolding is one line of a contributor's stock summary.
type ContributorHolding struct {
	Item     string `json:"item"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	Value    int    `json:"value"` // at current catalog price
}

// ContributorInfo summarizes one contributor: holdings, stock value, balance.
type ContributorInfo struct {
	Contributor string               `json:"contributor"`
	Holdings    []ContributorHolding `json:"holdings"`
	StockValue  int                  `json:"stock_value"`
	Earnings    int                  `json:"earnings"`
}

func (s *Service) Contributor(who string) *ContributorInfo {
	info := &ContributorInfo{Contributor: who, Holdings: []ContributorHolding{}}
	items := s.State.Ledger.Items()
	sort.Strings(items)
	for _, item := range items {
		qty := s.State.Ledger.ContributorQuantity(item, who)
		if qty == 0 {
			continue
		}
		price, _ := s.State.Catalog.PriceFor(item)
		info.Holdings = append(info.Holdings, ContributorHolding{
			Item:     item,
			Label:    s.State.Catalog.LabelFor(item),
			Quantity: qty,
			Value:    qty * price,
		})
		info.StockValue += qty * price
	}
	info.Earnings = s.State.Earnings[who]
	return info
}
