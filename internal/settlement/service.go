package settlement

import (
	"context"
	"fmt"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/state"
	"stockroom-backend/internal/store"

	"github.com/rs/zerolog/log"
)

// saleActor is the synthetic actor recorded on sale history entries.
const saleActor = "customer"

// Service settles sales against the ledger and manages contributor earnings.
//
// Earnings policy: proportional-value. The total realized sale value
// (quantity * realized unit price) is split across the contributors touched
// by the sale in proportion to the units each one supplied, using integer
// floor division. Any remainder from the division goes to the contributor of
// the first (oldest) consumed lot, so credits always sum to the realized
// value exactly. Contributors' own listed prices are kept on the lots for
// audit but do not drive the payout.
type Service struct {
	State *state.State
	Store store.Store
}

type SettleInput struct {
	Item      string
	Quantity  int
	UnitPrice int // price the sale actually happened at
}

// CreditLine is one contributor's share of a settled sale.
type CreditLine struct {
	Contributor string `json:"contributor"`
	Units       int    `json:"units"`
	Amount      int    `json:"amount"`
}

type SettleResult struct {
	Item       string       `json:"item"`
	Quantity   int          `json:"quantity"`
	UnitPrice  int          `json:"unit_price"`
	TotalValue int          `json:"total_value"`
	Credits    []CreditLine `json:"credits"`
	Remaining  int          `json:"remaining_stock"`
	Persisted  bool         `json:"-"`
}

// Settle consumes lots globally FIFO (oldest acquisition first, regardless
// of contributor) until the sold quantity is covered, then credits each
// touched contributor's earnings balance.
func (s *Service) Settle(ctx context.Context, in SettleInput) (*SettleResult, error) {
	item := catalog.NormalizeKey(in.Item)
	if !s.State.Catalog.IsKnownItem(item) {
		return nil, domain.ErrInvalidItem
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitPrice <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if s.State.Ledger.TotalQuantity(item) < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	remaining := in.Quantity
	consumedBy := make(map[string]int)
	touched := make([]string, 0, 2) // contributors in first-consumption order
	for _, lot := range s.State.Ledger.LotsFIFO(item) {
		if remaining == 0 {
			break
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		if _, seen := consumedBy[lot.Contributor]; !seen {
			touched = append(touched, lot.Contributor)
		}
		lot.Quantity -= take
		consumedBy[lot.Contributor] += take
		remaining -= take
	}
	if remaining != 0 {
		// Unreachable: total stock was checked above. Partial consumption
		// here would mean the ledger and its derived totals disagree.
		panic(fmt.Sprintf("settlement: %d of %d units unfilled for %s", remaining, in.Quantity, item))
	}

	totalValue := in.Quantity * in.UnitPrice
	credits := make([]CreditLine, 0, len(touched))
	distributed := 0
	for _, who := range touched {
		amount := totalValue * consumedBy[who] / in.Quantity
		credits = append(credits, CreditLine{Contributor: who, Units: consumedBy[who], Amount: amount})
		distributed += amount
	}
	// Integer division remainder goes to the first touched contributor.
	if rest := totalValue - distributed; rest > 0 {
		credits[0].Amount += rest
	}
	for _, line := range credits {
		s.State.Credit(line.Contributor, line.Amount)
	}

	s.State.Ledger.Purge(item)
	s.State.Record(domain.ActionSale, item, in.Quantity, in.UnitPrice, saleActor)
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("item", item).Int("quantity", in.Quantity).Int("unit_price", in.UnitPrice).
		Int("contributors", len(credits)).Msg("Sale settled")

	return &SettleResult{
		Item:       item,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		TotalValue: totalValue,
		Credits:    credits,
		Remaining:  s.State.Ledger.TotalQuantity(item),
		Persisted:  persisted,
	}, nil
}

// Balance returns a contributor's accumulated earnings.
func (s *Service) Balance(contributor string) int {
	return s.State.Earnings[contributor]
}

type PayoutResult struct {
	Contributor string `json:"contributor"`
	Paid        int    `json:"paid"`
	Remaining   int    `json:"remaining"`
	Persisted   bool   `json:"-"`
}

// Payout subtracts from a contributor's balance. all pays out the whole
// balance; otherwise amount must be positive and within the balance.
func (s *Service) Payout(ctx context.Context, contributor string, amount int, all bool) (*PayoutResult, error) {
	if contributor == "" {
		return nil, domain.ErrInvalidContributor
	}
	balance := s.State.Earnings[contributor]
	if all {
		amount = balance
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if amount > balance {
		return nil, domain.ErrInsufficientBalance
	}

	s.State.Earnings[contributor] = balance - amount
	s.State.Record(domain.ActionPayout, "earnings", amount, 0, contributor)
	persisted := s.State.Persist(ctx, s.Store)

	log.Info().Str("contributor", contributor).Int("amount", amount).Msg("Payout processed")

	return &PayoutResult{
		Contributor: contributor,
		Paid:        amount,
		Remaining:   s.State.Earnings[contributor],
		Persisted:   persisted,
	}, nil
}
