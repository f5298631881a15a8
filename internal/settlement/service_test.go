package settlement

import (
	"context"
	"testing"
	"time"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return &Service{State: state.New(catalog.Default(), 100)}
}

func lotOn(s *Service, item, contributor string, qty, price int, day int, seq uint64) *domain.Lot {
	lot := &domain.Lot{
		ID:          uuid.New(),
		Item:        item,
		Contributor: contributor,
		Quantity:    qty,
		UnitPrice:   price,
		AcquiredAt:  time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC),
		Seq:         seq,
	}
	s.State.Ledger.Append(lot)
	return lot
}

func TestSettleConsumesGloballyFIFO(t *testing.T) {
	s := newTestService()
	lotOn(s, "bud_ogkush", "alice", 5, 780, 1, 1)
	lotOn(s, "bud_ogkush", "bob", 5, 780, 2, 2)
	lotOn(s, "bud_ogkush", "carol", 5, 780, 3, 3)

	res, err := s.Settle(context.Background(), SettleInput{Item: "bud_ogkush", Quantity: 7, UnitPrice: 800})
	require.NoError(t, err)

	// day1 fully consumed, day2 partially, day3 untouched.
	assert.Equal(t, 0, s.State.Ledger.ContributorQuantity("bud_ogkush", "alice"))
	assert.Equal(t, 3, s.State.Ledger.ContributorQuantity("bud_ogkush", "bob"))
	assert.Equal(t, 5, s.State.Ledger.ContributorQuantity("bud_ogkush", "carol"))
	assert.Equal(t, 8, res.Remaining)

	// Consumed-to-zero lots are purged.
	for _, lot := range s.State.Ledger.LotsFIFO("bud_ogkush") {
		assert.Greater(t, lot.Quantity, 0)
	}
}

// Two lots of 5 at cost basis 10; sale of 7 at realized price 12 distributes
// the 84 total proportionally: 60 to the first contributor, 24 to the second.
func TestSettleProportionalEarnings(t *testing.T) {
	s := newTestService()
	lotOn(s, "joint_ogkush", "a", 5, 10, 1, 1)
	lotOn(s, "joint_ogkush", "b", 5, 10, 2, 2)

	res, err := s.Settle(context.Background(), SettleInput{Item: "joint_ogkush", Quantity: 7, UnitPrice: 12})
	require.NoError(t, err)

	assert.Equal(t, 84, res.TotalValue)
	require.Len(t, res.Credits, 2)
	assert.Equal(t, CreditLine{Contributor: "a", Units: 5, Amount: 60}, res.Credits[0])
	assert.Equal(t, CreditLine{Contributor: "b", Units: 2, Amount: 24}, res.Credits[1])
	assert.Equal(t, 60, s.State.Earnings["a"])
	assert.Equal(t, 24, s.State.Earnings["b"])
}

// Since the total is quantity * unit price, each proportional share reduces
// to units * unit price and the credited amounts must sum to the realized
// value with nothing lost to rounding.
func TestSettleEarningsConservation(t *testing.T) {
	cases := []struct {
		name     string
		units    []int
		quantity int
		price    int
	}{
		{"even thirds", []int{1, 1, 1}, 3, 27},
		{"uneven units", []int{3, 3, 1}, 7, 15},
		{"partial last lot", []int{5, 5}, 7, 13},
		{"single contributor", []int{9}, 4, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService()
			contributors := []string{"a", "b", "c", "d"}
			for i, u := range tc.units {
				lotOn(s, "joint_ogkush", contributors[i], u, 10, i+1, uint64(i+1))
			}

			res, err := s.Settle(context.Background(), SettleInput{Item: "joint_ogkush", Quantity: tc.quantity, UnitPrice: tc.price})
			require.NoError(t, err)

			sum := 0
			for _, line := range res.Credits {
				sum += line.Amount
				assert.Equal(t, tc.price*line.Units, line.Amount)
			}
			assert.Equal(t, tc.quantity*tc.price, res.TotalValue)
			assert.Equal(t, res.TotalValue, sum)
		})
	}
}

func TestSettleInsufficientStockLeavesStateUntouched(t *testing.T) {
	s := newTestService()
	lot := lotOn(s, "bud_ogkush", "alice", 5, 780, 1, 1)

	_, err := s.Settle(context.Background(), SettleInput{Item: "bud_ogkush", Quantity: 6, UnitPrice: 800})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, lot.Quantity)
	assert.Empty(t, s.State.Earnings)
	assert.Equal(t, 0, s.State.History.Len())
}

func TestSettleValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Settle(ctx, SettleInput{Item: "nope", Quantity: 1, UnitPrice: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
	_, err = s.Settle(ctx, SettleInput{Item: "bud_ogkush", Quantity: 0, UnitPrice: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = s.Settle(ctx, SettleInput{Item: "bud_ogkush", Quantity: 1, UnitPrice: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestSettleRecordsSaleWithCustomerActor(t *testing.T) {
	s := newTestService()
	lotOn(s, "bud_ogkush", "alice", 5, 780, 1, 1)

	_, err := s.Settle(context.Background(), SettleInput{Item: "bud_ogkush", Quantity: 2, UnitPrice: 800})
	require.NoError(t, err)

	entries := s.State.History.Recent(1)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionSale, entries[0].Action)
	assert.Equal(t, "customer", entries[0].Actor)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, 800, entries[0].Price)
}

func TestPayout(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	s.State.Earnings["alice"] = 1000

	res, err := s.Payout(ctx, "alice", 400, false)
	require.NoError(t, err)
	assert.Equal(t, 400, res.Paid)
	assert.Equal(t, 600, res.Remaining)

	_, err = s.Payout(ctx, "alice", 700, false)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, 600, s.State.Earnings["alice"])

	res, err = s.Payout(ctx, "alice", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 600, res.Paid)
	assert.Equal(t, 0, s.State.Earnings["alice"])

	_, err = s.Payout(ctx, "alice", 0, true)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
