package baskets

import (
	"context"
	"testing"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/state"
	"stockroom-backend/internal/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	st := state.New(catalog.Default(), 100)
	return &Service{State: st, Stock: &stock.Service{State: st}}
}

func TestSaveDropsNonPositiveEntries(t *testing.T) {
	s := newTestService()

	res, err := s.Save(context.Background(), "alice", "weekly", map[string]int{
		"bud_ogkush":   10,
		"joint_ogkush": 0,
		"bagof_ogkush": -3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Basket{"bud_ogkush": 10}, res.Items)
}

func TestSaveRejectsEmptyAndUnknown(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 0})
	assert.ErrorIs(t, err, domain.ErrEmptyBasket)

	_, err = s.Save(ctx, "alice", "weekly", map[string]int{"no_such_item": 5})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = s.Save(ctx, "", "weekly", map[string]int{"bud_ogkush": 5})
	assert.ErrorIs(t, err, domain.ErrInvalidContributor)
}

func TestSaveOverwritesExisting(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 10})
	require.NoError(t, err)
	_, err = s.Save(ctx, "alice", "weekly", map[string]int{"joint_ogkush": 4})
	require.NoError(t, err)

	assert.Equal(t, domain.Basket{"joint_ogkush": 4}, s.State.Baskets["alice"]["weekly"])
}

func TestApplyAddsStockForOwner(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 10, "joint_ogkush": 4})
	require.NoError(t, err)

	report, err := s.Apply(ctx, "alice", "weekly")
	require.NoError(t, err)

	assert.Equal(t, 2, report.ItemsApplied)
	assert.Equal(t, 14, report.TotalQuantity)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 10, s.State.Ledger.ContributorQuantity("bud_ogkush", "alice"))
	assert.Equal(t, 4, s.State.Ledger.ContributorQuantity("joint_ogkush", "alice"))
}

func TestApplyTwiceDoublesStock(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 10})
	require.NoError(t, err)

	_, err = s.Apply(ctx, "alice", "weekly")
	require.NoError(t, err)
	_, err = s.Apply(ctx, "alice", "weekly")
	require.NoError(t, err)

	assert.Equal(t, 20, s.State.Ledger.TotalQuantity("bud_ogkush"))
}

func TestApplyUnknownBasket(t *testing.T) {
	s := newTestService()
	_, err := s.Apply(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, domain.ErrBasketNotFound)
}

func TestApplyRecordsHistory(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 3})
	require.NoError(t, err)
	_, err = s.Apply(ctx, "alice", "weekly")
	require.NoError(t, err)

	entries := s.State.History.Recent(1)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionBasketApply, entries[0].Action)
	assert.Equal(t, "weekly", entries[0].Item)
	assert.Equal(t, "alice", entries[0].Actor)
}

func TestDeleteAndList(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 10})
	require.NoError(t, err)
	_, err = s.Save(ctx, "alice", "monthly", map[string]int{"joint_ogkush": 2})
	require.NoError(t, err)

	list := s.List("alice")
	assert.Len(t, list, 2)

	_, err = s.Delete(ctx, "alice", "weekly")
	require.NoError(t, err)
	assert.Len(t, s.List("alice"), 1)

	_, err = s.Delete(ctx, "alice", "weekly")
	assert.ErrorIs(t, err, domain.ErrBasketNotFound)

	_, err = s.Delete(ctx, "alice", "monthly")
	require.NoError(t, err)
	_, ok := s.State.Baskets["alice"]
	assert.False(t, ok)
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Save(ctx, "alice", "weekly", map[string]int{"bud_ogkush": 10})
	require.NoError(t, err)

	list := s.List("alice")
	list["weekly"]["bud_ogkush"] = 999
	assert.Equal(t, 10, s.State.Baskets["alice"]["weekly"]["bud_ogkush"])
}
