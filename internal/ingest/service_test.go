package ingest

import (
	"context"
	"testing"
	"time"

	"stockroom-backend/internal/catalog"
	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/settlement"
	"stockroom-backend/internal/state"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngest(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := state.New(catalog.Default(), 100)
	return &Service{
		Settlement: &settlement.Service{State: st},
		Redis:      client,
		DedupTTL:   24 * time.Hour,
	}, mr
}

func stockLot(s *Service, item, contributor string, qty, price int) {
	s.Settlement.State.Ledger.Append(&domain.Lot{
		ID:          uuid.New(),
		Item:        item,
		Contributor: contributor,
		Quantity:    qty,
		UnitPrice:   price,
		AcquiredAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Seq:         1,
	})
}

func TestIngestSettlesSale(t *testing.T) {
	s, _ := newTestIngest(t)
	stockLot(s, "bud_ogkush", "alice", 10, 780)

	res, err := s.Ingest(context.Background(), "d-1", "Name: **bud_ogkush**\n3x\nProfit: $2400")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Parsed.Quantity)
	assert.Equal(t, 7, s.Settlement.State.Ledger.TotalQuantity("bud_ogkush"))
	assert.Equal(t, 2400, s.Settlement.State.Earnings["alice"])
}

func TestIngestDuplicateDeliveryRejected(t *testing.T) {
	s, _ := newTestIngest(t)
	stockLot(s, "bud_ogkush", "alice", 10, 780)
	ctx := context.Background()
	body := "Name: **bud_ogkush**\n3x\nProfit: $2400"

	_, err := s.Ingest(ctx, "d-1", body)
	require.NoError(t, err)

	_, err = s.Ingest(ctx, "d-1", body)
	assert.ErrorIs(t, err, domain.ErrDuplicateDelivery)
	assert.Equal(t, 7, s.Settlement.State.Ledger.TotalQuantity("bud_ogkush"))
}

func TestIngestDedupByBodyHashWithoutDeliveryID(t *testing.T) {
	s, _ := newTestIngest(t)
	stockLot(s, "bud_ogkush", "alice", 10, 780)
	ctx := context.Background()
	body := "2x bud_ogkush purchased for $1600"

	_, err := s.Ingest(ctx, "", body)
	require.NoError(t, err)
	_, err = s.Ingest(ctx, "", body)
	assert.ErrorIs(t, err, domain.ErrDuplicateDelivery)
}

func TestIngestDedupWindowExpires(t *testing.T) {
	s, mr := newTestIngest(t)
	stockLot(s, "bud_ogkush", "alice", 10, 780)
	ctx := context.Background()
	body := "Name: **bud_ogkush**\n1x\nProfit: $800"

	_, err := s.Ingest(ctx, "d-1", body)
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)

	_, err = s.Ingest(ctx, "d-1", body)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Settlement.State.Ledger.TotalQuantity("bud_ogkush"))
}

func TestIngestReleasesClaimOnSettlementFailure(t *testing.T) {
	s, _ := newTestIngest(t)
	ctx := context.Background()
	body := "Name: **bud_ogkush**\n3x\nProfit: $2400"

	// No stock yet, so settlement fails and the claim must not stick.
	_, err := s.Ingest(ctx, "d-1", body)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stockLot(s, "bud_ogkush", "alice", 10, 780)
	_, err = s.Ingest(ctx, "d-1", body)
	require.NoError(t, err)
}

func TestIngestWithoutRedisSkipsDedup(t *testing.T) {
	s, _ := newTestIngest(t)
	s.Redis = nil
	stockLot(s, "bud_ogkush", "alice", 10, 780)
	ctx := context.Background()
	body := "Name: **bud_ogkush**\n2x\nProfit: $1600"

	_, err := s.Ingest(ctx, "d-1", body)
	require.NoError(t, err)
	_, err = s.Ingest(ctx, "d-1", body)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Settlement.State.Ledger.TotalQuantity("bud_ogkush"))
}

func TestIngestUnparseableBody(t *testing.T) {
	s, _ := newTestIngest(t)
	_, err := s.Ingest(context.Background(), "d-1", "hello there")
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}
