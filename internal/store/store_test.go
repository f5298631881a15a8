package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stockroom-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleSnapshot() *Snapshot {
	snap := Empty()
	snap.Items["bud_ogkush"] = []domain.Lot{
		{
			ID:          uuid.New(),
			Item:        "bud_ogkush",
			Contributor: "alice",
			Quantity:    5,
			UnitPrice:   780,
			AcquiredAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			Seq:         1,
		},
	}
	snap.Earnings["alice"] = 1200
	snap.Baskets["alice"] = map[string]domain.Basket{
		"restock": {"bud_ogkush": 10, "rollingpaper": 50},
	}
	snap.History = []domain.HistoryEntry{
		{Timestamp: time.Now().UTC(), Action: domain.ActionAdd, Item: "bud_ogkush", Quantity: 5, Price: 780, Actor: "alice"},
	}
	snap.Prices["bud_ogkush"] = 800
	return snap
}

func newGormStore(t *testing.T) *GormStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	s, err := NewGormStore(db)
	require.NoError(t, err)
	return s
}

func TestGormStoreRoundTrip(t *testing.T) {
	s := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, sampleSnapshot()))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Items["bud_ogkush"], 1)
	assert.Equal(t, "alice", loaded.Items["bud_ogkush"][0].Contributor)
	assert.Equal(t, 5, loaded.Items["bud_ogkush"][0].Quantity)
	assert.Equal(t, 1200, loaded.Earnings["alice"])
	assert.Equal(t, 10, int(loaded.Baskets["alice"]["restock"]["bud_ogkush"]))
	assert.Equal(t, 800, loaded.Prices["bud_ogkush"])
	require.Len(t, loaded.History, 1)
	assert.Equal(t, domain.ActionAdd, loaded.History[0].Action)
}

func TestGormStoreSaveOverwrites(t *testing.T) {
	s := newGormStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, sampleSnapshot()))

	// Second save with the item gone must not leave the old item document behind.
	next := Empty()
	next.Earnings["bob"] = 10
	require.NoError(t, s.SaveAll(ctx, next))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.Equal(t, map[string]int{"bob": 10}, loaded.Earnings)
}

func TestGormStoreLoadEmpty(t *testing.T) {
	s := newGormStore(t)
	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.Empty(t, loaded.Earnings)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, sampleSnapshot()))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1200, loaded.Earnings["alice"])
	require.Len(t, loaded.Items["bud_ogkush"], 1)
	assert.Equal(t, 780, loaded.Items["bud_ogkush"][0].UnitPrice)
}

func TestFileStoreMissingFileIsFreshStart(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}
