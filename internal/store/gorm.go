package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stockroom-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Document is one persisted record: item lot lists under "item:<key>", and the
// earnings/baskets/history/prices aggregates under fixed ids. This mirrors a
// per-item document layout without tying the engine to any one database.
type Document struct {
	ID        string `gorm:"primaryKey"`
	Kind      string `gorm:"index;not null"`
	Data      datatypes.JSON
	UpdatedAt time.Time
}

func (Document) TableName() string {
	return "documents"
}

const (
	kindItem     = "item"
	kindSettings = "settings"

	itemPrefix  = "item:"
	docEarnings = "earnings"
	docBaskets  = "baskets"
	docHistory  = "history"
	docPrices   = "prices"
)

// Open opens a GORM Postgres DB from DSN. PreferSimpleProtocol disables
// prepared statement caching to avoid 42P05 behind connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// GormStore persists snapshots as documents in a single table.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore migrates the documents table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrate documents: %w", err)
	}
	return &GormStore{DB: db}, nil
}

// SaveAll overwrites the stored snapshot in one transaction: every document is
// dropped and rewritten so stale item documents cannot survive a clear.
func (s *GormStore) SaveAll(ctx context.Context, snap *Snapshot) error {
	docs := make([]Document, 0, len(snap.Items)+4)
	for item, lots := range snap.Items {
		if len(lots) == 0 {
			continue
		}
		b, err := json.Marshal(lots)
		if err != nil {
			return fmt.Errorf("marshal lots for %s: %w", item, err)
		}
		docs = append(docs, Document{ID: itemPrefix + item, Kind: kindItem, Data: b})
	}
	for _, entry := range []struct {
		id   string
		data interface{}
	}{
		{docEarnings, snap.Earnings},
		{docBaskets, snap.Baskets},
		{docHistory, snap.History},
		{docPrices, snap.Prices},
	} {
		b, err := json.Marshal(entry.data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", entry.id, err)
		}
		docs = append(docs, Document{ID: entry.id, Kind: kindSettings, Data: b})
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Document{}).Error; err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		return tx.Create(&docs).Error
	})
}

// LoadAll reads every document back into a snapshot. An empty table yields an
// empty snapshot (fresh start).
func (s *GormStore) LoadAll(ctx context.Context) (*Snapshot, error) {
	var docs []Document
	if err := s.DB.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, err
	}

	snap := Empty()
	for _, doc := range docs {
		switch {
		case strings.HasPrefix(doc.ID, itemPrefix):
			var lots []domain.Lot
			if err := json.Unmarshal(doc.Data, &lots); err != nil {
				return nil, fmt.Errorf("unmarshal %s: %w", doc.ID, err)
			}
			snap.Items[strings.TrimPrefix(doc.ID, itemPrefix)] = lots
		case doc.ID == docEarnings:
			if err := json.Unmarshal(doc.Data, &snap.Earnings); err != nil {
				return nil, fmt.Errorf("unmarshal earnings: %w", err)
			}
		case doc.ID == docBaskets:
			if err := json.Unmarshal(doc.Data, &snap.Baskets); err != nil {
				return nil, fmt.Errorf("unmarshal baskets: %w", err)
			}
		case doc.ID == docHistory:
			if err := json.Unmarshal(doc.Data, &snap.History); err != nil {
				return nil, fmt.Errorf("unmarshal history: %w", err)
			}
		case doc.ID == docPrices:
			if err := json.Unmarshal(doc.Data, &snap.Prices); err != nil {
				return nil, fmt.Errorf("unmarshal prices: %w", err)
			}
		}
	}
	return snap, nil
}
