package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"stockroom-backend/internal/domain"
	"stockroom-backend/internal/settlement"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dedupKeyPrefix = "sale_dedup:"

// Service turns raw sale notifications into settled sales. Deliveries are
// deduplicated in Redis so webhook retries don't double-settle; without a
// Redis client every delivery is treated as new.
type Service struct {
	Settlement *settlement.Service
	Redis      *redis.Client
	DedupTTL   time.Duration
}

type IngestResult struct {
	Parsed     *ParsedSale              `json:"parsed"`
	Settlement *settlement.SettleResult `json:"settlement"`
}

// dedupKey prefers the sender-supplied delivery id; absent one, the body hash
// stands in so byte-identical retries still collapse.
func dedupKey(deliveryID, body string) string {
	if deliveryID != "" {
		return dedupKeyPrefix + deliveryID
	}
	sum := sha256.Sum256([]byte(body))
	return dedupKeyPrefix + hex.EncodeToString(sum[:])
}

// Ingest parses the notification, claims the delivery, and settles the sale.
// A delivery seen within the dedup window returns ErrDuplicateDelivery. The
// claim is released if settlement fails, so the sender's retry can succeed
// once stock catches up.
func (s *Service) Ingest(ctx context.Context, deliveryID, body string) (*IngestResult, error) {
	parsed, err := Parse(body)
	if err != nil {
		return nil, err
	}

	key := dedupKey(deliveryID, body)
	if s.Redis != nil {
		claimed, err := s.Redis.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.DedupTTL).Result()
		if err != nil {
			// Dedup is best-effort; a Redis outage should not drop sales.
			log.Warn().Err(err).Msg("Delivery dedup unavailable; processing anyway")
		} else if !claimed {
			return nil, domain.ErrDuplicateDelivery
		}
	}

	res, err := s.Settlement.Settle(ctx, settlement.SettleInput{
		Item:      parsed.Item,
		Quantity:  parsed.Quantity,
		UnitPrice: parsed.UnitPrice,
	})
	if err != nil {
		if s.Redis != nil {
			if delErr := s.Redis.Del(ctx, key).Err(); delErr != nil {
				log.Warn().Err(delErr).Str("key", key).Msg("Failed to release dedup claim")
			}
		}
		return nil, err
	}

	log.Info().Str("item", parsed.Item).Int("quantity", parsed.Quantity).
		Int("total", parsed.Total).Msg("Sale notification ingested")

	return &IngestResult{Parsed: parsed, Settlement: res}, nil
}
