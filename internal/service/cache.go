package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/uom-service/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// conversionCacheTTL bounds staleness of cached lookups. Mutations on a
// pair invalidate it eagerly; the TTL covers indirect staleness such as a
// renamed unit inside an already-cached expansion.
const conversionCacheTTL = time.Minute

// ConversionCache caches resolved active conversions per ordered pair so
// repeated Convert calls skip the joined lookup. Backed by Redis; a nil
// client disables it and every method becomes a no-op.
type ConversionCache struct {
	client *redis.Client
	log    *zerolog.Logger
}

func NewConversionCache(client *redis.Client, log *zerolog.Logger) *ConversionCache {
	return &ConversionCache{client: client, log: log}
}

func pairKey(from, to uuid.UUID) string {
	return fmt.Sprintf("uom:conversion:%s:%s", from, to)
}

// GetPair returns the cached active conversion for the ordered pair, or
// (nil, false) on miss, disabled cache, or any Redis error. Cache errors
// never fail a request; they log and fall through to the database.
func (c *ConversionCache) GetPair(ctx context.Context, from, to uuid.UUID) (*models.UOMConversion, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, pairKey(from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("conversion cache read failed")
		}
		return nil, false
	}

	var conversion models.UOMConversion
	if err := json.Unmarshal(payload, &conversion); err != nil {
		c.log.Warn().Err(err).Msg("conversion cache entry corrupt, dropping")
		c.client.Del(ctx, pairKey(from, to))
		return nil, false
	}

	// The reference IDs are not part of the wire shape; restore them from
	// the expanded records.
	if conversion.FromUOM == nil || conversion.ToUOM == nil {
		return nil, false
	}
	conversion.FromUOMID = conversion.FromUOM.ID
	conversion.ToUOMID = conversion.ToUOM.ID

	return &conversion, true
}

// SetPair stores the resolved active conversion for its ordered pair.
func (c *ConversionCache) SetPair(ctx context.Context, conversion *models.UOMConversion) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(conversion)
	if err != nil {
		c.log.Warn().Err(err).Msg("conversion cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, pairKey(conversion.FromUOMID, conversion.ToUOMID), payload, conversionCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("conversion cache write failed")
	}
}

// InvalidatePair drops the cache entry for the ordered pair.
func (c *ConversionCache) InvalidatePair(ctx context.Context, from, to uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, pairKey(from, to)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("conversion cache invalidation failed")
	}
}
