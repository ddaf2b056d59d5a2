package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

const redisKeyPrefix = "quotes:"

// Redis is a QuoteCache backed by a Redis instance. Expiry is delegated to
// Redis' native key TTL; the value is the JSON-encoded quote set written in a
// single SET, so readers never observe a partial entry.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedis creates a new Redis cache with the given TTL
func NewRedis(client *redis.Client, ttl time.Duration, log zerolog.Logger) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "quote-cache").Logger(),
	}
}

// Get returns the cached quote set for key. Redis errors are treated as
// misses: the caller falls through to the feed, which is the safe direction.
func (c *Redis) Get(ctx context.Context, key string) (map[string]domain.PriceQuote, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get failed, treating as miss")
		}
		return nil, false
	}

	var quotes map[string]domain.PriceQuote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cached entry undecodable, treating as miss")
		return nil, false
	}
	return quotes, true
}

// Put stores the quote set under key with the configured TTL. A failed write
// only costs a future cache miss, so it is logged and swallowed.
func (c *Redis) Put(ctx context.Context, key string, quotes map[string]domain.PriceQuote) {
	raw, err := json.Marshal(quotes)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to encode quotes for cache")
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}
