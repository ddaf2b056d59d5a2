// Package pricing fronts the external price feed with a TTL-bounded cache.
// The cache is the only shared mutable state in the request path; everything
// downstream of it is pure.
package pricing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// Service serves spot quotes from the cache, falling back to the feed on a
// miss or an expired entry. Two concurrent misses for the same key may both
// fetch; last writer wins, which is acceptable because prices are effectively
// idempotent within the TTL window.
type Service struct {
	feed  domain.PriceFeed
	cache domain.QuoteCache
	log   zerolog.Logger
}

// NewService creates a new pricing Service instance
func NewService(feed domain.PriceFeed, cache domain.QuoteCache, log zerolog.Logger) *Service {
	return &Service{
		feed:  feed,
		cache: cache,
		log:   log.With().Str("component", "pricing").Logger(),
	}
}

// CacheKey returns the canonical cache key for a set of coin ids: sorted,
// deduplicated, comma-joined. An empty set yields an empty key.
func CacheKey(ids []string) string {
	unique := canonicalIDs(ids)
	return strings.Join(unique, ",")
}

func canonicalIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)
	return unique
}

// Quotes returns current prices for the given coin ids, keyed by coin id.
// Ids unknown to the feed are absent from the result; callers treat a missing
// coin as zero-valued. An empty id set returns an empty map without touching
// the cache or the feed.
func (s *Service) Quotes(ctx context.Context, ids []string) (map[string]domain.PriceQuote, error) {
	unique := canonicalIDs(ids)
	if len(unique) == 0 {
		return map[string]domain.PriceQuote{}, nil
	}

	key := strings.Join(unique, ",")
	if quotes, ok := s.cache.Get(ctx, key); ok {
		return quotes, nil
	}

	// The fetch is detached from the caller's cancellation so that an aborted
	// request still populates the cache for the next caller. The feed adapter
	// carries its own timeout.
	fetchCtx := context.WithoutCancel(ctx)
	quotes, err := s.feed.Quotes(fetchCtx, unique)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes for %q: %w: %v", key, domain.ErrPriceFeedUnavailable, err)
	}

	s.cache.Put(fetchCtx, key, quotes)
	s.log.Debug().Str("key", key).Int("quotes", len(quotes)).Msg("quote cache refreshed")

	return quotes, nil
}

// Change resolves a coin's percentage change over the lookback window. This
// is the cache's sibling lookup: deltas are volatile and request-scoped, so
// they bypass the cache entirely. Missing data yields a nil delta, not an
// error.
func (s *Service) Change(ctx context.Context, id string, days int) (*domain.PriceDelta, error) {
	delta, err := s.feed.Change(ctx, id, days)
	if err != nil {
		return nil, fmt.Errorf("fetch %dd change for %q: %w: %v", days, id, domain.ErrPriceFeedUnavailable, err)
	}
	return delta, nil
}
