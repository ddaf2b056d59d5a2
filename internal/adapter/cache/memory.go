// Package cache provides QuoteCache backends: an in-process mutex-guarded map
// and a Redis-backed variant for deployments with more than one replica.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// Memory is an in-process TTL cache for quote sets. Reads and writes are
// atomic per key: an entry is stored as a whole map and copied on the way in
// and out, so no reader ever observes a partial write.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	quotes    map[string]domain.PriceQuote
	expiresAt time.Time
}

// NewMemory creates a new Memory cache with the given TTL
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached quote set for key, or ok=false on a miss or when the
// entry's age has reached the TTL
func (c *Memory) Get(_ context.Context, key string) (map[string]domain.PriceQuote, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return copyQuotes(entry.quotes), true
}

// Put stores the quote set under key with a fresh expiry
func (c *Memory) Put(_ context.Context, key string, quotes map[string]domain.PriceQuote) {
	entry := memoryEntry{
		quotes:    copyQuotes(quotes),
		expiresAt: c.now().Add(c.ttl),
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

func copyQuotes(quotes map[string]domain.PriceQuote) map[string]domain.PriceQuote {
	out := make(map[string]domain.PriceQuote, len(quotes))
	for id, q := range quotes {
		out[id] = q
	}
	return out
}
