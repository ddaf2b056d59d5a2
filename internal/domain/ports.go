package domain

import "context"

// PriceFeed is the external spot-price source. Coin ids the feed does not
// recognize are simply absent from results, never an error.
type PriceFeed interface {
	// Quotes fetches current prices in the reporting currency for the given
	// coin ids
	Quotes(ctx context.Context, ids []string) (map[string]PriceQuote, error)

	// Change resolves a coin's percentage change over a lookback window of
	// the given number of days. Returns (nil, nil) when the feed does not
	// know the coin.
	Change(ctx context.Context, id string, days int) (*PriceDelta, error)

	// Search finds coins by free-text query, at most limit results
	Search(ctx context.Context, query string, limit int) ([]CoinSearchResult, error)
}

// QuoteProvider is the cached price lookup consumed by the portfolio path.
type QuoteProvider interface {
	Quotes(ctx context.Context, ids []string) (map[string]PriceQuote, error)
}

// QuoteCache stores quote sets under a derived key for a bounded time.
// Implementations must be safe for concurrent use and must never expose a
// partially written entry.
type QuoteCache interface {
	// Get returns the cached quote set for key, or ok=false on a miss or an
	// expired entry
	Get(ctx context.Context, key string) (map[string]PriceQuote, bool)

	// Put stores the quote set under key with a fresh expiry
	Put(ctx context.Context, key string, quotes map[string]PriceQuote)
}

// NewsSource is the external article search used as explanation evidence.
type NewsSource interface {
	// Ready reports whether the source is usable; ErrNotConfigured when the
	// credential is absent. Checked before any network call is attempted.
	Ready() error

	// Search returns up to limit articles matching the query, most recent
	// first
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}

// TextGenerator is the external natural-language generation service.
type TextGenerator interface {
	// Ready reports whether the generator is usable; ErrNotConfigured when
	// the credential is absent
	Ready() error

	// Complete runs a single generation with a system instruction and one
	// user prompt, returning unstructured text
	Complete(ctx context.Context, system, prompt string) (string, error)
}
