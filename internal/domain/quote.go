package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceQuote is a spot price for a coin in the reporting currency.
// Quotes are ephemeral: fetched from the external feed and held only in the
// quote cache, never persisted.
type PriceQuote struct {
	CoinID    string          `json:"coinId"`
	Price     decimal.Decimal `json:"price"`
	Change24h *float64        `json:"change24h"` // nil when the feed has no data
}

// PriceDelta is a coin's percentage change over a lookback window.
type PriceDelta struct {
	CoinID    string
	Name      string   // display name as known by the feed
	ChangePct *float64 // nil when the feed has no data for the window
}

// CoinSearchResult is a coin matched by a free-text feed search, optionally
// decorated with current market data.
type CoinSearchResult struct {
	CoinID    string           `json:"id"`
	Name      string           `json:"name"`
	Symbol    string           `json:"symbol"`
	Price     *decimal.Decimal `json:"price"`
	Change24h *float64         `json:"change24h"`
}

// Article is a single piece of news evidence.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
}

// AssetClass is one slice of the asset-class breakdown. The set of classes in
// a snapshot is exhaustive and mutually exclusive.
type AssetClass struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// CoinAllocation is one priced holding inside a snapshot.
type CoinAllocation struct {
	ID            uuid.UUID       `json:"id"`
	CoinID        string          `json:"coinId"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Price         decimal.Decimal `json:"price"`
	Value         decimal.Decimal `json:"value"`
	Change24h     *float64        `json:"change24h"`
	AllocationPct float64         `json:"allocation"`
}

// AllocationSnapshot is a currency-normalized view of the whole portfolio.
// It is derived per request from the ledger, the holdings and the quotes in
// effect at computation time, and is never persisted: changing a manual rate
// afterwards does not alter snapshots already rendered.
type AllocationSnapshot struct {
	AssetClasses []AssetClass     `json:"assetClasses"`
	Coins        []CoinAllocation `json:"coins"`
}

// MoveExplanation is the outcome of the move-explanation pipeline.
// When Evidence is empty the Summary is a fixed statement that coverage is
// insufficient; the generator is never consulted without evidence.
type MoveExplanation struct {
	Summary        string    `json:"summary"`
	Evidence       []Article `json:"evidence"`
	PriceChangePct *float64  `json:"priceChange"`
}
