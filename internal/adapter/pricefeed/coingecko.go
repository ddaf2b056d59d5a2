// Package pricefeed implements the PriceFeed port against the CoinGecko API.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// DefaultBaseURL is the public CoinGecko API root
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// maxPerPage is CoinGecko's markets page size cap as used by the dashboard
const maxPerPage = 50

// CoinGecko talks to the CoinGecko markets API. All requests are bounded by
// the client timeout; the adapter performs no retries.
type CoinGecko struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewCoinGecko creates a new CoinGecko client. An empty baseURL selects the
// public API.
func NewCoinGecko(baseURL string, timeout time.Duration, log zerolog.Logger) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "coingecko").Logger(),
	}
}

// marketRow is one element of a /coins/markets response
type marketRow struct {
	ID           string   `json:"id"`
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice float64  `json:"current_price"`
	Change24h    *float64 `json:"price_change_percentage_24h"`
	Change24hIn  *float64 `json:"price_change_percentage_24h_in_currency"`
	Change7dIn   *float64 `json:"price_change_percentage_7d_in_currency"`
	Change14dIn  *float64 `json:"price_change_percentage_14d_in_currency"`
	Change30dIn  *float64 `json:"price_change_percentage_30d_in_currency"`
	Change1yIn   *float64 `json:"price_change_percentage_1y_in_currency"`
}

// Quotes fetches current USD prices for the given coin ids. Ids CoinGecko
// does not know are absent from the result.
func (c *CoinGecko) Quotes(ctx context.Context, ids []string) (map[string]domain.PriceQuote, error) {
	if len(ids) == 0 {
		return map[string]domain.PriceQuote{}, nil
	}

	perPage := len(ids)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", "1")
	q.Set("sparkline", "false")

	var rows []marketRow
	if err := c.getJSON(ctx, "/coins/markets", q, &rows); err != nil {
		return nil, err
	}

	quotes := make(map[string]domain.PriceQuote, len(rows))
	for _, row := range rows {
		quotes[row.ID] = domain.PriceQuote{
			CoinID:    row.ID,
			Price:     decimal.NewFromFloat(row.CurrentPrice),
			Change24h: row.Change24h,
		}
	}
	return quotes, nil
}

// Change resolves a coin's percentage change over a lookback window. Returns
// (nil, nil) when CoinGecko does not know the coin.
func (c *CoinGecko) Change(ctx context.Context, id string, days int) (*domain.PriceDelta, error) {
	window := changeWindow(days)

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", id)
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", window)

	var rows []marketRow
	if err := c.getJSON(ctx, "/coins/markets", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &domain.PriceDelta{
		CoinID:    row.ID,
		Name:      row.Name,
		ChangePct: row.changeFor(window),
	}, nil
}

// Search finds coins by free-text query and decorates the matches with
// current market data where available.
func (c *CoinGecko) Search(ctx context.Context, query string, limit int) ([]domain.CoinSearchResult, error) {
	q := url.Values{}
	q.Set("query", query)

	var searchResp struct {
		Coins []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"coins"`
	}
	if err := c.getJSON(ctx, "/search", q, &searchResp); err != nil {
		return nil, err
	}

	coins := searchResp.Coins
	if len(coins) > limit {
		coins = coins[:limit]
	}
	if len(coins) == 0 {
		return []domain.CoinSearchResult{}, nil
	}

	ids := make([]string, 0, len(coins))
	for _, coin := range coins {
		ids = append(ids, coin.ID)
	}
	// Market decoration is best effort: a failed markets call still returns
	// the bare search matches.
	markets := make(map[string]marketRow)
	mq := url.Values{}
	mq.Set("vs_currency", "usd")
	mq.Set("ids", strings.Join(ids, ","))
	mq.Set("order", "market_cap_desc")
	mq.Set("per_page", strconv.Itoa(len(ids)))
	mq.Set("page", "1")
	mq.Set("sparkline", "false")
	var rows []marketRow
	if err := c.getJSON(ctx, "/coins/markets", mq, &rows); err != nil {
		c.log.Warn().Err(err).Msg("market decoration for search failed")
	} else {
		for _, row := range rows {
			markets[row.ID] = row
		}
	}

	results := make([]domain.CoinSearchResult, 0, len(coins))
	for _, coin := range coins {
		result := domain.CoinSearchResult{
			CoinID: coin.ID,
			Name:   coin.Name,
			Symbol: strings.ToUpper(coin.Symbol),
		}
		if row, ok := markets[coin.ID]; ok {
			price := decimal.NewFromFloat(row.CurrentPrice)
			result.Price = &price
			result.Change24h = row.Change24h
		}
		results = append(results, result)
	}
	return results, nil
}

func (c *CoinGecko) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build coingecko request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode coingecko response: %w", err)
	}
	return nil
}

// changeWindow maps a day count to the nearest window CoinGecko supports
func changeWindow(days int) string {
	switch {
	case days <= 1:
		return "24h"
	case days <= 7:
		return "7d"
	case days <= 14:
		return "14d"
	case days <= 30:
		return "30d"
	default:
		return "1y"
	}
}

func (r marketRow) changeFor(window string) *float64 {
	switch window {
	case "24h":
		if r.Change24hIn != nil {
			return r.Change24hIn
		}
		return r.Change24h
	case "7d":
		return r.Change7dIn
	case "14d":
		return r.Change14dIn
	case "30d":
		return r.Change30dIn
	default:
		return r.Change1yIn
	}
}
