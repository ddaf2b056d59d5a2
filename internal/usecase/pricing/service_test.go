package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// MockPriceFeed is a mock implementation of PriceFeed for testing
type MockPriceFeed struct {
	mock.Mock
}

func (m *MockPriceFeed) Quotes(ctx context.Context, ids []string) (map[string]domain.PriceQuote, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PriceQuote), args.Error(1)
}

func (m *MockPriceFeed) Change(ctx context.Context, id string, days int) (*domain.PriceDelta, error) {
	args := m.Called(ctx, id, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceDelta), args.Error(1)
}

func (m *MockPriceFeed) Search(ctx context.Context, query string, limit int) ([]domain.CoinSearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoinSearchResult), args.Error(1)
}

// stubCache is a hand-rolled QuoteCache with scriptable hits
type stubCache struct {
	entries map[string]map[string]domain.PriceQuote
	puts    []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]map[string]domain.PriceQuote)}
}

func (c *stubCache) Get(_ context.Context, key string) (map[string]domain.PriceQuote, bool) {
	quotes, ok := c.entries[key]
	return quotes, ok
}

func (c *stubCache) Put(_ context.Context, key string, quotes map[string]domain.PriceQuote) {
	c.entries[key] = quotes
	c.puts = append(c.puts, key)
}

func btcQuote() map[string]domain.PriceQuote {
	change := -1.2
	return map[string]domain.PriceQuote{
		"bitcoin": {CoinID: "bitcoin", Price: decimal.NewFromInt(50000), Change24h: &change},
	}
}

func TestQuotes_EmptyIDSetSkipsFeed(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	service := NewService(feed, newStubCache(), zerolog.Nop())

	quotes, err := service.Quotes(ctx, nil)

	require.NoError(t, err)
	assert.Empty(t, quotes)
	feed.AssertNotCalled(t, "Quotes")
}

func TestQuotes_MissFetchesAndStores(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	cache := newStubCache()
	service := NewService(feed, cache, zerolog.Nop())

	feed.On("Quotes", mock.Anything, []string{"bitcoin"}).Return(btcQuote(), nil).Once()

	quotes, err := service.Quotes(ctx, []string{"bitcoin"})

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Equal(t, []string{"bitcoin"}, cache.puts)
	feed.AssertExpectations(t)
}

func TestQuotes_HitSkipsFeed(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	cache := newStubCache()
	cache.entries["bitcoin,ethereum"] = btcQuote()
	service := NewService(feed, cache, zerolog.Nop())

	quotes, err := service.Quotes(ctx, []string{"ethereum", "bitcoin"})

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	feed.AssertNotCalled(t, "Quotes")
}

func TestQuotes_KeyIsSortedAndDeduplicated(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	cache := newStubCache()
	service := NewService(feed, cache, zerolog.Nop())

	feed.On("Quotes", mock.Anything, []string{"bitcoin", "ethereum"}).Return(btcQuote(), nil).Once()

	_, err := service.Quotes(ctx, []string{"ethereum", "bitcoin", "ethereum", ""})

	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin,ethereum"}, cache.puts)
	feed.AssertExpectations(t)
}

func TestQuotes_FeedFailurePropagates(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	service := NewService(feed, newStubCache(), zerolog.Nop())

	feed.On("Quotes", mock.Anything, []string{"bitcoin"}).Return(nil, errors.New("connection refused"))

	_, err := service.Quotes(ctx, []string{"bitcoin"})

	assert.ErrorIs(t, err, domain.ErrPriceFeedUnavailable)
}

func TestQuotes_UnknownIDAbsentNotError(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	service := NewService(feed, newStubCache(), zerolog.Nop())

	// Feed only knows bitcoin; "dogwifhat" is silently absent.
	feed.On("Quotes", mock.Anything, []string{"bitcoin", "dogwifhat"}).Return(btcQuote(), nil)

	quotes, err := service.Quotes(ctx, []string{"bitcoin", "dogwifhat"})

	require.NoError(t, err)
	assert.Contains(t, quotes, "bitcoin")
	assert.NotContains(t, quotes, "dogwifhat")
}

func TestChange_FeedFailureMapped(t *testing.T) {
	ctx := context.Background()
	feed := new(MockPriceFeed)
	service := NewService(feed, newStubCache(), zerolog.Nop())

	feed.On("Change", mock.Anything, "bitcoin", 7).Return(nil, errors.New("boom"))

	_, err := service.Change(ctx, "bitcoin", 7)

	assert.ErrorIs(t, err, domain.ErrPriceFeedUnavailable)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "", CacheKey(nil))
	assert.Equal(t, "bitcoin", CacheKey([]string{"bitcoin"}))
	assert.Equal(t, "bitcoin,ethereum", CacheKey([]string{"ethereum", "bitcoin", "bitcoin"}))
}
