package explain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// MockDeltaSource is a mock implementation of DeltaSource for testing
type MockDeltaSource struct {
	mock.Mock
}

func (m *MockDeltaSource) Change(ctx context.Context, id string, days int) (*domain.PriceDelta, error) {
	args := m.Called(ctx, id, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceDelta), args.Error(1)
}

// MockNewsSource is a mock implementation of NewsSource for testing
type MockNewsSource struct {
	mock.Mock
}

func (m *MockNewsSource) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockNewsSource) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

// MockTextGenerator is a mock implementation of TextGenerator for testing
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTextGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func newTestService() (*Service, *MockDeltaSource, *MockNewsSource, *MockTextGenerator) {
	deltas := new(MockDeltaSource)
	news := new(MockNewsSource)
	generator := new(MockTextGenerator)
	service := NewService(deltas, news, generator, zerolog.Nop())
	return service, deltas, news, generator
}

func btcDelta(pct float64) *domain.PriceDelta {
	return &domain.PriceDelta{CoinID: "bitcoin", Name: "Bitcoin", ChangePct: &pct}
}

func articles(titles ...string) []domain.Article {
	out := make([]domain.Article, 0, len(titles))
	for i, title := range titles {
		out = append(out, domain.Article{
			Title:       title,
			URL:         "https://news.example/" + title,
			PublishedAt: time.Date(2026, 8, 20+i, 0, 0, 0, 0, time.UTC),
			Source:      "Example Wire",
		})
	}
	return out
}

func TestExplainMove_MissingNewsCredentialFailsFast(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(domain.ErrNotConfigured)

	_, err := service.ExplainMove(ctx, "bitcoin", 7)

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	deltas.AssertNotCalled(t, "Change")
	news.AssertNotCalled(t, "Search")
	generator.AssertNotCalled(t, "Complete")
}

func TestExplainMove_MissingGeneratorCredentialFailsFast(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(domain.ErrNotConfigured)

	_, err := service.ExplainMove(ctx, "bitcoin", 7)

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	deltas.AssertNotCalled(t, "Change")
}

func TestExplainMove_NoEvidenceSkipsGenerator(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(nil)
	deltas.On("Change", ctx, "bitcoin", 7).Return(btcDelta(-4.2), nil)
	news.On("Search", ctx, "Bitcoin", DefaultMaxArticles).Return([]domain.Article{}, nil)

	result, err := service.ExplainMove(ctx, "bitcoin", 7)

	require.NoError(t, err)
	assert.Equal(t, NoCoverageSummary, result.Summary)
	assert.Empty(t, result.Evidence)
	require.NotNil(t, result.PriceChangePct)
	assert.InDelta(t, -4.2, *result.PriceChangePct, 1e-9)
	generator.AssertNotCalled(t, "Complete")
}

func TestExplainMove_SynthesizesFromEvidence(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	evidence := articles("ETF inflows hit record", "Miners sell ahead of halving")

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(nil)
	deltas.On("Change", ctx, "bitcoin", 7).Return(btcDelta(8.31), nil)
	news.On("Search", ctx, "Bitcoin", DefaultMaxArticles).Return(evidence, nil)
	generator.On("Complete", ctx, systemInstruction, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "ETF inflows hit record") &&
			strings.Contains(prompt, "2026-08-20") &&
			strings.Contains(prompt, "8.31")
	})).Return("Bitcoin rose on ETF inflows.", nil)

	result, err := service.ExplainMove(ctx, "bitcoin", 7)

	require.NoError(t, err)
	assert.Equal(t, "Bitcoin rose on ETF inflows.", result.Summary)
	assert.Equal(t, evidence, result.Evidence)
	generator.AssertExpectations(t)
}

func TestExplainMove_UnknownCoinStillQueriesByID(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(nil)
	// Feed does not know the coin: nil delta, no error.
	deltas.On("Change", ctx, "obscurecoin", 7).Return(nil, nil)
	news.On("Search", ctx, "obscurecoin", DefaultMaxArticles).Return([]domain.Article{}, nil)

	result, err := service.ExplainMove(ctx, "obscurecoin", 0)

	require.NoError(t, err)
	assert.Nil(t, result.PriceChangePct)
	assert.Equal(t, NoCoverageSummary, result.Summary)
}

func TestExplainMove_DeltaFailurePropagates(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(nil)
	deltas.On("Change", ctx, "bitcoin", 7).Return(nil, domain.ErrPriceFeedUnavailable)

	_, err := service.ExplainMove(ctx, "bitcoin", 7)

	assert.ErrorIs(t, err, domain.ErrPriceFeedUnavailable)
	news.AssertNotCalled(t, "Search")
}

func TestExplainMove_NewsFailureMapped(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(nil)
	deltas.On("Change", ctx, "bitcoin", 7).Return(btcDelta(1.0), nil)
	news.On("Search", ctx, "Bitcoin", DefaultMaxArticles).Return(nil, errors.New("429 too many requests"))

	_, err := service.ExplainMove(ctx, "bitcoin", 7)

	assert.ErrorIs(t, err, domain.ErrNewsUnavailable)
	generator.AssertNotCalled(t, "Complete")
}

func TestExplainMove_GeneratorFailureMapped(t *testing.T) {
	ctx := context.Background()
	service, deltas, news, generator := newTestService()

	news.On("Ready").Return(nil)
	generator.On("Ready").Return(nil)
	deltas.On("Change", ctx, "bitcoin", 7).Return(btcDelta(1.0), nil)
	news.On("Search", ctx, "Bitcoin", DefaultMaxArticles).Return(articles("headline"), nil)
	generator.On("Complete", ctx, systemInstruction, mock.Anything).Return("", errors.New("rate limited"))

	_, err := service.ExplainMove(ctx, "bitcoin", 7)

	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
}

func TestExplainMove_EmptyCoinIDRejected(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.ExplainMove(context.Background(), "", 7)

	assert.True(t, domain.IsValidation(err))
}
