// Package explain correlates a coin's price delta with recent news and
// synthesizes an evidence-grounded explanation of the move. The pipeline
// keeps no state between invocations.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// DefaultDays is the lookback window when the caller does not specify one
const DefaultDays = 7

// DefaultMaxArticles caps how many articles are retrieved as evidence
const DefaultMaxArticles = 5

// NoCoverageSummary is returned verbatim when the news search yields nothing.
// Declining to explain is a policy, not an error: the generator must never
// be asked to speculate without grounding.
const NoCoverageSummary = "Not enough recent news coverage to explain the move without speculation."

const systemInstruction = "Respond in concise English."

// DeltaSource resolves a coin's percentage change over a lookback window.
// Satisfied by pricing.Service.
type DeltaSource interface {
	Change(ctx context.Context, id string, days int) (*domain.PriceDelta, error)
}

// Service runs the move-explanation pipeline:
// price delta -> news evidence -> {no-evidence | synthesize}.
type Service struct {
	deltas      DeltaSource
	news        domain.NewsSource
	generator   domain.TextGenerator
	maxArticles int
	log         zerolog.Logger
}

// NewService creates a new explain Service instance
func NewService(deltas DeltaSource, news domain.NewsSource, generator domain.TextGenerator, log zerolog.Logger) *Service {
	return &Service{
		deltas:      deltas,
		news:        news,
		generator:   generator,
		maxArticles: DefaultMaxArticles,
		log:         log.With().Str("component", "explain").Logger(),
	}
}

// ExplainMove explains a coin's move over the last days days.
//
// Both upstream credentials are checked before any network call: a missing
// key is a configuration failure the operator must fix, and it should never
// surface mid-pipeline as a fake transient error.
func (s *Service) ExplainMove(ctx context.Context, coinID string, days int) (*domain.MoveExplanation, error) {
	if coinID == "" {
		return nil, domain.NewValidationError("coin id cannot be empty")
	}
	if days <= 0 {
		days = DefaultDays
	}

	if err := s.news.Ready(); err != nil {
		return nil, fmt.Errorf("news source: %w", err)
	}
	if err := s.generator.Ready(); err != nil {
		return nil, fmt.Errorf("text generator: %w", err)
	}

	delta, err := s.deltas.Change(ctx, coinID, days)
	if err != nil {
		return nil, err
	}
	name := coinID
	var changePct *float64
	if delta != nil {
		changePct = delta.ChangePct
		if delta.Name != "" {
			name = delta.Name
		}
	}

	articles, err := s.news.Search(ctx, name, s.maxArticles)
	if err != nil {
		return nil, fmt.Errorf("search news for %q: %w: %v", name, domain.ErrNewsUnavailable, err)
	}

	if len(articles) == 0 {
		s.log.Info().Str("coin", coinID).Msg("no news evidence, declining to explain")
		return &domain.MoveExplanation{
			Summary:        NoCoverageSummary,
			Evidence:       []domain.Article{},
			PriceChangePct: changePct,
		}, nil
	}

	summary, err := s.generator.Complete(ctx, systemInstruction, buildPrompt(name, days, changePct, articles))
	if err != nil {
		return nil, fmt.Errorf("generate explanation for %q: %w: %v", name, domain.ErrGeneratorUnavailable, err)
	}

	return &domain.MoveExplanation{
		Summary:        summary,
		Evidence:       articles,
		PriceChangePct: changePct,
	}, nil
}

// buildPrompt embeds the evidence list and the measured delta into a single
// user prompt. The rules pin the generator to the supplied articles.
func buildPrompt(name string, days int, changePct *float64, articles []domain.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a crypto analyst. Explain the last %dd move for %s.\n\n", days, name)
	b.WriteString("Rules:\n")
	b.WriteString("- Only use evidence from the provided news items.\n")
	b.WriteString("- If the news is insufficient, say so and avoid speculation.\n")
	b.WriteString("- Provide a short paragraph followed by a bullet list of cited headlines with dates.\n\n")
	b.WriteString("News items:\n")
	for _, article := range articles {
		fmt.Fprintf(&b, "- %s (%s) [%s]\n", article.Title, article.PublishedAt.Format("2006-01-02"), article.Source)
	}

	change := "unknown"
	if changePct != nil {
		change = fmt.Sprintf("%.2f", *changePct)
	}
	fmt.Fprintf(&b, "\nPrice change over %dd: %s%%.\n", days, change)

	return b.String()
}
