// Package rates maintains the user's manual exchange rates: one live value
// per currency pair, upsert-only, no history. Snapshots computed before a
// rate change keep the figures they were rendered with.
package rates

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// UpsertRateInput carries the fields for setting a manual rate
type UpsertRateInput struct {
	Base  string
	Quote string
	Rate  string
}

// Service handles manual exchange rate operations
type Service struct {
	Repo domain.ExchangeRateRepository
}

// NewService creates a new rates Service instance
func NewService(repo domain.ExchangeRateRepository) *Service {
	return &Service{Repo: repo}
}

// List retrieves all manual rates for a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.ExchangeRate, error) {
	return s.Repo.List(ctx, userID)
}

// Upsert creates or replaces the single rate for the (base, quote) pair
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, input UpsertRateInput) (*domain.ExchangeRate, error) {
	value, err := decimal.NewFromString(input.Rate)
	if err != nil {
		return nil, domain.NewValidationError("invalid rate format: %v", err)
	}

	r := &domain.ExchangeRate{
		ID:     uuid.New(),
		UserID: userID,
		Base:   domain.Currency(input.Base),
		Quote:  domain.Currency(input.Quote),
		Rate:   value,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
