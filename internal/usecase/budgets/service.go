package budgets

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// UpsertBudgetInput carries the fields for setting a category budget
type UpsertBudgetInput struct {
	Category string
	Limit    string
	Currency string
}

// Service handles budget operations
type Service struct {
	Repo domain.BudgetRepository
}

// NewService creates a new budgets Service instance
func NewService(repo domain.BudgetRepository) *Service {
	return &Service{Repo: repo}
}

// List retrieves all budgets for a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	return s.Repo.List(ctx, userID)
}

// Upsert creates or replaces the budget for a category
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, input UpsertBudgetInput) (*domain.Budget, error) {
	limit, err := decimal.NewFromString(input.Limit)
	if err != nil {
		return nil, domain.NewValidationError("invalid limit format: %v", err)
	}

	b := &domain.Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Category: input.Category,
		Limit:    limit,
		Currency: domain.Currency(input.Currency),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
