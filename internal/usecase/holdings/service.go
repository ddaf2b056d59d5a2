package holdings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// UpsertHoldingInput carries the fields for creating or replacing a holding
type UpsertHoldingInput struct {
	CoinID string
	Symbol string
	Name   string
	Amount string
}

// Service handles holding-related operations
type Service struct {
	Repo domain.HoldingRepository
}

// NewService creates a new holdings Service instance
func NewService(repo domain.HoldingRepository) *Service {
	return &Service{Repo: repo}
}

// List retrieves all holdings for a user, most recently updated first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	return s.Repo.List(ctx, userID)
}

// Upsert creates the holding or replaces the existing one for the same coin
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, input UpsertHoldingInput) (*domain.Holding, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, domain.NewValidationError("invalid amount format: %v", err)
	}

	h := &domain.Holding{
		ID:        uuid.New(),
		UserID:    userID,
		CoinID:    input.CoinID,
		Symbol:    input.Symbol,
		Name:      input.Name,
		Amount:    amount,
		UpdatedAt: time.Now(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// UpdateAmount changes only the amount of an existing holding
func (s *Service) UpdateAmount(ctx context.Context, userID, id uuid.UUID, rawAmount string) (*domain.Holding, error) {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, domain.NewValidationError("invalid amount format: %v", err)
	}

	h, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	h.Amount = amount
	h.UpdatedAt = time.Now()
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateAmount(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Delete removes a holding
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.Repo.Delete(ctx, userID, id)
}
