package watchlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// AddItemInput carries the fields for adding a coin to the watchlist
type AddItemInput struct {
	CoinID string
	Symbol string
	Name   string
}

// Service handles watchlist operations
type Service struct {
	Repo domain.WatchlistRepository
}

// NewService creates a new watchlist Service instance
func NewService(repo domain.WatchlistRepository) *Service {
	return &Service{Repo: repo}
}

// List retrieves the user's watchlist sorted by name
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistItem, error) {
	return s.Repo.List(ctx, userID)
}

// Add puts a coin on the watchlist, replacing the entry if it already exists
func (s *Service) Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*domain.WatchlistItem, error) {
	item := &domain.WatchlistItem{
		ID:     uuid.New(),
		UserID: userID,
		CoinID: input.CoinID,
		Symbol: input.Symbol,
		Name:   input.Name,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes a watchlist item
func (s *Service) Remove(ctx context.Context, userID, id uuid.UUID) error {
	return s.Repo.Delete(ctx, userID, id)
}
