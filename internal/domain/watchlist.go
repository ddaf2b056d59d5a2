package domain

import "github.com/google/uuid"

// WatchlistItem is a coin the user tracks without holding it.
// Uniquely keyed by (UserID, CoinID).
type WatchlistItem struct {
	ID     uuid.UUID
	UserID uuid.UUID
	CoinID string
	Symbol string
	Name   string
}

// Validate ensures the watchlist item adheres to domain rules
func (w *WatchlistItem) Validate() error {
	if w.CoinID == "" {
		return NewValidationError("coin id cannot be empty")
	}
	if w.Symbol == "" || len(w.Symbol) > 20 {
		return NewValidationError("symbol must be between 1 and 20 characters")
	}
	if w.Name == "" || len(w.Name) > 60 {
		return NewValidationError("name must be between 1 and 60 characters")
	}
	return nil
}
