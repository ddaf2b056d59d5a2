package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding represents a crypto position owned by a user.
// Uniquely keyed by (UserID, CoinID); creating an existing pair is an upsert.
type Holding struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CoinID    string // stable external identifier, e.g. "bitcoin"
	Symbol    string
	Name      string
	Amount    decimal.Decimal // quantity held, up to 8 decimal places
	UpdatedAt time.Time
}

// Validate ensures the holding adheres to domain rules
func (h *Holding) Validate() error {
	if h.CoinID == "" {
		return NewValidationError("coin id cannot be empty")
	}
	if h.Symbol == "" || len(h.Symbol) > 20 {
		return NewValidationError("symbol must be between 1 and 20 characters")
	}
	if h.Name == "" || len(h.Name) > 80 {
		return NewValidationError("name must be between 1 and 80 characters")
	}
	if h.Amount.IsNegative() {
		return NewValidationError("holding amount cannot be negative")
	}
	if h.Amount.Exponent() < -8 {
		return NewValidationError("holding amount must have at most 8 decimal places")
	}
	return nil
}
