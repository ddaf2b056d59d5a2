package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for an expense category.
// Uniquely keyed by (UserID, Category); creating an existing pair replaces it.
type Budget struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Category string
	Limit    decimal.Decimal // up to 2 decimal places
	Currency Currency
}

// Validate ensures the budget adheres to domain rules
func (b *Budget) Validate() error {
	if b.Category == "" || len(b.Category) > 60 {
		return NewValidationError("category must be between 1 and 60 characters")
	}
	if !b.Limit.IsPositive() {
		return NewValidationError("budget limit must be positive")
	}
	if b.Limit.Exponent() < -2 {
		return NewValidationError("budget limit must have at most 2 decimal places")
	}
	if !b.Currency.Valid() {
		return NewValidationError("currency must be USD or KZT")
	}
	return nil
}
