package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate is a user-entered, non-live exchange rate between two
// currencies. A row (Base, Quote, Rate) means 1 Base = Rate Quote.
// At most one row exists per (UserID, Base, Quote) pair; updates replace
// the value in place, no history is retained.
type ExchangeRate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Base   Currency
	Quote  Currency
	Rate   decimal.Decimal // up to 4 decimal places
}

// Validate ensures the exchange rate adheres to domain rules
func (r *ExchangeRate) Validate() error {
	if !r.Base.Valid() || !r.Quote.Valid() {
		return NewValidationError("currency must be USD or KZT")
	}
	if r.Base == r.Quote {
		return NewValidationError("base and quote currencies must differ")
	}
	if !r.Rate.IsPositive() {
		return NewValidationError("rate must be positive")
	}
	if r.Rate.Exponent() < -4 {
		return NewValidationError("rate must have at most 4 decimal places")
	}
	return nil
}
