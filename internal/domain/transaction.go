package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is one of the currencies the ledger accepts
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyKZT Currency = "KZT"
)

// ReportingCurrency is the single currency all portfolio figures are
// normalized into for display.
const ReportingCurrency = CurrencyUSD

// Valid reports whether the currency is one of the supported values
func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyKZT
}

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single cash ledger entry.
// Once priced into a snapshot it is never mutated by the snapshot path; only
// the owning user's create/update/delete operations change it.
type Transaction struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Type     TransactionType
	Amount   decimal.Decimal // absolute value, up to 2 decimal places
	Currency Currency
	Category string
	Note     string
	Date     time.Time
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return NewValidationError("transaction type must be income or expense")
	}
	if !t.Amount.IsPositive() {
		return NewValidationError("transaction amount must be positive")
	}
	if t.Amount.Exponent() < -2 {
		return NewValidationError("transaction amount must have at most 2 decimal places")
	}
	if !t.Currency.Valid() {
		return NewValidationError("currency must be USD or KZT")
	}
	if t.Category == "" || len(t.Category) > 60 {
		return NewValidationError("category must be between 1 and 60 characters")
	}
	if len(t.Note) > 240 {
		return NewValidationError("note must be at most 240 characters")
	}
	if t.Date.IsZero() {
		return NewValidationError("transaction date is required")
	}
	return nil
}
