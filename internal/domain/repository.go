package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionFilter narrows a ledger listing. Zero values mean "no filter".
type TransactionFilter struct {
	Type     TransactionType
	Category string
	From     *time.Time
	To       *time.Time
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// List retrieves all holdings for a user, most recently updated first
	List(ctx context.Context, userID uuid.UUID) ([]*Holding, error)

	// GetByID retrieves a holding by its ID, scoped to the user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Holding, error)

	// Upsert creates the holding or, if the (user, coin) pair exists,
	// replaces its amount, symbol and name. h.ID is overwritten with the
	// stored row's id, which survives conflicts.
	Upsert(ctx context.Context, h *Holding) error

	// UpdateAmount changes only the amount of an existing holding
	UpdateAmount(ctx context.Context, h *Holding) error

	// Delete removes a holding, scoped to the user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TransactionRepository defines the interface for ledger persistence operations
type TransactionRepository interface {
	// List retrieves a user's transactions matching the filter, newest first
	List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*Transaction, error)

	// GetByID retrieves a transaction by its ID, scoped to the user
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// Update replaces the mutable fields of an existing transaction
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction, scoped to the user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExchangeRateRepository defines the interface for manual rate persistence
type ExchangeRateRepository interface {
	// List retrieves all manual rates for a user
	List(ctx context.Context, userID uuid.UUID) ([]*ExchangeRate, error)

	// Get retrieves the rate for a (base, quote) pair, or ErrNotFound
	Get(ctx context.Context, userID uuid.UUID, base, quote Currency) (*ExchangeRate, error)

	// Upsert creates or replaces the single rate for the (base, quote) pair.
	// r.ID is overwritten with the stored row's id.
	Upsert(ctx context.Context, r *ExchangeRate) error
}

// WatchlistRepository defines the interface for watchlist persistence.
// Upsert overwrites item.ID with the stored row's id.
type WatchlistRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*WatchlistItem, error)
	Upsert(ctx context.Context, item *WatchlistItem) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BudgetRepository defines the interface for budget persistence.
// Upsert overwrites b.ID with the stored row's id.
type BudgetRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	Upsert(ctx context.Context, b *Budget) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Ensure creates the user if it does not exist yet
	Ensure(ctx context.Context, u *User) error
}
