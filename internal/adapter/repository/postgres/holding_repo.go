package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// List retrieves all holdings for a user, most recently updated first
func (r *holdingRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT id, user_id, coin_id, symbol, name, amount, updated_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetByID retrieves a holding by its ID, scoped to the user
func (r *holdingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Holding, error) {
	query := `
		SELECT id, user_id, coin_id, symbol, name, amount, updated_at
		FROM holdings
		WHERE id = $1 AND user_id = $2
	`

	h, err := scanHolding(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return h, nil
}

// Upsert creates the holding or replaces the existing row for the same
// (user, coin) pair. On conflict the stored row keeps its id; RETURNING
// writes it back so the caller always holds the persisted identity.
func (r *holdingRepository) Upsert(ctx context.Context, h *domain.Holding) error {
	query := `
		INSERT INTO holdings (id, user_id, coin_id, symbol, name, amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, coin_id)
		DO UPDATE SET symbol = $4, name = $5, amount = $6, updated_at = $7
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		h.ID, h.UserID, h.CoinID, h.Symbol, h.Name, h.Amount.String(), h.UpdatedAt,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}
	return nil
}

// UpdateAmount changes only the amount of an existing holding
func (r *holdingRepository) UpdateAmount(ctx context.Context, h *domain.Holding) error {
	query := `
		UPDATE holdings
		SET amount = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, h.Amount.String(), h.UpdatedAt, h.ID, h.UserID)
	if err != nil {
		return fmt.Errorf("failed to update holding amount: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("holding %s: %w", h.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a holding, scoped to the user
func (r *holdingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var h domain.Holding
	var amountStr string

	if err := row.Scan(&h.ID, &h.UserID, &h.CoinID, &h.Symbol, &h.Name, &amountStr, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan holding: %w", err)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holding amount: %w", err)
	}
	h.Amount = amount
	return &h, nil
}
