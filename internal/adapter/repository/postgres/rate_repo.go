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

// exchangeRateRepository implements domain.ExchangeRateRepository
type exchangeRateRepository struct {
	db *DB
}

// NewExchangeRateRepository creates a new exchange rate repository
func NewExchangeRateRepository(db *DB) domain.ExchangeRateRepository {
	return &exchangeRateRepository{db: db}
}

// List retrieves all manual rates for a user
func (r *exchangeRateRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.ExchangeRate, error) {
	query := `
		SELECT id, user_id, base, quote, rate
		FROM exchange_rates
		WHERE user_id = $1
		ORDER BY base, quote
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	var out []*domain.ExchangeRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rate)
	}
	return out, rows.Err()
}

// Get retrieves the single rate for a (base, quote) pair
func (r *exchangeRateRepository) Get(ctx context.Context, userID uuid.UUID, base, quote domain.Currency) (*domain.ExchangeRate, error) {
	query := `
		SELECT id, user_id, base, quote, rate
		FROM exchange_rates
		WHERE user_id = $1 AND base = $2 AND quote = $3
	`

	rate, err := scanRate(r.db.QueryRowContext(ctx, query, userID, string(base), string(quote)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rate %s/%s: %w", base, quote, domain.ErrNotFound)
		}
		return nil, err
	}
	return rate, nil
}

// Upsert creates or replaces the single rate for the (base, quote) pair.
// The unique index on (user_id, base, quote) enforces the at-most-one-row
// invariant; on conflict the stored row keeps its id and RETURNING writes it
// back into the entity.
func (r *exchangeRateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (id, user_id, base, quote, rate)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, base, quote)
		DO UPDATE SET rate = $5
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		rate.ID, rate.UserID, string(rate.Base), string(rate.Quote), rate.Rate.String(),
	).Scan(&rate.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

func scanRate(row rowScanner) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	var base, quote, rateStr string

	if err := row.Scan(&rate.ID, &rate.UserID, &base, &quote, &rateStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
	}

	value, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate: %w", err)
	}
	rate.Base = domain.Currency(base)
	rate.Quote = domain.Currency(quote)
	rate.Rate = value
	return &rate, nil
}
