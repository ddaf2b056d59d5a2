package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// watchlistRepository implements domain.WatchlistRepository
type watchlistRepository struct {
	db *DB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *DB) domain.WatchlistRepository {
	return &watchlistRepository{db: db}
}

// List retrieves the user's watchlist sorted by name
func (r *watchlistRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, coin_id, symbol, name
		FROM watchlist_items
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	var items []*domain.WatchlistItem
	for rows.Next() {
		var item domain.WatchlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.CoinID, &item.Symbol, &item.Name); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Upsert adds the coin or refreshes its symbol and name if already watched.
// On conflict the stored row keeps its id; RETURNING writes it back.
func (r *watchlistRepository) Upsert(ctx context.Context, item *domain.WatchlistItem) error {
	query := `
		INSERT INTO watchlist_items (id, user_id, coin_id, symbol, name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, coin_id)
		DO UPDATE SET symbol = $4, name = $5
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, item.ID, item.UserID, item.CoinID, item.Symbol, item.Name).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert watchlist item: %w", err)
	}
	return nil
}

// Delete removes a watchlist item, scoped to the user
func (r *watchlistRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM watchlist_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("watchlist item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
