package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// budgetRepository implements domain.BudgetRepository
type budgetRepository struct {
	db *DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *DB) domain.BudgetRepository {
	return &budgetRepository{db: db}
}

// List retrieves all budgets for a user
func (r *budgetRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	query := `
		SELECT id, user_id, category, spending_limit, currency
		FROM budgets
		WHERE user_id = $1
		ORDER BY category ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		var b domain.Budget
		var limitStr, currency string
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &limitStr, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		limit, err := decimal.NewFromString(limitStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse budget limit: %w", err)
		}
		b.Limit = limit
		b.Currency = domain.Currency(currency)
		budgets = append(budgets, &b)
	}
	return budgets, rows.Err()
}

// Upsert creates or replaces the budget for a category. On conflict the
// stored row keeps its id; RETURNING writes it back.
func (r *budgetRepository) Upsert(ctx context.Context, b *domain.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category, spending_limit, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category)
		DO UPDATE SET spending_limit = $4, currency = $5
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, b.ID, b.UserID, b.Category, b.Limit.String(), string(b.Currency)).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}
