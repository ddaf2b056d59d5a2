package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// List retrieves a user's transactions matching the filter, newest first
func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT id, user_id, type, amount, currency, category, note, date
		FROM transactions
		WHERE user_id = $1`)
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		b.WriteString(" AND type = $" + strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		b.WriteString(" AND category = $" + strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		b.WriteString(" AND date >= $" + strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		b.WriteString(" AND date <= $" + strconv.Itoa(len(args)))
	}
	b.WriteString(" ORDER BY date DESC")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetByID retrieves a transaction by its ID, scoped to the user
func (r *transactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, currency, category, note, date
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return tx, nil
}

// Create creates a new transaction
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, currency, category, note, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, string(tx.Type), tx.Amount.String(), string(tx.Currency), tx.Category, tx.Note, tx.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing transaction
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, amount = $2, currency = $3, category = $4, note = $5, date = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		string(tx.Type), tx.Amount.String(), string(tx.Currency), tx.Category, tx.Note, tx.Date, tx.ID, tx.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s: %w", tx.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a transaction, scoped to the user
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var txType, currency, amountStr string

	if err := row.Scan(&tx.ID, &tx.UserID, &txType, &amountStr, &currency, &tx.Category, &tx.Note, &tx.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction amount: %w", err)
	}
	tx.Type = domain.TransactionType(txType)
	tx.Currency = domain.Currency(currency)
	tx.Amount = amount
	return &tx, nil
}
