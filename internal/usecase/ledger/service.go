// Package ledger records cash inflows and outflows. Entries are immutable
// from the snapshot path's point of view; only these operations change them.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// RecordTransactionInput carries the fields for creating or updating an entry
type RecordTransactionInput struct {
	Type     string
	Amount   string
	Currency string
	Category string
	Note     string
	Date     time.Time
}

// Service handles ledger-related operations
type Service struct {
	Repo domain.TransactionRepository
}

// NewService creates a new ledger Service instance
func NewService(repo domain.TransactionRepository) *Service {
	return &Service{Repo: repo}
}

// List retrieves a user's transactions matching the filter, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	return s.Repo.List(ctx, userID, filter)
}

// Record creates a new transaction
func (s *Service) Record(ctx context.Context, userID uuid.UUID, input RecordTransactionInput) (*domain.Transaction, error) {
	tx, err := buildTransaction(uuid.New(), userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update replaces the mutable fields of an existing transaction
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input RecordTransactionInput) (*domain.Transaction, error) {
	if _, err := s.Repo.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	tx, err := buildTransaction(id, userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete removes a transaction
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.Repo.Delete(ctx, userID, id)
}

func buildTransaction(id, userID uuid.UUID, input RecordTransactionInput) (*domain.Transaction, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, domain.NewValidationError("invalid amount format: %v", err)
	}

	tx := &domain.Transaction{
		ID:       id,
		UserID:   userID,
		Type:     domain.TransactionType(input.Type),
		Amount:   amount,
		Currency: domain.Currency(input.Currency),
		Category: input.Category,
		Note:     input.Note,
		Date:     input.Date,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}
