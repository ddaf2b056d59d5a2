package postgres

import (
	"context"
	"fmt"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// userRepository implements domain.UserRepository
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Ensure creates the user if it does not exist yet
func (r *userRepository) Ensure(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Name); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}
