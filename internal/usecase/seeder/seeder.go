package seeder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// DefaultUserID is the fixed identity all rows are scoped to in single-user
// deployments. Fixed so that re-seeding is idempotent across restarts.
var DefaultUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Seeder ensures the default user row exists before the server starts
// accepting requests.
type Seeder struct {
	repo domain.UserRepository
}

// NewSeeder creates a new Seeder instance
func NewSeeder(repo domain.UserRepository) *Seeder {
	return &Seeder{repo: repo}
}

// Seed ensures the default user exists in the database
func (s *Seeder) Seed(ctx context.Context) error {
	user := &domain.User{
		ID:   DefaultUserID,
		Name: "default",
	}
	if err := s.repo.Ensure(ctx, user); err != nil {
		return fmt.Errorf("failed to ensure default user: %w", err)
	}
	return nil
}
