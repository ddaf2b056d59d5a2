package budgets

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// MockBudgetRepository is a mock implementation of BudgetRepository for testing
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, b *domain.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func TestUpsert_Success(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)
	userID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Budget")).Return(nil)

	b, err := service.Upsert(context.Background(), userID, UpsertBudgetInput{
		Category: "groceries",
		Limit:    "400.50",
		Currency: "USD",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, b.UserID)
	assert.Equal(t, "groceries", b.Category)
	assert.Equal(t, "400.5", b.Limit.String())
	repo.AssertExpectations(t)
}

func TestUpsert_ExistingCategoryKeepsStoredID(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)
	storedID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Budget")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Budget).ID = storedID
		}).
		Return(nil)

	b, err := service.Upsert(context.Background(), uuid.New(), UpsertBudgetInput{
		Category: "groceries",
		Limit:    "300",
		Currency: "USD",
	})

	require.NoError(t, err)
	assert.Equal(t, storedID, b.ID, "caller must see the persisted id, not a freshly generated one")
}

func TestUpsert_InvalidLimitFormat(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)

	_, err := service.Upsert(context.Background(), uuid.New(), UpsertBudgetInput{
		Category: "groceries",
		Limit:    "lots",
		Currency: "USD",
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpsert_NonPositiveLimit(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)

	_, err := service.Upsert(context.Background(), uuid.New(), UpsertBudgetInput{
		Category: "groceries",
		Limit:    "0",
		Currency: "USD",
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpsert_TooManyDecimalPlaces(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)

	_, err := service.Upsert(context.Background(), uuid.New(), UpsertBudgetInput{
		Category: "groceries",
		Limit:    "100.999",
		Currency: "USD",
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpsert_UnsupportedCurrency(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)

	_, err := service.Upsert(context.Background(), uuid.New(), UpsertBudgetInput{
		Category: "groceries",
		Limit:    "100",
		Currency: "EUR",
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestList_PassesThrough(t *testing.T) {
	repo := new(MockBudgetRepository)
	service := NewService(repo)
	userID := uuid.New()

	stored := []*domain.Budget{{ID: uuid.New(), UserID: userID, Category: "groceries"}}
	repo.On("List", mock.Anything, userID).Return(stored, nil)

	items, err := service.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	repo.AssertExpectations(t)
}
