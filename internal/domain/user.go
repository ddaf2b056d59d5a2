package domain

import "github.com/google/uuid"

// User owns all ledger rows, holdings, rates, watchlist items and budgets.
// Authentication mechanics live outside this service; the server is handed an
// already-resolved user identity.
type User struct {
	ID   uuid.UUID
	Name string
}
