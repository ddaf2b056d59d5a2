package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// getAllocation handles GET /api/portfolio/allocation
func (s *Server) getAllocation(c *fiber.Ctx) error {
	snapshot, err := s.Allocation.GetAllocation(c.Context(), s.userID)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(snapshot)
}

// getSummary handles GET /api/portfolio/summary?from&to
func (s *Server) getSummary(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return s.mapError(c, err)
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return s.mapError(c, err)
	}

	summary, err := s.Allocation.GetSummary(c.Context(), s.userID, from, to)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(summary)
}

// parseDateQuery parses an optional RFC 3339 or date-only query value
func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.NewValidationError("invalid date %q, expected RFC 3339 or YYYY-MM-DD", value)
	}
	return &t, nil
}
