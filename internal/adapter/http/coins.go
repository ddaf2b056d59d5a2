package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// searchLimit caps how many coins a free-text search returns
const searchLimit = 8

// searchCoins handles GET /api/coins/search?q
func (s *Server) searchCoins(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return s.mapError(c, domain.NewValidationError("q query parameter is required"))
	}

	results, err := s.Feed.Search(c.Context(), query, searchLimit)
	if err != nil {
		return s.mapError(c, fmt.Errorf("%w: %v", domain.ErrPriceFeedUnavailable, err))
	}
	return c.JSON(fiber.Map{"results": results})
}
