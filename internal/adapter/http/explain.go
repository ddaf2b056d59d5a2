package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// explainMove handles GET /api/ai/explain-move?coinId&days
func (s *Server) explainMove(c *fiber.Ctx) error {
	coinID := c.Query("coinId")
	if coinID == "" {
		return s.mapError(c, domain.NewValidationError("coinId query parameter is required"))
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return s.mapError(c, domain.NewValidationError("days must be a non-negative integer"))
		}
		days = parsed
	}

	result, err := s.Explain.ExplainMove(c.Context(), coinID, days)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(result)
}
