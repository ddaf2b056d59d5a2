package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/rates"
)

type upsertRateRequest struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
	Rate  string `json:"rate"`
}

// listRates handles GET /api/rates
func (s *Server) listRates(c *fiber.Ctx) error {
	items, err := s.Rates.List(c.Context(), s.userID)
	if err != nil {
		return s.mapError(c, err)
	}
	views := make([]fiber.Map, 0, len(items))
	for _, r := range items {
		views = append(views, rateView(r))
	}
	return c.JSON(fiber.Map{"items": views})
}

// upsertRate handles POST /api/rates
func (s *Server) upsertRate(c *fiber.Ctx) error {
	var req upsertRateRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}

	item, err := s.Rates.Upsert(c.Context(), s.userID, rates.UpsertRateInput{
		Base:  req.Base,
		Quote: req.Quote,
		Rate:  req.Rate,
	})
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": rateView(item)})
}

func rateView(r *domain.ExchangeRate) fiber.Map {
	return fiber.Map{
		"id":    r.ID,
		"base":  r.Base,
		"quote": r.Quote,
		"rate":  r.Rate,
	}
}
