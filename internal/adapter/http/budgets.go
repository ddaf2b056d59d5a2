package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/budgets"
)

type upsertBudgetRequest struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Currency string `json:"currency"`
}

// listBudgets handles GET /api/budgets
func (s *Server) listBudgets(c *fiber.Ctx) error {
	items, err := s.Budgets.List(c.Context(), s.userID)
	if err != nil {
		return s.mapError(c, err)
	}
	views := make([]fiber.Map, 0, len(items))
	for _, b := range items {
		views = append(views, budgetView(b))
	}
	return c.JSON(fiber.Map{"items": views})
}

// upsertBudget handles POST /api/budgets
func (s *Server) upsertBudget(c *fiber.Ctx) error {
	var req upsertBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}

	item, err := s.Budgets.Upsert(c.Context(), s.userID, budgets.UpsertBudgetInput{
		Category: req.Category,
		Limit:    req.Limit,
		Currency: req.Currency,
	})
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": budgetView(item)})
}

func budgetView(b *domain.Budget) fiber.Map {
	return fiber.Map{
		"id":       b.ID,
		"category": b.Category,
		"limit":    b.Limit,
		"currency": b.Currency,
	}
}
