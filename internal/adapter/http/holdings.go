package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/holdings"
)

type upsertHoldingRequest struct {
	CoinID string `json:"coinId"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type patchHoldingRequest struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

// listHoldings handles GET /api/holdings
func (s *Server) listHoldings(c *fiber.Ctx) error {
	items, err := s.Holdings.List(c.Context(), s.userID)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": holdingViews(items)})
}

// upsertHolding handles POST /api/holdings
func (s *Server) upsertHolding(c *fiber.Ctx) error {
	var req upsertHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}

	item, err := s.Holdings.Upsert(c.Context(), s.userID, holdings.UpsertHoldingInput{
		CoinID: req.CoinID,
		Symbol: req.Symbol,
		Name:   req.Name,
		Amount: req.Amount,
	})
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": holdingView(item)})
}

// patchHolding handles PATCH /api/holdings, updating only the amount
func (s *Server) patchHolding(c *fiber.Ctx) error {
	var req patchHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return s.mapError(c, domain.NewValidationError("invalid id format: %v", err))
	}

	item, err := s.Holdings.UpdateAmount(c.Context(), s.userID, id, req.Amount)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"item": holdingView(item)})
}

// deleteHolding handles DELETE /api/holdings/:id
func (s *Server) deleteHolding(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.mapError(c, err)
	}
	if err := s.Holdings.Delete(c.Context(), s.userID, id); err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func holdingView(h *domain.Holding) fiber.Map {
	return fiber.Map{
		"id":        h.ID,
		"coinId":    h.CoinID,
		"symbol":    h.Symbol,
		"name":      h.Name,
		"amount":    h.Amount,
		"updatedAt": h.UpdatedAt,
	}
}

func holdingViews(items []*domain.Holding) []fiber.Map {
	views := make([]fiber.Map, 0, len(items))
	for _, h := range items {
		views = append(views, holdingView(h))
	}
	return views
}
