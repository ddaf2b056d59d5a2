package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/watchlist"
)

type addWatchlistRequest struct {
	CoinID string `json:"coinId"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// listWatchlist handles GET /api/watchlist
func (s *Server) listWatchlist(c *fiber.Ctx) error {
	items, err := s.Watchlist.List(c.Context(), s.userID)
	if err != nil {
		return s.mapError(c, err)
	}
	views := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		views = append(views, watchlistView(item))
	}
	return c.JSON(fiber.Map{"items": views})
}

// addWatchlistItem handles POST /api/watchlist
func (s *Server) addWatchlistItem(c *fiber.Ctx) error {
	var req addWatchlistRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}

	item, err := s.Watchlist.Add(c.Context(), s.userID, watchlist.AddItemInput{
		CoinID: req.CoinID,
		Symbol: req.Symbol,
		Name:   req.Name,
	})
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": watchlistView(item)})
}

// removeWatchlistItem handles DELETE /api/watchlist/:id
func (s *Server) removeWatchlistItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.mapError(c, err)
	}
	if err := s.Watchlist.Remove(c.Context(), s.userID, id); err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func watchlistView(item *domain.WatchlistItem) fiber.Map {
	return fiber.Map{
		"id":     item.ID,
		"coinId": item.CoinID,
		"symbol": item.Symbol,
		"name":   item.Name,
	}
}
