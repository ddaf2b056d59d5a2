// Package http exposes the service over fiber. Handlers stay thin: parse,
// call the use case, map the result or error to a response.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/allocation"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/budgets"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/explain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/holdings"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/ledger"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/rates"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/watchlist"
)

// Server wires the use case services into fiber handlers
type Server struct {
	Allocation *allocation.Service
	Explain    *explain.Service
	Holdings   *holdings.Service
	Ledger     *ledger.Service
	Rates      *rates.Service
	Watchlist  *watchlist.Service
	Budgets    *budgets.Service
	Feed       domain.PriceFeed

	// userID is the identity all requests operate as; authentication
	// mechanics live outside this service
	userID uuid.UUID
	log    zerolog.Logger
}

// NewServer creates a new HTTP server adapter
func NewServer(
	allocationService *allocation.Service,
	explainService *explain.Service,
	holdingsService *holdings.Service,
	ledgerService *ledger.Service,
	ratesService *rates.Service,
	watchlistService *watchlist.Service,
	budgetsService *budgets.Service,
	feed domain.PriceFeed,
	userID uuid.UUID,
	log zerolog.Logger,
) *Server {
	return &Server{
		Allocation: allocationService,
		Explain:    explainService,
		Holdings:   holdingsService,
		Ledger:     ledgerService,
		Rates:      ratesService,
		Watchlist:  watchlistService,
		Budgets:    budgetsService,
		Feed:       feed,
		userID:     userID,
		log:        log.With().Str("component", "http").Logger(),
	}
}

// RegisterRoutes mounts all API routes on the app. The auth middleware is
// applied to the /api group only; /healthz stays open for probes.
func (s *Server) RegisterRoutes(app *fiber.App, apiToken string) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", NewAuthMiddleware(apiToken))

	api.Get("/portfolio/allocation", s.getAllocation)
	api.Get("/portfolio/summary", s.getSummary)
	api.Get("/ai/explain-move", s.explainMove)

	api.Get("/holdings", s.listHoldings)
	api.Post("/holdings", s.upsertHolding)
	api.Patch("/holdings", s.patchHolding)
	api.Delete("/holdings/:id", s.deleteHolding)

	api.Get("/transactions", s.listTransactions)
	api.Post("/transactions", s.createTransaction)
	api.Put("/transactions/:id", s.updateTransaction)
	api.Delete("/transactions/:id", s.deleteTransaction)

	api.Get("/rates", s.listRates)
	api.Post("/rates", s.upsertRate)

	api.Get("/watchlist", s.listWatchlist)
	api.Post("/watchlist", s.addWatchlistItem)
	api.Delete("/watchlist/:id", s.removeWatchlistItem)

	api.Get("/budgets", s.listBudgets)
	api.Post("/budgets", s.upsertBudget)

	api.Get("/coins/search", s.searchCoins)
}

// mapError converts domain errors to HTTP responses. The taxonomy matters to
// callers: configuration failures must be distinguishable from transient
// upstream ones so operators know whether to fix the environment or retry.
func (s *Server) mapError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotConfigured):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrPriceFeedUnavailable),
		errors.Is(err, domain.ErrNewsUnavailable),
		errors.Is(err, domain.ErrGeneratorUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("invalid id format: %v", err)
	}
	return id, nil
}
