package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/ledger"
)

type transactionRequest struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     string `json:"date"`
}

func (req transactionRequest) toInput() (ledger.RecordTransactionInput, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return ledger.RecordTransactionInput{}, domain.NewValidationError("invalid date %q, expected RFC 3339", req.Date)
	}
	return ledger.RecordTransactionInput{
		Type:     req.Type,
		Amount:   req.Amount,
		Currency: req.Currency,
		Category: req.Category,
		Note:     req.Note,
		Date:     date,
	}, nil
}

// listTransactions handles GET /api/transactions?type&category&from&to
func (s *Server) listTransactions(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return s.mapError(c, err)
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return s.mapError(c, err)
	}

	filter := domain.TransactionFilter{
		Category: c.Query("category"),
		From:     from,
		To:       to,
	}
	if t := c.Query("type"); t == string(domain.TransactionTypeIncome) || t == string(domain.TransactionTypeExpense) {
		filter.Type = domain.TransactionType(t)
	}

	items, err := s.Ledger.List(c.Context(), s.userID, filter)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": transactionViews(items)})
}

// createTransaction handles POST /api/transactions
func (s *Server) createTransaction(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}
	input, err := req.toInput()
	if err != nil {
		return s.mapError(c, err)
	}

	tx, err := s.Ledger.Record(c.Context(), s.userID, input)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": transactionView(tx)})
}

// updateTransaction handles PUT /api/transactions/:id
func (s *Server) updateTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.mapError(c, err)
	}
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return s.mapError(c, domain.NewValidationError("invalid request body: %v", err))
	}
	input, err := req.toInput()
	if err != nil {
		return s.mapError(c, err)
	}

	tx, err := s.Ledger.Update(c.Context(), s.userID, id, input)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"item": transactionView(tx)})
}

// deleteTransaction handles DELETE /api/transactions/:id
func (s *Server) deleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.mapError(c, err)
	}
	if err := s.Ledger.Delete(c.Context(), s.userID, id); err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func transactionView(tx *domain.Transaction) fiber.Map {
	return fiber.Map{
		"id":       tx.ID,
		"type":     tx.Type,
		"amount":   tx.Amount,
		"currency": tx.Currency,
		"category": tx.Category,
		"note":     tx.Note,
		"date":     tx.Date,
	}
}

func transactionViews(items []*domain.Transaction) []fiber.Map {
	views := make([]fiber.Map, 0, len(items))
	for _, tx := range items {
		views = append(views, transactionView(tx))
	}
	return views
}
