package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// SummaryResult is the headline net-worth figures in the reporting currency
type SummaryResult struct {
	Cash   decimal.Decimal `json:"cash"`
	Crypto decimal.Decimal `json:"crypto"`
	Net    decimal.Decimal `json:"net"`
}

// Service orchestrates the valuation pipeline: load holdings and ledger,
// price the holdings through the quote cache, pick the manual USD/KZT rate,
// then hand everything to the pure Aggregate function.
type Service struct {
	HoldingRepo     domain.HoldingRepository
	TransactionRepo domain.TransactionRepository
	RateRepo        domain.ExchangeRateRepository
	Quotes          domain.QuoteProvider

	log zerolog.Logger
}

// NewService creates a new allocation Service instance
func NewService(
	holdingRepo domain.HoldingRepository,
	transactionRepo domain.TransactionRepository,
	rateRepo domain.ExchangeRateRepository,
	quotes domain.QuoteProvider,
	log zerolog.Logger,
) *Service {
	return &Service{
		HoldingRepo:     holdingRepo,
		TransactionRepo: transactionRepo,
		RateRepo:        rateRepo,
		Quotes:          quotes,
		log:             log.With().Str("component", "allocation").Logger(),
	}
}

// GetAllocation computes the allocation snapshot for a user
func (s *Service) GetAllocation(ctx context.Context, userID uuid.UUID) (*domain.AllocationSnapshot, error) {
	holdings, err := s.HoldingRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.CoinID)
	}
	quotes, err := s.Quotes.Quotes(ctx, ids)
	if err != nil {
		return nil, err
	}

	txs, err := s.TransactionRepo.List(ctx, userID, domain.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	rate, err := s.reportingRate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return Aggregate(holdings, quotes, txs, rate), nil
}

// GetSummary computes headline cash/crypto/net figures over an optional
// date-bounded ledger window
func (s *Service) GetSummary(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*SummaryResult, error) {
	txs, err := s.TransactionRepo.List(ctx, userID, domain.TransactionFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	rate, err := s.reportingRate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cash := CashBalance(txs, rate)

	holdings, err := s.HoldingRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.CoinID)
	}
	quotes, err := s.Quotes.Quotes(ctx, ids)
	if err != nil {
		return nil, err
	}

	crypto := decimal.Zero
	for _, h := range holdings {
		if quote, ok := quotes[h.CoinID]; ok {
			crypto = crypto.Add(h.Amount.Mul(quote.Price))
		}
	}

	return &SummaryResult{
		Cash:   cash,
		Crypto: crypto,
		Net:    cash.Add(crypto),
	}, nil
}

// reportingRate loads the user's manual USD/KZT rate. Either orientation of
// the pair is usable, since fx.Normalize converts against whichever direction
// the row states. Absence of both is not an error at this level; Aggregate
// applies the documented unconverted fallback.
func (s *Service) reportingRate(ctx context.Context, userID uuid.UUID) (*domain.ExchangeRate, error) {
	rate, err := s.RateRepo.Get(ctx, userID, domain.CurrencyUSD, domain.CurrencyKZT)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load exchange rate: %w", err)
	}

	rate, err = s.RateRepo.Get(ctx, userID, domain.CurrencyKZT, domain.CurrencyUSD)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load exchange rate: %w", err)
	}

	s.log.Debug().Str("user", userID.String()).Msg("no manual USD/KZT rate, ledger entries pass through unconverted")
	return nil, nil
}
