// Package allocation turns ledger rows and priced holdings into a
// currency-normalized net-worth snapshot and allocation breakdown.
package allocation

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/fx"
)

// Asset-class labels. The set in a snapshot is exhaustive and mutually
// exclusive; new instrument types get their own label here.
const (
	AssetClassCash   = "Cash"
	AssetClassCrypto = "Crypto"
)

var hundred = decimal.NewFromInt(100)

// Aggregate computes an AllocationSnapshot from its inputs. It is a pure
// function: the rate and quotes in effect at call time fully determine the
// result, so a later rate change never alters an already rendered snapshot.
//
// Holdings without a quote are valued at zero. The sum of allocation
// percentages is 100 (within floating-point epsilon) whenever total crypto
// value is positive, and 0 across the board when there are no holdings.
//
// Ledger entries in a non-reporting currency are normalized via fx.Normalize.
// When the manual rate for the pair is missing the entry is included
// unconverted.
func Aggregate(
	holdings []*domain.Holding,
	quotes map[string]domain.PriceQuote,
	txs []*domain.Transaction,
	rate *domain.ExchangeRate,
) *domain.AllocationSnapshot {
	coins := make([]domain.CoinAllocation, 0, len(holdings))
	totalCrypto := decimal.Zero

	for _, h := range holdings {
		var price decimal.Decimal
		var change *float64
		if quote, ok := quotes[h.CoinID]; ok {
			price = quote.Price
			change = quote.Change24h
		}
		value := h.Amount.Mul(price)
		totalCrypto = totalCrypto.Add(value)

		coins = append(coins, domain.CoinAllocation{
			ID:        h.ID,
			CoinID:    h.CoinID,
			Symbol:    h.Symbol,
			Name:      h.Name,
			Amount:    h.Amount,
			Price:     price,
			Value:     value,
			Change24h: change,
		})
	}

	if totalCrypto.IsPositive() {
		for i := range coins {
			pct, _ := coins[i].Value.Div(totalCrypto).Mul(hundred).Float64()
			coins[i].AllocationPct = pct
		}
	}

	cash := CashBalance(txs, rate)

	return &domain.AllocationSnapshot{
		AssetClasses: []domain.AssetClass{
			{Label: AssetClassCash, Value: cash},
			{Label: AssetClassCrypto, Value: totalCrypto},
		},
		Coins: coins,
	}
}

// CashBalance sums the ledger into the reporting currency: income adds,
// expense subtracts. Entries whose currency pair has no manual rate are
// included unconverted.
func CashBalance(txs []*domain.Transaction, rate *domain.ExchangeRate) decimal.Decimal {
	cash := decimal.Zero
	for _, tx := range txs {
		normalized, err := fx.Normalize(tx.Amount, tx.Currency, domain.ReportingCurrency, rate)
		if errors.Is(err, domain.ErrRateMissing) {
			normalized = tx.Amount
		}
		if tx.Type == domain.TransactionTypeIncome {
			cash = cash.Add(normalized)
		} else {
			cash = cash.Sub(normalized)
		}
	}
	return cash
}
