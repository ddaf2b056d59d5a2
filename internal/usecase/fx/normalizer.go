// Package fx converts ledger amounts between currencies using a user-entered
// manual exchange rate. Conversion is a pure function of its inputs: the rate
// in effect at computation time is passed in explicitly, so changing a rate
// never retroactively alters previously computed figures.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// divisionScale is the rounding scale applied when converting against the
// rate's orientation.
const divisionScale = 8

// Normalize converts amount from one currency to another using the given
// manual rate. A rate row (Base, Quote, Rate) means 1 Base = Rate Quote:
// converting Quote into Base divides by Rate, converting Base into Quote
// multiplies. Returns domain.ErrRateMissing when conversion is required but
// no applicable rate is supplied.
func Normalize(amount decimal.Decimal, from, to domain.Currency, rate *domain.ExchangeRate) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if rate == nil || !rate.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("convert %s to %s: %w", from, to, domain.ErrRateMissing)
	}

	switch {
	case rate.Base == to && rate.Quote == from:
		return amount.DivRound(rate.Rate, divisionScale), nil
	case rate.Base == from && rate.Quote == to:
		return amount.Mul(rate.Rate), nil
	default:
		return decimal.Zero, fmt.Errorf("convert %s to %s: no rate for pair: %w", from, to, domain.ErrRateMissing)
	}
}
