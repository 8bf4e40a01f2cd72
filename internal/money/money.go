package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// Parse converts a decimal string (as received in a request body via
// json.Number) into a decimal. At most two fractional digits are accepted.
func Parse(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, ErrTooManyDecimals
	}
	return amount, nil
}

// Round2 rounds to two decimal places. Applied only at serialization
// boundaries; internal accumulation keeps unrounded decimals.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Float renders an amount as a JSON-safe number rounded to two places.
func Float(amount decimal.Decimal) float64 {
	value, _ := amount.Round(2).Float64()
	return value
}
