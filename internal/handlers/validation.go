package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"splittab/internal/money"
)

var (
	errInvalidID     = errors.New("invalid id")
	errInvalidAmount = errors.New("invalid amount")
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parseAmount accepts a positive amount with at most two decimal places.
func parseAmount(raw json.Number) (decimal.Decimal, error) {
	amount, err := money.Parse(raw.String())
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, errInvalidAmount
	}
	return amount, nil
}

// parseShareAmount accepts zero: a participant may carry no share of an
// expense while still being listed on it.
func parseShareAmount(raw json.Number) (decimal.Decimal, error) {
	amount, err := money.Parse(raw.String())
	if err != nil || amount.IsNegative() {
		return decimal.Zero, errInvalidAmount
	}
	return amount, nil
}
