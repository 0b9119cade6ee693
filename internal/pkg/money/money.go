// Package money holds the fixed-point helpers shared by every balance and price.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for monetary values.
const Scale = 2

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Parse reads a decimal string and rejects values with more than two fractional digits.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !IsCents(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// IsCents reports whether d is representable with two fractional digits.
func IsCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}

// IsPositiveCents reports whether d > 0 and fits NUMERIC(10,2).
func IsPositiveCents(d decimal.Decimal) bool {
	return d.IsPositive() && IsCents(d) && d.LessThan(Max)
}

// Max is the first value that no longer fits NUMERIC(10,2).
var Max = decimal.New(1, 8)

// Format renders d with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
