package domain

import (
	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer minor units (cents). All internal
// arithmetic is integer-only; decimal values exist only at the API boundary.
type Cents int64

// MaxSettlementCents is the largest amount a single settlement may carry
// (999,999,999.99 in major units).
const MaxSettlementCents Cents = 99_999_999_999

// CentsFromDecimal converts a boundary decimal amount to cents, rounding
// half-up to two decimal places.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Shift(2).IntPart())
}

// Decimal converts cents back to a two-decimal-place amount for display
// and serialization.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// IsZero reports whether the amount is zero. A balance that rounds to zero
// cents is considered settled.
func (c Cents) IsZero() bool {
	return c == 0
}

// StringFixed renders the amount with exactly two decimal places.
func (c Cents) StringFixed() string {
	return c.Decimal().StringFixed(2)
}
