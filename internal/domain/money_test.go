package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentsFromDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"0", 0},
		{"0.01", 1},
		{"12.50", 1250},
		{"-12.50", -1250},
		{"19.999", 2000},    // half-up to two decimals
		{"0.004", 0},        // sub-cent drift rounds away
		{"999999999.99", MaxSettlementCents},
	}
	for _, tt := range tests {
		got := CentsFromDecimal(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got, "input %s", tt.in)
	}
}

func TestCents_Decimal_RoundTrip(t *testing.T) {
	for _, cents := range []Cents{0, 1, -1, 1250, MaxSettlementCents} {
		assert.Equal(t, cents, CentsFromDecimal(cents.Decimal()))
	}
}

func TestCents_StringFixed(t *testing.T) {
	assert.Equal(t, "12.50", Cents(1250).StringFixed())
	assert.Equal(t, "0.01", Cents(1).StringFixed())
	assert.Equal(t, "-0.05", Cents(-5).StringFixed())
}

func TestCents_Abs(t *testing.T) {
	assert.Equal(t, Cents(7), Cents(-7).Abs())
	assert.Equal(t, Cents(7), Cents(7).Abs())
	assert.True(t, Cents(0).IsZero())
	assert.False(t, Cents(1).IsZero())
}
