package model

import "github.com/shopspring/decimal"

// Amounts are persisted as integer cents so SQL SUM stays exact.

// MaxCents bounds every stored amount. Sums of a movie's fees are capped by
// its budget, so totals stay far inside int64.
const MaxCents int64 = 99_999_999_999_999

// MaxAmount is MaxCents as a decimal: 999,999,999,999.99.
var MaxAmount = FromCents(MaxCents)

// InRange reports whether d, rounded to cents, lies in [0, MaxAmount].
func InRange(d decimal.Decimal) bool {
	r := d.Round(2)
	return !r.IsNegative() && !r.GreaterThan(MaxAmount)
}

// ToCents converts an amount to cents, rounding half away from zero.
// Callers validate with InRange first; out-of-range values do not fit int64.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromCents converts cents back into a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
