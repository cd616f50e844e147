// Package money provides the lenient decimal parsing used by the calculator
// endpoints. Keypad input never produces an error: anything unparsable is 0.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts free-form user input to a non-negative amount. Plain
// decimal text, exponents included, is read as is. Otherwise currency symbols,
// thousands separators and whitespace are ignored. Invalid or negative input
// yields zero.
func Parse(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if d, err := decimal.NewFromString(raw); err == nil {
		return nonNegative(d)
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, raw)
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return nonNegative(d)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FromFloat converts a float amount, clamping negatives to zero.
func FromFloat(f float64) decimal.Decimal {
	d := decimal.NewFromFloat(f)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Clamp limits d to [0, ceiling]. A non-positive ceiling disables the upper bound.
func Clamp(d, ceiling decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if ceiling.IsPositive() && d.GreaterThan(ceiling) {
		return ceiling
	}
	return d
}

// Float rounds to pence and returns a float for JSON responses.
func Float(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Format renders d as pounds, e.g. "£12.50".
func Format(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}
