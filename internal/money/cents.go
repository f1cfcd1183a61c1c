// Package money converts between user-entered decimal amounts and integer
// minor currency units. All price arithmetic happens on cents.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrOverflow      = errors.New("amount out of range")
)

// MaxCents bounds every parsed amount so that sums of a few amounts stay
// within int64.
const MaxCents int64 = math.MaxInt64 / 4

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(MaxCents)
)

// ParseCents converts a decimal string such as "10.50" or "10,50" to cents.
// The cent digit is rounded half away from zero.
func ParseCents(s string) (int64, error) {
	normalized := strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := d.Mul(hundred).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %w: %q", ErrInvalidAmount, ErrOverflow, s)
	}
	return cents.IntPart(), nil
}

// Add sums amounts and fails instead of wrapping around.
func Add(amounts ...int64) (int64, error) {
	var sum int64
	for _, a := range amounts {
		if (a > 0 && sum > math.MaxInt64-a) || (a < 0 && sum < math.MinInt64-a) {
			return 0, ErrOverflow
		}
		sum += a
	}
	return sum, nil
}

// Mul multiplies two amounts and fails instead of wrapping around.
func Mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	return p, nil
}

// FormatCents renders cents as a decimal string with two fraction digits.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
