// Package money parses and renders the ledger's currency amounts.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount bounds, matching the decimal(10,2) amount columns.
const (
	FractionDigits = 2
	MaxDigits      = 10
)

// MinAmount is the smallest amount a transaction may carry.
var MinAmount = decimal.New(1, -FractionDigits)

// ErrInvalidAmount is returned for malformed, non-positive, over-precise or
// oversized amounts.
var ErrInvalidAmount = errors.New("amount must be a positive decimal of at least 0.01 with at most two fraction digits")

// ParseAmount reads a positive amount such as "100", "100.5" or "100,50".
// A comma is accepted as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if err := Validate(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// Validate checks an already-parsed amount against the column bounds.
func Validate(d decimal.Decimal) error {
	if d.LessThan(MinAmount) {
		return ErrInvalidAmount
	}
	if !d.Equal(d.Truncate(FractionDigits)) {
		return ErrInvalidAmount
	}
	limit := decimal.New(1, MaxDigits-FractionDigits)
	if d.GreaterThanOrEqual(limit) {
		return ErrInvalidAmount
	}
	return nil
}

// Format renders d with exactly two fraction digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(FractionDigits)
}

// FormatPtr renders d, or nil when d is nil.
func FormatPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := Format(*d)
	return &s
}
