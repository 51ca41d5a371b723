// Package core provides the client-side domain model shared by every component:
// tasks, transactions, the user profile, the finance summary, and the local
// validation rules applied before anything is sent to the server.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user-typed text into a strictly positive decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs are
// rejected: the direction of a transaction comes from its type, never from the
// amount. Returns ErrInvalidAmount for anything that is not a plain positive
// decimal number.
//
// Examples:
//
//	ParseAmount("25000")  -> 25000, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-5")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
