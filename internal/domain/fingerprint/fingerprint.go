// Package fingerprint derives the dedup identity of a transaction.
//
// Two transactions are the same transaction when their normalized date,
// absolute two-decimal amount, and merchant keyword all agree. Parenthetical
// merchant suffixes are deliberately discarded so that provider-appended
// branch names ("CoffeeShop(Downtown)") do not defeat deduplication.
package fingerprint

import (
	"strings"

	"github.com/shopspring/decimal"
)

const separator = "|"

var dateCleaner = strings.NewReplacer("年", "-", "月", "-")

// MerchantKeyword reduces a merchant string to the part before the first
// opening parenthesis, ASCII or full-width, trimmed of whitespace. An empty
// or absent merchant yields the empty keyword.
func MerchantKeyword(merchant string) string {
	if merchant == "" {
		return ""
	}
	if i := strings.IndexAny(merchant, "(（"); i >= 0 {
		merchant = merchant[:i]
	}
	return strings.TrimSpace(merchant)
}

// Key builds the composite dedup key from the long-form date text, the
// amount, and the merchant. Keys are compared as opaque strings; the date
// markers are stripped to hyphens, not reparsed as a calendar value.
func Key(date string, amount decimal.Decimal, merchant string) string {
	cleanDate := dateCleaner.Replace(date)
	cleanDate = strings.Replace(cleanDate, "日", "", 1)
	cleanAmount := amount.Abs().StringFixed(2)
	return cleanDate + separator + cleanAmount + separator + MerchantKeyword(merchant)
}

// Set is an exact-string membership set of fingerprint keys.
type Set map[string]struct{}

// NewSet returns an empty fingerprint set.
func NewSet() Set {
	return make(Set)
}

// Add inserts a key.
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether the key is present. Matching is case-sensitive and
// exact; no fuzzy comparison.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}
