package ledger

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Amount is a monetary value in yuan. It renders with exactly two decimal
// places everywhere (CSV, JSON, fingerprints) so that the same transaction
// always produces the same text, whatever the source wrote ("50", "50.0",
// "¥50.00").
type Amount struct {
	d decimal.Decimal
}

// NewAmount wraps a decimal as a ledger amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// ParseAmount parses an amount field. A leading currency symbol as written
// by the WeChat export (¥ or ￥) is stripped first.
func ParseAmount(s string) (Amount, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "¥")
	cleaned = strings.TrimPrefix(cleaned, "￥")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "invalid amount %q", s)
	}
	return Amount{d: d}, nil
}

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	return Amount{d: a.d.Abs()}
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.d
}

// String renders the amount fixed to two decimal places.
func (a Amount) String() string {
	return a.d.StringFixed(2)
}

// MarshalJSON emits the amount as a plain JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts both quoted and unquoted numbers; older snapshots
// mixed the two.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errors.Wrapf(err, "invalid amount %s", data)
	}
	a.d = d
	return nil
}
