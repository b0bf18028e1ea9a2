package core

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a tolerant decimal field for ledger snapshots. Upstream records
// carry numerics inconsistently: JSON numbers, quoted strings, nulls, or not
// at all. Absent or unparseable input decodes to zero with Valid=false
// instead of failing the whole document — legacy and partial records must
// still compose.
type Amount struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewAmount wraps a concrete decimal as a present Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d, Valid: true}
}

// AmountFromFloat wraps a float64 as a present Amount.
func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

// Or returns the decoded value, or fallback when the field was absent or
// unparseable.
func (a Amount) Or(fallback decimal.Decimal) decimal.Decimal {
	if a.Valid {
		return a.Decimal
	}
	return fallback
}

// OrZero returns the decoded value, defaulting to zero.
func (a Amount) OrZero() decimal.Decimal {
	return a.Decimal
}

// UnmarshalJSON accepts numbers, numeric strings, and null. Anything that
// does not parse becomes the zero Amount — never an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			*a = Amount{}
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		*a = Amount{}
		return nil
	}
	*a = Amount{Decimal: d, Valid: true}
	return nil
}

// MarshalJSON encodes a missing Amount as null, otherwise as the decimal.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return a.Decimal.MarshalJSON()
}
