// Package core holds the transaction model, validation rules and the
// aggregation arithmetic shared by every other package.
//
// This file covers amount and date parsing. Amounts are kept as received and
// only converted to decimal.Decimal when needed, so a malformed value from
// the backend survives a round trip unchanged.
package core

import (
	"encoding/json"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Amount is a raw monetary value. JSON decoding accepts numbers, numeric
// strings, empty strings and null.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	s, err := lenientScalar(b)
	if err != nil {
		return err
	}
	*a = Amount(s)
	return nil
}

// MarshalJSON emits a JSON number when the amount parses, a string otherwise.
func (a Amount) MarshalJSON() ([]byte, error) {
	if d, err := a.Decimal(); err == nil {
		return []byte(d.String()), nil
	}
	return json.Marshal(string(a))
}

// Decimal parses the amount. Empty amounts are an error.
func (a Amount) Decimal() (decimal.Decimal, error) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return decimal.Zero, ErrMissingAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseAmount validates user input: required, numeric, not negative.
//
// Examples:
//
//	ParseAmount("250")    -> 250, nil
//	ParseAmount(" 12.5 ") -> 12.5, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
//	ParseAmount("-1")     -> 0, ErrNegativeAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := Amount(s).Decimal()
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals and a currency prefix.
func FormatAmount(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

const dateLayoutLen = len("2006-01-02")

// ParseDate parses a user-entered calendar date, exactly YYYY-MM-DD.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, ErrMissingDate
	}
	if len(s) != dateLayoutLen {
		return civil.Date{}, ErrInvalidDate
	}
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return civil.Date{}, ErrInvalidDate
	}
	return d, nil
}

// ParseStoredDate parses a date read back from the backend, which may carry
// a time component (2024-01-15T00:00:00.000Z). The time is dropped.
func ParseStoredDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > dateLayoutLen && (s[dateLayoutLen] == 'T' || s[dateLayoutLen] == ' ') {
		s = s[:dateLayoutLen]
	}
	return ParseDate(s)
}

// Today returns the local calendar date.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}
