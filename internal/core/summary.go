package core

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Totals are the derived figures for a set of transactions.
type Totals struct {
	In      decimal.Decimal
	Out     decimal.Decimal
	Balance decimal.Decimal
	// Skipped counts IN/OUT rows whose amount did not parse and contributed 0.
	Skipped int
}

// Summary pairs totals with the rows they were computed from.
type Summary struct {
	Totals
	Transactions []Transaction
}

// Summarize sums amounts per type. Unparseable amounts count as zero, rows
// with an unknown type are ignored. Nothing is rounded.
func Summarize(txs []Transaction) Totals {
	t := Totals{In: decimal.Zero, Out: decimal.Zero}
	for _, tx := range txs {
		if !tx.Type.Valid() {
			continue
		}
		d, err := tx.Amount.Decimal()
		if err != nil {
			t.Skipped++
			continue
		}
		switch tx.Type {
		case TypeIn:
			t.In = t.In.Add(d)
		case TypeOut:
			t.Out = t.Out.Add(d)
		}
	}
	t.Balance = t.In.Sub(t.Out)
	return t
}

func NewSummary(txs []Transaction) Summary {
	return Summary{Totals: Summarize(txs), Transactions: txs}
}

// FilterByDate keeps transactions whose date falls in [from, to]. A zero
// bound is open. Rows with an unparseable date are dropped when any bound is
// set.
func FilterByDate(txs []Transaction, from, to civil.Date) []Transaction {
	if from.IsZero() && to.IsZero() {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		d, err := ParseStoredDate(tx.Date)
		if err != nil {
			continue
		}
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// ParseRange parses an optional inclusive date range. Both bounds may be
// empty; when both are set, from must not be after to.
func ParseRange(from, to string) (civil.Date, civil.Date, error) {
	var start, end civil.Date
	var err error
	if from != "" {
		if start, err = ParseDate(from); err != nil {
			return start, end, &ValidationError{Field: FieldDate, Err: err}
		}
	}
	if to != "" {
		if end, err = ParseDate(to); err != nil {
			return start, end, &ValidationError{Field: FieldDate, Err: err}
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return start, end, &ValidationError{Field: FieldDate, Err: ErrInvalidRange}
	}
	return start, end, nil
}
