// Package report renders transaction listings for sharing: PDF, XLSX and
// CSV files, or a tab in a Google spreadsheet. Renderers print the totals
// they are given and never recompute them.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/Koushikchikkond/vouchers/internal/core"
)

const (
	FormatPDF    = "pdf"
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatSheets = "sheets"

	DefaultTitle = "Transaction Report"
)

// Period is an inclusive date range. A zero bound is open.
type Period struct {
	From civil.Date
	To   civil.Date
}

func (p Period) IsZero() bool { return p.From.IsZero() && p.To.IsZero() }

func (p Period) String() string {
	if p.IsZero() {
		return "All dates"
	}
	from, to := "beginning", "today"
	if !p.From.IsZero() {
		from = p.From.String()
	}
	if !p.To.IsZero() {
		to = p.To.String()
	}
	return from + " to " + to
}

type Report struct {
	Title string
	// Node is empty for a report spanning all nodes.
	Node         string
	Period       Period
	GeneratedAt  time.Time
	Currency     string
	Transactions []core.Transaction
	Totals       core.Totals
}

// New builds a report from rows and totals computed by the caller.
func New(node string, period Period, txs []core.Transaction, totals core.Totals, currency string) Report {
	return Report{
		Title:        DefaultTitle,
		Node:         node,
		Period:       period,
		GeneratedAt:  time.Now(),
		Currency:     currency,
		Transactions: txs,
		Totals:       totals,
	}
}

func (r Report) AllNodes() bool { return r.Node == "" }

func (r Report) ScopeLabel() string {
	if r.AllNodes() {
		return "All nodes"
	}
	return r.Node
}

// Columns returns the table header. All-node reports carry the node name.
func (r Report) Columns() []string {
	if r.AllNodes() {
		return []string{"SL No", "Date", "Node", "Type", "Amount", "Reason", "Category"}
	}
	return []string{"SL No", "Date", "Type", "Amount", "Reason", "Category"}
}

// Rows formats the transactions for display, one slice per row, aligned
// with Columns.
func (r Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Transactions))
	for i, tx := range r.Transactions {
		category := string(tx.Category)
		if category == "" {
			category = "-"
		}
		date := tx.Date
		if d, err := core.ParseStoredDate(tx.Date); err == nil {
			date = d.String()
		}
		row := []string{strconv.Itoa(i + 1), date}
		if r.AllNodes() {
			row = append(row, tx.Node)
		}
		row = append(row, string(tx.Type), r.formatAmount(tx.Amount), tx.Reason, category)
		rows = append(rows, row)
	}
	return rows
}

// SummaryLine is one labelled total.
type SummaryLine struct {
	Label string
	Value string
}

func (r Report) SummaryLines() []SummaryLine {
	return []SummaryLine{
		{"Total In", core.FormatAmount(r.Currency, r.Totals.In)},
		{"Total Out", core.FormatAmount(r.Currency, r.Totals.Out)},
		{"Balance", core.FormatAmount(r.Currency, r.Totals.Balance)},
	}
}

// Header lines printed above the table.
func (r Report) HeaderLines() []string {
	return []string{
		"Node: " + r.ScopeLabel(),
		"Period: " + r.Period.String(),
		"Generated: " + r.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
}

func (r Report) formatAmount(a core.Amount) string {
	d, err := a.Decimal()
	if err != nil {
		d = decimal.Zero
	}
	return core.FormatAmount(r.Currency, d)
}

// Renderer writes a report as a file.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, r Report) error
	Extension() string
}

// Publisher sends a report somewhere other than a file and returns a
// reference to the result.
type Publisher interface {
	Publish(ctx context.Context, r Report) (string, error)
}

// RendererFor returns the file renderer for format.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPDF:
		return PDFRenderer{}, nil
	case FormatXLSX:
		return XLSXRenderer{}, nil
	case FormatCSV:
		return CSVRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// FileName names the exported file: "<node>_<from>_to_<to>.<ext>", or
// "History_all-nodes.<ext>" for an all-node report without a period.
func FileName(r Report, ext string) string {
	scope := "History_all-nodes"
	if !r.AllNodes() {
		scope = sanitize(r.Node)
	}
	if r.Period.IsZero() {
		if r.AllNodes() {
			return scope + "." + ext
		}
		return scope + "_all." + ext
	}
	from, to := "start", "end"
	if !r.Period.From.IsZero() {
		from = r.Period.From.String()
	}
	if !r.Period.To.IsZero() {
		to = r.Period.To.String()
	}
	if r.AllNodes() {
		scope = "all-nodes"
	}
	return fmt.Sprintf("%s_%s_to_%s.%s", scope, from, to, ext)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
}
