package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer writes a UTF-8 CSV with a BOM so spreadsheet programs pick
// the right encoding for the currency symbol.
type CSVRenderer struct{}

func (CSVRenderer) Extension() string { return FormatCSV }

func (CSVRenderer) Render(ctx context.Context, w io.Writer, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	records := [][]string{r.Columns()}
	records = append(records, r.Rows()...)
	records = append(records, []string{})
	for _, line := range r.SummaryLines() {
		records = append(records, []string{line.Label, line.Value})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
