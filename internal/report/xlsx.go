package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Transactions"

// XLSXRenderer writes a single-sheet workbook: header lines, the table and
// the summary below it.
type XLSXRenderer struct{}

func (XLSXRenderer) Extension() string { return FormatXLSX }

func (XLSXRenderer) Render(ctx context.Context, w io.Writer, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	if err := setRow(f, row, []interface{}{r.Title}); err != nil {
		return err
	}
	f.SetCellStyle(xlsxSheet, "A1", "A1", bold)
	row++
	for _, line := range r.HeaderLines() {
		if err := setRow(f, row, []interface{}{line}); err != nil {
			return err
		}
		row++
	}
	row++

	cols := r.Columns()
	if err := setRow(f, row, toCells(cols)); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(cols), row)
	f.SetCellStyle(xlsxSheet, first, last, header)
	row++

	for _, rec := range r.Rows() {
		if err := setRow(f, row, toCells(rec)); err != nil {
			return err
		}
		row++
	}
	row++

	for _, line := range r.SummaryLines() {
		if err := setRow(f, row, []interface{}{line.Label, line.Value}); err != nil {
			return err
		}
		row++
	}

	widths := map[string]float64{"Reason": 40, "Node": 20, "Amount": 14, "Date": 12}
	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width, ok := widths[c]
		if !ok {
			width = 10
		}
		f.SetColWidth(xlsxSheet, name, name, width)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
