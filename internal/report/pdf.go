package report

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays the report out on A4 portrait pages.
type PDFRenderer struct{}

func (PDFRenderer) Extension() string { return FormatPDF }

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{41, 128, 185}
	stripeFill = rgb{245, 245, 245}
	inColor    = rgb{0, 150, 0}
	outColor   = rgb{220, 53, 69}
	balColor   = rgb{0, 123, 255}
)

const (
	pdfMargin    = 14.0
	pdfRowHeight = 7.0
	pdfBottom    = 15.0
)

// The core PDF fonts only cover cp1252.
var pdfCurrencyFallback = map[string]string{
	"₹": "Rs. ",
}

func (PDFRenderer) Render(ctx context.Context, w io.Writer, r Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sub, ok := pdfCurrencyFallback[r.Currency]; ok {
		r.Currency = sub
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottom)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetTitle(r.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pdfMargin, 20, tr(r.Title))

	pdf.SetFont("Helvetica", "", 11)
	y := 28.0
	for _, line := range r.HeaderLines() {
		pdf.Text(pdfMargin, y, tr(line))
		y += 6
	}
	pdf.SetY(y)

	widths := columnWidths(r)
	cols := r.Columns()
	aligns := columnAligns(r)
	_, pageHeight := pdf.GetPageSize()

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
		pdf.SetTextColor(255, 255, 255)
		for i, c := range cols {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()
	for n, row := range r.Rows() {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottom-1 {
			pdf.AddPage()
			drawHeader()
		}
		fill := n%2 == 1
		if fill {
			pdf.SetFillColor(stripeFill.r, stripeFill.g, stripeFill.b)
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], pdfRowHeight, fit(pdf, tr(cell), widths[i]), "1", 0, aligns[i], fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.GetY()+30 > pageHeight-pdfBottom {
		pdf.AddPage()
	}
	y = pdf.GetY() + 10
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(pdfMargin, y, "Summary:")
	pdf.SetFont("Helvetica", "", 11)
	for i, line := range r.SummaryLines() {
		c := []rgb{inColor, outColor, balColor}[i]
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.Text(pdfMargin, y+7*float64(i+1), tr(line.Label+": "+line.Value))
	}
	pdf.SetTextColor(0, 0, 0)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func columnWidths(r Report) []float64 {
	if r.AllNodes() {
		return []float64{12, 22, 30, 14, 28, 50, 26}
	}
	return []float64{15, 25, 20, 30, 60, 30}
}

func columnAligns(r Report) []string {
	if r.AllNodes() {
		return []string{"C", "C", "L", "C", "R", "L", "C"}
	}
	return []string{"C", "C", "C", "R", "L", "C"}
}

// fit shortens s until it fits in a cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
