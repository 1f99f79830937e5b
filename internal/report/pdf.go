package report

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Tiliavir/productivity-log/internal/model"
)

// Column widths in mm, in model.Columns order.
var pdfColumnWidths = []float64{40, 50, 30, 30, 40}

const pdfRowHeight = 10

// PDF writes a one-table report of set, sorted by date ascending, under a
// centred title. An empty title uses DefaultTitle.
func PDF(w io.Writer, set model.EntrySet, title string) error {
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented task names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, pdfRowHeight, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(200, 220, 255)
	for i, label := range model.Labels() {
		pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(label), "1", lineBreak(i), "", true, 0, "")
	}

	pdf.SetFont("Arial", "", 12)
	for _, e := range set.SortedByDate(true) {
		for i, c := range e.Record() {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, fitCell(pdf, tr(c), pdfColumnWidths[i]), "1", lineBreak(i), "", false, 0, "")
		}
	}

	return pdf.Output(w)
}

// lineBreak ends the row after the last column.
func lineBreak(col int) int {
	if col == len(pdfColumnWidths)-1 {
		return 1
	}
	return 0
}

// fitCell truncates s with "..." until it fits a cell of width mm. s is
// already translated to the single-byte font encoding.
func fitCell(pdf *fpdf.Fpdf, s string, width float64) string {
	const padding = 2
	if pdf.GetStringWidth(s) <= width-padding {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width-padding {
		s = s[:len(s)-1]
	}
	return s + "..."
}
