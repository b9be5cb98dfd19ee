package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	pdfRowHeight  = 7.0
	pdfFontSize   = 9.0
	pdfTitleSize  = 14.0
	pdfCellPadPts = 2.0
)

// PDFWriter returns a PDF writer that embeds the TrueType font in fontFile
// so names outside Latin-1 render intact. An empty fontFile falls back to
// WritePDF.
func PDFWriter(fontFile string) (Writer, error) {
	if fontFile == "" {
		return WritePDF, nil
	}
	font, err := os.ReadFile(fontFile)
	if err != nil {
		return nil, fmt.Errorf("read pdf font: %w", err)
	}
	return func(w io.Writer, t *Table) error {
		return writePDF(w, t, font)
	}, nil
}

// WritePDF renders t as a landscape A4 table with the core Helvetica font,
// which only covers cp1252. The header row repeats on every page and cells
// wider than their column are truncated.
func WritePDF(w io.Writer, t *Table) error {
	return writePDF(w, t, nil)
}

func writePDF(w io.Writer, t *Table, utf8Font []byte) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if utf8Font != nil {
		family = "body"
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8FontFromBytes(family, style, utf8Font)
		}
		tr = func(s string) string { return s }
	}

	pageWidth, _ := pdf.GetPageSize()
	cols := t.width()
	if cols == 0 {
		cols = 1
	}
	colWidth := (pageWidth - 2*pdfMargin) / float64(cols)

	header := func() {
		pdf.SetFont(family, "B", pdfFontSize)
		pdf.SetFillColor(48, 84, 150)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, pdfRowHeight, fit(pdf, tr(h), colWidth), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(family, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(family, "B", pdfTitleSize)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 8)
	pdf.CellFormat(0, 5, "Generated "+time.Now().Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	header()

	for i, row := range t.Rows {
		fill := i%2 == 1
		pdf.SetFillColor(235, 240, 248)
		for col := 0; col < cols; col++ {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			pdf.CellFormat(colWidth, pdfRowHeight, fit(pdf, tr(value), colWidth), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(t.Rows) == 0 {
		pdf.CellFormat(0, pdfRowHeight, "No records", "1", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fit truncates s with an ellipsis so it fits a column of width mm.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - pdfCellPadPts
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
