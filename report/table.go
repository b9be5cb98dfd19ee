// Package report renders tabular data as downloadable documents.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Writer renders a table into w.
type Writer func(w io.Writer, t *Table) error

// Renderer picks the writer for a requested format.
type Renderer struct {
	pdf Writer
}

// NewRenderer builds a Renderer whose PDFs embed pdfFontFile when it is set.
func NewRenderer(pdfFontFile string) (*Renderer, error) {
	pdf, err := PDFWriter(pdfFontFile)
	if err != nil {
		return nil, err
	}
	return &Renderer{pdf: pdf}, nil
}

// For returns the writer and content type for a format. An empty format
// means Excel.
func (r *Renderer) For(format string) (Writer, string, error) {
	switch strings.ToLower(format) {
	case "", FormatExcel:
		return WriteExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatPDF:
		pdf := r.pdf
		if pdf == nil {
			pdf = WritePDF
		}
		return pdf, "application/pdf", nil
	}
	return nil, "", fmt.Errorf("unsupported report format %q", format)
}

// For uses the core PDF font.
func For(format string) (Writer, string, error) {
	return (&Renderer{}).For(format)
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename builds a download name such as "tasks-2024-05.xlsx".
func Filename(base, suffix, format string) string {
	if format == "" {
		format = FormatExcel
	}
	name := base
	if suffix != "" {
		name += "-" + suffix
	}
	name = strings.Trim(unsafeName.ReplaceAllString(name, "-"), "-")
	if name == "" {
		name = "report"
	}
	return name + "." + strings.ToLower(format)
}

func (t *Table) width() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}
