package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth = 277.0
	pdfRowHeight = 7.0
)

// PDFRenderer lays tables out on landscape A4 pages.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

// Render creates a PDF with the document title followed by one table per section.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	if !doc.hasContent() {
		return nil, ErrEmptyDocument
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	for _, table := range doc.Tables {
		if len(table.Headers) == 0 {
			continue
		}
		if table.Title != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, table.Title, "", 1, "L", false, 0, "")
		}
		width := pdfPageWidth / float64(len(table.Headers))

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range table.Headers {
			pdf.CellFormat(width, pdfRowHeight+1, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, row := range table.Rows {
			for _, cell := range table.cells(row) {
				pdf.CellFormat(width, pdfRowHeight, truncate(pdf, cell, width-2), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
