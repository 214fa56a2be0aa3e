package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVRenderer writes each table as a titled CSV block separated by a blank record.
type CSVRenderer struct{}

// NewCSVRenderer builds a CSV renderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) ContentType() string { return "text/csv" }
func (r *CSVRenderer) Extension() string   { return "csv" }

// Render produces CSV encoded bytes for the document.
func (r *CSVRenderer) Render(doc Document) ([]byte, error) {
	if !doc.hasContent() {
		return nil, ErrEmptyDocument
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	first := true
	for _, table := range doc.Tables {
		if len(table.Headers) == 0 {
			continue
		}
		if !first {
			if err := w.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		first = false
		if table.Title != "" {
			if err := w.Write([]string{"# " + table.Title}); err != nil {
				return nil, fmt.Errorf("write csv title: %w", err)
			}
		}
		if err := w.Write(table.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range table.Rows {
			if err := w.Write(table.cells(row)); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
