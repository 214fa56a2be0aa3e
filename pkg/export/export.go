// Package export renders tabular report documents as CSV or PDF.
package export

import "errors"

// ErrEmptyDocument is returned when a document has no section with headers.
var ErrEmptyDocument = errors.New("document has no tables")

// Table is one titled grid of string cells. Rows shorter than Headers are
// padded with empty cells; extra cells are dropped.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Document is an ordered list of tables under a title.
type Document struct {
	Title  string
	Tables []Table
}

// Renderer turns a document into file bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

func (d Document) hasContent() bool {
	for _, t := range d.Tables {
		if len(t.Headers) > 0 {
			return true
		}
	}
	return false
}

func (t Table) cells(row []string) []string {
	out := make([]string, len(t.Headers))
	copy(out, row)
	return out
}
