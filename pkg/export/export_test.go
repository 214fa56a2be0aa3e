package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Title: "Quality Report",
		Tables: []Table{
			{Title: "Metrics", Headers: []string{"metric", "value"}, Rows: [][]string{{"overall", "85"}, {"grade"}}},
			{Title: "Skipped"},
			{Title: "Departments", Headers: []string{"department", "score", "grade"}, Rows: [][]string{{"CS", "85", "A", "extra"}}},
		},
	}
}

func TestCSVRendererWritesSections(t *testing.T) {
	out, err := NewCSVRenderer().Render(sampleDocument())
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"# Metrics"}, records[0])
	assert.Equal(t, []string{"metric", "value"}, records[1])
	assert.Equal(t, []string{"overall", "85"}, records[2])
	assert.Equal(t, []string{"grade", ""}, records[3])
	assert.Equal(t, []string{"# Departments"}, records[4])
	assert.Equal(t, []string{"CS", "85", "A"}, records[6])
	assert.Contains(t, string(out), "\n\n# Departments")
}

func TestRenderersRejectEmptyDocument(t *testing.T) {
	_, err := NewCSVRenderer().Render(Document{Title: "empty"})
	assert.ErrorIs(t, err, ErrEmptyDocument)
	_, err = NewPDFRenderer().Render(Document{Tables: []Table{{Title: "no headers"}}})
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestPDFRendererProducesPDF(t *testing.T) {
	doc := sampleDocument()
	doc.Tables[0].Rows = append(doc.Tables[0].Rows, []string{"a very long recommendation that will never fit inside a narrow table cell without truncation", "x"})

	out, err := NewPDFRenderer().Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	var renderer Renderer = NewPDFRenderer()
	assert.Equal(t, "pdf", renderer.Extension())
	assert.Equal(t, "application/pdf", renderer.ContentType())
}
