package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/quality"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/storage"
)

func sampleReport() models.QualityReport {
	report := quality.BuildReport(quality.Dataset{
		Students: []models.Student{
			{ID: "s1", Department: "CS", GPA: 3.6, Status: models.StudentStatusActive},
			{ID: "s2", Department: "Math", GPA: 2.1, Status: models.StudentStatusDroppedOut},
		},
		Teachers: []models.Teacher{{ID: "t1", Department: "CS"}},
		Courses:  []models.Course{{ID: "c1", Department: "CS", EnrolledStudents: []string{"s1"}, MaxCapacity: 2}},
	}, quality.Options{Now: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)})
	report.DatasetVersion = 4
	return report
}

func newExportService(t *testing.T) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(files, storage.NewSignedURLSigner("secret", time.Hour), ExportConfig{APIPrefix: "/api/v1/"}, nil)
}

func TestBuildReportDocument(t *testing.T) {
	report := sampleReport()
	doc := BuildReportDocument(report)

	titles := make([]string, 0, len(doc.Tables))
	for _, table := range doc.Tables {
		titles = append(titles, table.Title)
	}
	require.True(t, report.Trend.Synthetic)
	assert.Equal(t, []string{"Summary", "Departments", "Risks", "Performance Trend (synthetic)"}, titles)
	assert.Equal(t, []string{"Overall score", strconv.Itoa(report.Metrics.Overall)}, doc.Tables[0].Rows[0])
	assert.Len(t, doc.Tables[1].Rows, 2)
	assert.Equal(t, "CS", doc.Tables[1].Rows[0][0])
	assert.Len(t, doc.Tables[3].Rows, 6)
}

func TestBuildReportDocumentMeasuredTrend(t *testing.T) {
	report := sampleReport()
	report.Trend.Synthetic = false

	doc := BuildReportDocument(report)
	assert.Equal(t, "Performance Trend", doc.Tables[3].Title)
}

func TestBuildReportDocumentIncludesIssues(t *testing.T) {
	report := sampleReport()
	report.Issues = []models.ValidationIssue{{Entity: "student", ID: "s9", Field: "gpa", Message: "gpa out of range"}}

	doc := BuildReportDocument(report)
	last := doc.Tables[len(doc.Tables)-1]
	assert.Equal(t, "Validation Issues", last.Title)
	assert.Equal(t, []string{"student", "s9", "gpa", "gpa out of range"}, last.Rows[0])
}

func TestExportServiceGenerateAndResolve(t *testing.T) {
	svc := newExportService(t)

	for _, format := range []models.ReportFormat{models.ReportFormatCSV, models.ReportFormatPDF} {
		t.Run(string(format), func(t *testing.T) {
			res, err := svc.Generate(context.Background(), "job-1", format, sampleReport())
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(res.URL, "/api/v1/etl/reports/download?token="))
			assert.Positive(t, res.Size)

			parsed, err := url.Parse(res.URL)
			require.NoError(t, err)
			dl, err := svc.Resolve(parsed.Query().Get("token"))
			require.NoError(t, err)
			defer dl.File.Close()

			assert.Equal(t, "job-1", dl.Grant.JobID)
			assert.Equal(t, res.ContentType, dl.ContentType)
			assert.True(t, strings.HasSuffix(dl.Name, "."+string(format)))
			body, err := io.ReadAll(dl.File)
			require.NoError(t, err)
			assert.Len(t, body, res.Size)
		})
	}
}

func TestExportServiceRejects(t *testing.T) {
	svc := newExportService(t)

	_, err := svc.Generate(context.Background(), "job-1", "xlsx", sampleReport())
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Resolve("garbage")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	token, _, err := storage.NewSignedURLSigner("secret", time.Hour).Sign("job-2", "missing.csv")
	require.NoError(t, err)
	_, err = svc.Resolve(token)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
