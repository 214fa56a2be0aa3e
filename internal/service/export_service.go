package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/export"
	"github.com/noah-isme/academic-quality-api/pkg/storage"
)

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	Path        string              `json:"-"`
	Token       string              `json:"-"`
	URL         string              `json:"url"`
	Format      models.ReportFormat `json:"format"`
	ContentType string              `json:"content_type"`
	Size        int                 `json:"size"`
	ExpiresAt   time.Time           `json:"expires_at"`
}

// Download is an opened export file resolved from a signed token.
type Download struct {
	File        *os.File
	Name        string
	ContentType string
	Grant       storage.Grant
}

// ExportService renders quality reports and persists the files behind signed URLs.
type ExportService struct {
	storage   fileStorage
	signer    *storage.SignedURLSigner
	renderers map[models.ReportFormat]export.Renderer
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{
		storage: files,
		signer:  signer,
		renderers: map[models.ReportFormat]export.Renderer{
			models.ReportFormatCSV: export.NewCSVRenderer(),
			models.ReportFormatPDF: export.NewPDFRenderer(),
		},
		logger: logger,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Generate renders report in format, stores it and signs a download URL for jobID.
func (s *ExportService) Generate(_ context.Context, jobID string, format models.ReportFormat, report models.QualityReport) (*ExportResult, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	payload, err := renderer.Render(BuildReportDocument(report))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	name := fmt.Sprintf("quality_report_v%d_%s.%s", report.DatasetVersion, s.now().Format("20060102_150405"), renderer.Extension())
	path, err := s.storage.Save(name, payload)
	if err != nil {
		return nil, fmt.Errorf("save export: %w", err)
	}
	token, grant, err := s.signer.Sign(jobID, path)
	if err != nil {
		return nil, fmt.Errorf("sign export: %w", err)
	}

	s.logger.Info("report exported", zap.String("job_id", jobID), zap.String("path", path), zap.Int("bytes", len(payload)))
	return &ExportResult{
		Path:        path,
		Token:       token,
		URL:         s.downloadURL(token),
		Format:      format,
		ContentType: renderer.ContentType(),
		Size:        len(payload),
		ExpiresAt:   grant.ExpiresAt,
	}, nil
}

// Resolve verifies a download token and opens the file it grants. The caller
// closes the file.
func (s *ExportService) Resolve(token string) (*Download, error) {
	grant, err := s.signer.Verify(token)
	switch {
	case errors.Is(err, storage.ErrTokenExpired):
		return nil, appErrors.Clone(appErrors.ErrForbidden, "download link expired")
	case err != nil:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	file, err := s.storage.Open(grant.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	name := grant.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return &Download{File: file, Name: name, ContentType: s.contentType(name), Grant: grant}, nil
}

// Cleanup removes exports older than ttl, or the configured result TTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

func (s *ExportService) downloadURL(token string) string {
	return strings.TrimRight(s.cfg.APIPrefix, "/") + "/etl/reports/download?token=" + url.QueryEscape(token)
}

func (s *ExportService) contentType(name string) string {
	for _, r := range s.renderers {
		if strings.HasSuffix(name, "."+r.Extension()) {
			return r.ContentType()
		}
	}
	return "application/octet-stream"
}

// BuildReportDocument lays a quality report out as export tables.
func BuildReportDocument(report models.QualityReport) export.Document {
	m := report.Metrics
	doc := export.Document{Title: "Education Quality Report"}

	doc.Tables = append(doc.Tables, export.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Overall score", strconv.Itoa(m.Overall)},
			{"Grade", string(m.Grade)},
			{"Risk level", string(m.RiskLevel)},
			{"Academic score", strconv.Itoa(m.Academic)},
			{"Teaching score", strconv.Itoa(m.Teaching)},
			{"Operational score", strconv.Itoa(m.Operational)},
			{"Satisfaction score", strconv.Itoa(m.Satisfaction)},
			{"Average GPA", formatFloat(m.AvgGPA)},
			{"Average teacher rating", formatFloat(m.AvgTeacherRating)},
			{"Student-teacher ratio", formatFloat(m.StudentTeacherRatio)},
			{"Retention rate (%)", formatFloat(m.RetentionRate)},
			{"Utilization rate (%)", formatFloat(m.UtilizationRate)},
			{"Students", strconv.Itoa(m.TotalStudents)},
			{"Active students", strconv.Itoa(m.ActiveStudents)},
			{"Teachers", strconv.Itoa(m.TotalTeachers)},
			{"Courses", strconv.Itoa(m.TotalCourses)},
			{"Dataset version", strconv.FormatUint(report.DatasetVersion, 10)},
			{"Generated at", report.GeneratedAt.UTC().Format(time.RFC3339)},
		},
	})

	depts := export.Table{
		Title:   "Departments",
		Headers: []string{"Department", "Students", "Teachers", "Courses", "Avg GPA", "Ratio", "Retention (%)", "Utilization (%)", "Score", "Grade", "Risk"},
		Rows:    make([][]string, 0, len(report.Departments)),
	}
	for _, d := range report.Departments {
		depts.Rows = append(depts.Rows, []string{
			d.Department,
			strconv.Itoa(d.StudentCount),
			strconv.Itoa(d.TeacherCount),
			strconv.Itoa(d.CourseCount),
			formatFloat(d.AvgGPA),
			formatFloat(d.StudentTeacherRatio),
			formatFloat(d.RetentionRate),
			formatFloat(d.UtilizationRate),
			strconv.Itoa(d.QualityScore),
			string(d.QualityGrade),
			string(d.RiskLevel),
		})
	}
	doc.Tables = append(doc.Tables, depts)

	risks := export.Table{
		Title:   "Risks",
		Headers: []string{"Type", "Level", "Departments", "Description", "Recommendation"},
		Rows:    make([][]string, 0, len(report.Risks)),
	}
	for _, r := range report.Risks {
		risks.Rows = append(risks.Rows, []string{string(r.Type), string(r.Level), strings.Join(r.Departments, ", "), r.Description, r.Recommendation})
	}
	doc.Tables = append(doc.Tables, risks)

	trendTitle := "Performance Trend"
	if report.Trend.Synthetic {
		trendTitle += " (synthetic)"
	}
	trend := export.Table{
		Title:   trendTitle,
		Headers: []string{"Month", "Overall", "Academic", "Teaching", "Operational", "Satisfaction"},
		Rows:    make([][]string, 0, len(report.Trend.Points)),
	}
	for _, p := range report.Trend.Points {
		trend.Rows = append(trend.Rows, []string{p.Month, strconv.Itoa(p.Overall), strconv.Itoa(p.Academic), strconv.Itoa(p.Teaching), strconv.Itoa(p.Operational), strconv.Itoa(p.Satisfaction)})
	}
	doc.Tables = append(doc.Tables, trend)

	if len(report.Issues) > 0 {
		issues := export.Table{Title: "Validation Issues", Headers: []string{"Entity", "ID", "Field", "Message"}}
		for _, i := range report.Issues {
			issues.Rows = append(issues.Rows, []string{i.Entity, i.ID, i.Field, i.Message})
		}
		doc.Tables = append(doc.Tables, issues)
	}
	return doc
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
