package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/quality"
	"github.com/noah-isme/academic-quality-api/internal/repository"
)

const qualityCachePattern = "quality:*"

type qualityStore interface {
	Snapshot() repository.Snapshot
	Epoch() string
}

// ReportSource tells where a served report came from.
type ReportSource string

const (
	SourceMemory   ReportSource = "memory"
	SourceCache    ReportSource = "cache"
	SourceComputed ReportSource = "computed"
)

// ReportMeta describes how a report was obtained.
type ReportMeta struct {
	CacheHit       bool          `json:"cache_hit"`
	Source         ReportSource  `json:"source"`
	DatasetVersion uint64        `json:"dataset_version"`
	ProcessingTime time.Duration `json:"-"`
}

// Map renders the meta as response metadata.
func (m ReportMeta) Map() map[string]interface{} {
	return map[string]interface{}{
		"cache_hit":          m.CacheHit,
		"source":             m.Source,
		"dataset_version":    m.DatasetVersion,
		"processing_time_ms": float64(m.ProcessingTime.Microseconds()) / 1000,
	}
}

// QualityConfig tunes report generation.
type QualityConfig struct {
	Thresholds     quality.RiskThresholds
	TrendSeed      int64
	TrendAmplitude float64
	CacheTTL       time.Duration
}

// QualityService serves quality reports memoized on the dataset version and
// mirrored in the analytics cache.
type QualityService struct {
	store   qualityStore
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	cfg     QualityConfig
	now     func() time.Time

	mu   sync.Mutex
	memo *models.QualityReport
}

// NewQualityService constructs a QualityService.
func NewQualityService(store qualityStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg QualityConfig) *QualityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Thresholds == (quality.RiskThresholds{}) {
		cfg.Thresholds = quality.DefaultRiskThresholds()
	}
	return &QualityService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *QualityService) cacheKey(version uint64) string {
	return fmt.Sprintf("quality:%s:v%d", s.store.Epoch(), version)
}

// Report returns the integrated report for the current dataset version.
// Concurrent callers for the same version share one computation.
func (s *QualityService) Report(ctx context.Context) (models.QualityReport, ReportMeta, error) {
	start := time.Now()
	snap := s.store.Snapshot()
	meta := ReportMeta{DatasetVersion: snap.Version}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memo != nil && s.memo.DatasetVersion == snap.Version {
		meta.CacheHit, meta.Source, meta.ProcessingTime = true, SourceMemory, time.Since(start)
		return *s.memo, meta, nil
	}

	key := s.cacheKey(snap.Version)
	var cached models.QualityReport
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit && cached.DatasetVersion == snap.Version {
		s.memo = &cached
		meta.CacheHit, meta.Source, meta.ProcessingTime = true, SourceCache, time.Since(start)
		return cached, meta, nil
	}

	report := s.compute(snap)
	s.memo = &report
	if err := s.cache.Set(ctx, key, report, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("quality report not mirrored", zap.Uint64("version", snap.Version), zap.Error(err))
	}
	meta.Source, meta.ProcessingTime = SourceComputed, time.Since(start)
	return report, meta, nil
}

func (s *QualityService) compute(snap repository.Snapshot) models.QualityReport {
	start := time.Now()
	var jitter quality.JitterSource
	if s.cfg.TrendAmplitude > 0 {
		jitter = quality.NewRandJitter(s.cfg.TrendSeed+int64(snap.Version), s.cfg.TrendAmplitude)
	}
	report := quality.BuildReport(quality.Dataset{
		Students: snap.Students,
		Teachers: snap.Teachers,
		Courses:  snap.Courses,
	}, quality.Options{Thresholds: s.cfg.Thresholds, Jitter: jitter, Now: s.now()})
	report.DatasetVersion = snap.Version

	elapsed := time.Since(start)
	s.metrics.ObserveReport(report, elapsed)
	s.logger.Info("quality report computed",
		zap.Uint64("version", snap.Version),
		zap.Int("overall", report.Metrics.Overall),
		zap.Int("departments", len(report.Departments)),
		zap.Int("risks", len(report.Risks)),
		zap.Int("issues", len(report.Issues)),
		zap.Duration("duration", elapsed),
	)
	return report
}

// Metrics returns the institution-wide metrics.
func (s *QualityService) Metrics(ctx context.Context) (models.QualityMetrics, ReportMeta, error) {
	report, meta, err := s.Report(ctx)
	return report.Metrics, meta, err
}

// Departments returns the per-department breakdown, optionally limited to one department.
func (s *QualityService) Departments(ctx context.Context, department string) ([]models.DepartmentQuality, ReportMeta, error) {
	report, meta, err := s.Report(ctx)
	if err != nil || department == "" {
		return report.Departments, meta, err
	}
	out := make([]models.DepartmentQuality, 0, 1)
	for _, d := range report.Departments {
		if d.Department == department {
			out = append(out, d)
		}
	}
	return out, meta, nil
}

// Risks returns the triggered risk rules, optionally filtered by level.
func (s *QualityService) Risks(ctx context.Context, level models.RiskLevel) ([]models.RiskAssessment, ReportMeta, error) {
	report, meta, err := s.Report(ctx)
	if err != nil || level == "" {
		return report.Risks, meta, err
	}
	out := make([]models.RiskAssessment, 0, len(report.Risks))
	for _, r := range report.Risks {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out, meta, nil
}

// Trend returns the synthetic performance trend.
func (s *QualityService) Trend(ctx context.Context) (models.PerformanceTrend, ReportMeta, error) {
	report, meta, err := s.Report(ctx)
	return report.Trend, meta, err
}

// Distribution returns the student distribution overview.
func (s *QualityService) Distribution(ctx context.Context) (models.StudentDistribution, ReportMeta, error) {
	report, meta, err := s.Report(ctx)
	return report.Distribution, meta, err
}

// Validate returns the input validation issues of the current dataset.
func (s *QualityService) Validate(ctx context.Context) ([]models.ValidationIssue, ReportMeta, error) {
	report, meta, err := s.Report(ctx)
	return report.Issues, meta, err
}

// Invalidate drops the memoized report and the cache mirror.
func (s *QualityService) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.memo = nil
	s.mu.Unlock()
	return s.cache.Invalidate(ctx, qualityCachePattern)
}
