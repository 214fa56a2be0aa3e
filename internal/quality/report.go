package quality

import (
	"time"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// Options tunes report generation.
type Options struct {
	Thresholds RiskThresholds
	Jitter     JitterSource
	Now        time.Time
}

// BuildReport runs the whole pipeline over one consistent dataset.
func BuildReport(ds Dataset, opts Options) models.QualityReport {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	if opts.Thresholds == (RiskThresholds{}) {
		opts.Thresholds = DefaultRiskThresholds()
	}

	metrics := ComputeQualityMetrics(ds.Students, ds.Teachers, ds.Courses)
	results := computeDepartments(ds.Students, ds.Teachers, ds.Courses)
	departments := make([]models.DepartmentQuality, len(results))
	for i, r := range results {
		departments[i] = r.quality
	}

	return models.QualityReport{
		Metrics:      metrics,
		Departments:  departments,
		Risks:        assessDepartments(results, opts.Thresholds),
		Trend:        ComputePerformanceTrend(metrics, opts.Now, opts.Jitter),
		Distribution: ComputeDistribution(ds.Students),
		Issues:       ValidateInput(ds.Students, ds.Teachers, ds.Courses),
		GeneratedAt:  opts.Now,
	}
}
