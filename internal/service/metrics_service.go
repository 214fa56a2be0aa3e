package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

const metricsNamespace = "academic_quality"

// MetricsService owns the Prometheus registry and keeps running totals for
// the /analytics/system snapshot.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheHitRatio   prometheus.Gauge

	computeDuration prometheus.Histogram
	overallScore    prometheus.Gauge
	riskCount       prometheus.Gauge
	issueCount      prometheus.Gauge
	datasetVersion  prometheus.Gauge
	etlJobs         *prometheus.CounterVec

	cacheHitCount        atomic.Uint64
	cacheMissCount       atomic.Uint64
	requestCount         atomic.Uint64
	requestDurationTotal atomic.Uint64
	computeCount         atomic.Uint64
	computeDurationTotal atomic.Uint64
}

// NewMetricsService registers the service collectors on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	m.cacheLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "cache_latency_seconds",
		Help:      "Latency of analytics cache lookups",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheWrite = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "cache_write_seconds",
		Help:      "Latency of analytics cache writes",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hits_total",
		Help:      "Total analytics cache hits",
	})
	m.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_misses_total",
		Help:      "Total analytics cache misses",
	})
	m.cacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hit_ratio",
		Help:      "Ratio of cache hits to total cache lookups",
	})
	m.computeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "report_compute_seconds",
		Help:      "Time spent computing a quality report",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	m.overallScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "overall_score",
		Help:      "Overall quality score of the last computed report",
	})
	m.riskCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "risk_rules_triggered",
		Help:      "Number of risk rules triggered in the last computed report",
	})
	m.issueCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "validation_issues",
		Help:      "Number of input validation issues in the last computed report",
	})
	m.datasetVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "dataset_version",
		Help:      "Dataset version of the last computed report",
	})
	m.etlJobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "etl_jobs_total",
		Help:      "ETL jobs by type and final status",
	}, []string{"type", "status"})

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite, m.cacheHits, m.cacheMisses, m.cacheHitRatio,
		m.computeDuration, m.overallScore, m.riskCount, m.issueCount, m.datasetVersion,
		m.etlJobs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, label).Inc()
	m.requestCount.Add(1)
	m.requestDurationTotal.Add(uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		m.cacheHitCount.Add(1)
	} else {
		m.cacheMisses.Inc()
		m.cacheMissCount.Add(1)
	}
	hits, misses := m.cacheHitCount.Load(), m.cacheMissCount.Load()
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks cache write latency.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveReport records one report computation and its headline figures.
func (m *MetricsService) ObserveReport(report models.QualityReport, duration time.Duration) {
	if m == nil {
		return
	}
	m.computeDuration.Observe(duration.Seconds())
	m.computeCount.Add(1)
	m.computeDurationTotal.Add(uint64(duration.Nanoseconds()))
	m.overallScore.Set(float64(report.Metrics.Overall))
	m.riskCount.Set(float64(len(report.Risks)))
	m.issueCount.Set(float64(len(report.Issues)))
	m.datasetVersion.Set(float64(report.DatasetVersion))
}

// ObserveETLJob counts a job reaching a terminal status.
func (m *MetricsService) ObserveETLJob(jobType models.ETLJobType, status models.ETLJobStatus) {
	if m == nil {
		return
	}
	m.etlJobs.WithLabelValues(string(jobType), string(status)).Inc()
}

// Snapshot returns aggregated figures for the system metrics endpoint.
func (m *MetricsService) Snapshot() models.AnalyticsSystemMetrics {
	if m == nil {
		return models.AnalyticsSystemMetrics{GeneratedAt: time.Now().UTC()}
	}
	hits, misses := m.cacheHitCount.Load(), m.cacheMissCount.Load()
	requests, computations := m.requestCount.Load(), m.computeCount.Load()

	out := models.AnalyticsSystemMetrics{
		CacheHits:     hits,
		CacheMisses:   misses,
		RequestsTotal: requests,
		Computations:  computations,
		Goroutines:    runtime.NumGoroutine(),
		GeneratedAt:   time.Now().UTC(),
	}
	if total := hits + misses; total > 0 {
		out.CacheHitRatio = float64(hits) / float64(total)
	}
	if requests > 0 {
		out.AverageRequestDurationMs = float64(m.requestDurationTotal.Load()) / float64(requests) / float64(time.Millisecond)
	}
	if computations > 0 {
		out.AverageComputationMs = float64(m.computeDurationTotal.Load()) / float64(computations) / float64(time.Millisecond)
	}
	return out
}
