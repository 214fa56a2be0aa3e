package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	sets    int
	deleted []string
	failGet error
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{data: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet != nil {
		return m.failGet
	}
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.data[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
			m.deleted = append(m.deleted, key)
		}
	}
	return nil
}

func seedStore(t *testing.T) *repository.Store {
	t.Helper()
	store := repository.NewStore()
	_, err := store.ReplaceAll(
		[]models.Student{
			{StudentNumber: "S1", Department: "CS", GPA: 3.6, Status: models.StudentStatusActive},
			{StudentNumber: "S2", Department: "Math", GPA: 2.1, Status: models.StudentStatusDroppedOut},
		},
		[]models.Teacher{{EmployeeNumber: "T1", Department: "CS", Status: models.TeacherStatusActive}},
		[]models.Course{{Code: "CS101", Department: "CS", EnrolledStudents: []string{"s1"}, MaxCapacity: 2}},
	)
	require.NoError(t, err)
	return store
}

func newQualityService(store *repository.Store, repo CacheRepository) *QualityService {
	cache := NewCacheService(repo, nil, time.Minute, nil, repo != nil)
	return NewQualityService(store, cache, NewMetricsService(), nil, QualityConfig{TrendSeed: 7, TrendAmplitude: 3})
}

func TestQualityServiceMemoizesOnVersion(t *testing.T) {
	store := seedStore(t)
	svc := newQualityService(store, nil)

	first, meta, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)
	assert.Equal(t, SourceComputed, meta.Source)
	assert.Equal(t, store.Version(), first.DatasetVersion)

	second, meta, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.True(t, meta.CacheHit)
	assert.Equal(t, SourceMemory, meta.Source)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
	assert.Equal(t, first.Trend, second.Trend)

	require.NoError(t, store.Students.Create(context.Background(), &models.Student{StudentNumber: "S3", Department: "CS", GPA: 4, Status: models.StudentStatusActive}))

	third, meta, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)
	assert.Equal(t, 3, third.Metrics.TotalStudents)
	assert.Equal(t, store.Version(), meta.DatasetVersion)
}

func TestQualityServiceMirrorsToCache(t *testing.T) {
	store := seedStore(t)
	repo := newMemoryCacheRepo()

	computed, _, err := newQualityService(store, repo).Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sets)

	// A fresh service on the same store finds the mirror.
	report, meta, err := newQualityService(store, repo).Report(context.Background())
	require.NoError(t, err)
	assert.True(t, meta.CacheHit)
	assert.Equal(t, SourceCache, meta.Source)
	assert.Equal(t, computed.Metrics, report.Metrics)

	// A different store never reads another store's mirror.
	_, meta, err = newQualityService(seedStore(t), repo).Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceComputed, meta.Source)
}

func TestQualityServiceCacheErrorFallsBackToCompute(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.failGet = errors.New("redis down")

	report, meta, err := newQualityService(seedStore(t), repo).Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceComputed, meta.Source)
	assert.Equal(t, 2, report.Metrics.TotalStudents)
}

func TestQualityServiceInvalidate(t *testing.T) {
	store := seedStore(t)
	repo := newMemoryCacheRepo()
	svc := newQualityService(store, repo)

	_, _, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))
	assert.Len(t, repo.deleted, 1)

	_, meta, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceComputed, meta.Source)
}

func TestQualityServiceSlices(t *testing.T) {
	svc := newQualityService(seedStore(t), nil)
	ctx := context.Background()

	depts, _, err := svc.Departments(ctx, "")
	require.NoError(t, err)
	require.Len(t, depts, 2)

	only, _, err := svc.Departments(ctx, "Math")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Math", only[0].Department)

	none, _, err := svc.Departments(ctx, "Art")
	require.NoError(t, err)
	assert.Empty(t, none)

	risks, _, err := svc.Risks(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, risks)

	high, _, err := svc.Risks(ctx, models.RiskHigh)
	require.NoError(t, err)
	require.NotEmpty(t, high)
	for _, r := range high {
		assert.Equal(t, models.RiskHigh, r.Level)
	}
	assert.Contains(t, high[0].Departments, "Math")

	trend, _, err := svc.Trend(ctx)
	require.NoError(t, err)
	assert.Len(t, trend.Points, 6)
	assert.True(t, trend.Synthetic)

	dist, _, err := svc.Distribution(ctx)
	require.NoError(t, err)
	assert.Len(t, dist.ByStatus, 5)

	issues, meta, err := svc.Validate(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Contains(t, meta.Map(), "processing_time_ms")
}

func TestQualityServiceObservesMetrics(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewQualityService(seedStore(t), nil, metrics, nil, QualityConfig{})

	_, _, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["academic_quality_report_compute_seconds"])
	assert.True(t, names["academic_quality_overall_score"])
}
