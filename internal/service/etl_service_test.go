package service

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/jobs"
	"github.com/noah-isme/academic-quality-api/pkg/retry"
	"github.com/noah-isme/academic-quality-api/pkg/storage"
)

type fakeSource struct {
	students []models.Student
	teachers []models.Teacher
	courses  []models.Course
	failures atomic.Int32
}

func (f *fakeSource) LoadStudents(context.Context) ([]models.Student, error) {
	if f.failures.Load() > 0 {
		f.failures.Add(-1)
		return nil, errors.New("connection reset")
	}
	return f.students, nil
}

func (f *fakeSource) LoadTeachers(context.Context) ([]models.Teacher, error) { return f.teachers, nil }
func (f *fakeSource) LoadCourses(context.Context) ([]models.Course, error)   { return f.courses, nil }

type stubDispatcher struct {
	jobs []jobs.Job
	err  error
}

func (d *stubDispatcher) Enqueue(job jobs.Job) error {
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

type etlFixture struct {
	store   *repository.Store
	jobs    *repository.ETLJobRepository
	quality *QualityService
	export  *ExportService
	source  *fakeSource
	worker  *ETLWorker
}

func newETLFixture(t *testing.T) *etlFixture {
	t.Helper()
	store := repository.NewStore()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	f := &etlFixture{
		store:   store,
		jobs:    repository.NewETLJobRepository(),
		quality: NewQualityService(store, nil, nil, nil, QualityConfig{}),
		export:  NewExportService(files, storage.NewSignedURLSigner("secret", time.Hour), ExportConfig{}, nil),
		source: &fakeSource{
			students: []models.Student{{ID: "s1", StudentNumber: "S1", Department: "CS", GPA: 3.6, Status: models.StudentStatusActive}},
			teachers: []models.Teacher{{ID: "t1", EmployeeNumber: "T1", Department: "CS"}},
			courses:  []models.Course{{ID: "c1", Code: "CS101", Department: "CS", EnrolledStudents: []string{"s1"}, MaxCapacity: 2}},
		},
	}
	f.worker = NewETLWorker(f.jobs, f.source, store, f.quality, f.export, nil, nil)
	return f
}

func (f *etlFixture) register(t *testing.T, jobType models.ETLJobType, format models.ReportFormat) jobs.Job {
	t.Helper()
	job := &models.ETLJob{Type: jobType, Format: format}
	require.NoError(t, f.jobs.Create(context.Background(), job))
	return jobs.Job{ID: job.ID, Type: string(jobType), Payload: format}
}

func TestETLServiceTriggerValidation(t *testing.T) {
	dispatcher := &stubDispatcher{}
	svc := NewETLService(repository.NewETLJobRepository(), dispatcher, nil, nil, nil, false)

	_, err := svc.TriggerSync(context.Background(), "u1")
	assert.True(t, errors.Is(err, appErrors.ErrUnavailable))

	_, err = svc.TriggerReport(context.Background(), "u1", "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	job, err := svc.TriggerReport(context.Background(), "u1", models.ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, models.ETLStatusQueued, job.Status)
	require.Len(t, dispatcher.jobs, 1)
	assert.Equal(t, models.ReportFormatCSV, dispatcher.jobs[0].Payload)

	_, err = svc.Status(context.Background(), "missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.ResolveDownload("")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestETLServiceEnqueueFailure(t *testing.T) {
	repo := repository.NewETLJobRepository()
	svc := NewETLService(repo, &stubDispatcher{err: jobs.ErrNotStarted}, nil, nil, nil, true)

	_, err := svc.TriggerSync(context.Background(), "u1")
	assert.True(t, errors.Is(err, appErrors.ErrUnavailable))
}

func TestETLWorkerSyncReplacesDataset(t *testing.T) {
	f := newETLFixture(t)
	_, _, err := f.quality.Report(context.Background())
	require.NoError(t, err)
	job := f.register(t, models.ETLJobSync, "")

	require.NoError(t, f.worker.Handle(context.Background(), job))

	stored, err := f.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ETLStatusFinished, stored.Status)
	require.NotNil(t, stored.Summary)
	assert.Equal(t, 1, stored.Summary.Students)
	assert.Equal(t, f.store.Version(), stored.Summary.DatasetVersion)
	assert.NotNil(t, stored.FinishedAt)

	report, meta, err := f.quality.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceComputed, meta.Source)
	assert.Equal(t, 85, report.Metrics.Overall)
}

func TestETLWorkerSyncRejectsInvalidSource(t *testing.T) {
	f := newETLFixture(t)
	f.source.students[0].GPA = 7
	job := f.register(t, models.ETLJobSync, "")

	err := f.worker.Handle(context.Background(), job)
	require.Error(t, err)
	assert.True(t, retry.IsPermanent(err))
	assert.Zero(t, f.store.Version())
}

func TestETLWorkerTransientFailureRequeues(t *testing.T) {
	f := newETLFixture(t)
	f.source.failures.Store(1)
	job := f.register(t, models.ETLJobSync, "")

	err := f.worker.Handle(context.Background(), job)
	require.Error(t, err)
	assert.False(t, retry.IsPermanent(err))

	stored, err := f.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ETLStatusQueued, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "connection reset")
	assert.Equal(t, 1, stored.Attempts)
}

func TestETLWorkerFail(t *testing.T) {
	f := newETLFixture(t)
	job := f.register(t, models.ETLJobReport, models.ReportFormatPDF)

	f.worker.Fail(job, errors.New("disk full"))

	stored, err := f.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ETLStatusFailed, stored.Status)
	assert.Equal(t, "disk full", *stored.ErrorMessage)
}

func TestETLPipelineThroughQueue(t *testing.T) {
	f := newETLFixture(t)
	f.source.failures.Store(1)
	queue := jobs.NewQueue("etl", f.worker.Handle, jobs.QueueConfig{Workers: 2, MaxRetries: 2, RetryDelay: 10 * time.Millisecond, OnFailure: f.worker.Fail})
	queue.Start(context.Background())
	defer queue.Stop()
	svc := NewETLService(f.jobs, queue, f.export, nil, nil, true)

	syncJob, err := svc.TriggerSync(context.Background(), "u1")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		job, err := svc.Status(context.Background(), syncJob.ID)
		return err == nil && job.Status == models.ETLStatusFinished
	}, 2*time.Second, 10*time.Millisecond)

	reportJob, err := svc.TriggerReport(context.Background(), "u1", models.ReportFormatCSV)
	require.NoError(t, err)
	var finished *models.ETLJob
	require.Eventually(t, func() bool {
		finished, err = svc.Status(context.Background(), reportJob.ID)
		return err == nil && finished.Status == models.ETLStatusFinished
	}, 2*time.Second, 10*time.Millisecond)

	require.NotNil(t, finished.ResultURL)
	parsed, err := url.Parse(*finished.ResultURL)
	require.NoError(t, err)
	dl, err := svc.ResolveDownload(parsed.Query().Get("token"))
	require.NoError(t, err)
	defer dl.File.Close()
	assert.Equal(t, "text/csv", dl.ContentType)
	assert.Equal(t, reportJob.ID, dl.Grant.JobID)
}
