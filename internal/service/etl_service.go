package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/quality"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/jobs"
	"github.com/noah-isme/academic-quality-api/pkg/retry"
)

type etlJobStore interface {
	Create(ctx context.Context, job *models.ETLJob) error
	GetByID(ctx context.Context, id string) (*models.ETLJob, error)
	Update(ctx context.Context, id string, params repository.UpdateETLJobParams) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type downloadResolver interface {
	Resolve(token string) (*Download, error)
}

// ETLService accepts reload and export requests and tracks their jobs.
type ETLService struct {
	repo       etlJobStore
	queue      jobDispatcher
	downloads  downloadResolver
	metrics    *MetricsService
	logger     *zap.Logger
	syncSource bool
}

// NewETLService constructs the ETL service. syncSource reports whether a
// database source is configured for TriggerSync.
func NewETLService(repo etlJobStore, queue jobDispatcher, downloads downloadResolver, metrics *MetricsService, logger *zap.Logger, syncSource bool) *ETLService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ETLService{repo: repo, queue: queue, downloads: downloads, metrics: metrics, logger: logger, syncSource: syncSource}
}

// TriggerSync enqueues a reload of the repositories from the source database.
func (s *ETLService) TriggerSync(ctx context.Context, userID string) (*models.ETLJob, error) {
	if !s.syncSource {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "no sync source configured")
	}
	return s.enqueue(ctx, &models.ETLJob{Type: models.ETLJobSync, CreatedBy: userID})
}

// TriggerReport enqueues a quality report export in format.
func (s *ETLService) TriggerReport(ctx context.Context, userID string, format models.ReportFormat) (*models.ETLJob, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	return s.enqueue(ctx, &models.ETLJob{Type: models.ETLJobReport, Format: format, CreatedBy: userID})
}

// Status returns the tracked state of a job.
func (s *ETLService) Status(ctx context.Context, id string) (*models.ETLJob, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

// ResolveDownload opens the export granted by a signed token.
func (s *ETLService) ResolveDownload(token string) (*Download, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "token is required")
	}
	return s.downloads.Resolve(token)
}

func (s *ETLService) enqueue(ctx context.Context, job *models.ETLJob) (*models.ETLJob, error) {
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register job")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type), Payload: job.Format}); err != nil {
		failed := models.ETLStatusFailed
		msg := "failed to enqueue job"
		now := time.Now().UTC()
		if updateErr := s.repo.Update(ctx, job.ID, repository.UpdateETLJobParams{Status: &failed, ErrorMessage: &msg, FinishedAt: &now}); updateErr != nil {
			s.logger.Warn("failed to mark job failed", zap.String("job_id", job.ID), zap.Error(updateErr))
		}
		s.metrics.ObserveETLJob(job.Type, models.ETLStatusFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "job queue unavailable")
	}
	s.metrics.ObserveETLJob(job.Type, models.ETLStatusQueued)
	s.logger.Info("etl job queued", zap.String("job_id", job.ID), zap.String("type", string(job.Type)), zap.String("user_id", job.CreatedBy))
	return job, nil
}

// SyncSource loads the full dataset from the system of record.
type SyncSource interface {
	LoadStudents(ctx context.Context) ([]models.Student, error)
	LoadTeachers(ctx context.Context) ([]models.Teacher, error)
	LoadCourses(ctx context.Context) ([]models.Course, error)
}

type datasetReplacer interface {
	ReplaceAll(students []models.Student, teachers []models.Teacher, courses []models.Course) (uint64, error)
}

type qualityReporter interface {
	Report(ctx context.Context) (models.QualityReport, ReportMeta, error)
	Invalidate(ctx context.Context) error
}

type reportGenerator interface {
	Generate(ctx context.Context, jobID string, format models.ReportFormat, report models.QualityReport) (*ExportResult, error)
}

// ETLWorker bridges queue jobs to the sync and export pipelines.
type ETLWorker struct {
	repo     etlJobStore
	source   SyncSource
	store    datasetReplacer
	quality  qualityReporter
	exporter reportGenerator
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewETLWorker constructs a worker. source may be nil when no database is configured.
func NewETLWorker(repo etlJobStore, source SyncSource, store datasetReplacer, quality qualityReporter, exporter reportGenerator, metrics *MetricsService, logger *zap.Logger) *ETLWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ETLWorker{repo: repo, source: source, store: store, quality: quality, exporter: exporter, metrics: metrics, logger: logger}
}

// Handle processes a queue job. Retryable failures put the job back to QUEUED.
func (w *ETLWorker) Handle(ctx context.Context, job jobs.Job) error {
	processing := models.ETLStatusProcessing
	attempts := job.Attempt + 1
	if err := w.repo.Update(ctx, job.ID, repository.UpdateETLJobParams{Status: &processing, Attempts: &attempts}); err != nil {
		return retry.Permanent(fmt.Errorf("load job %s: %w", job.ID, err))
	}

	params := repository.UpdateETLJobParams{}
	var err error
	switch models.ETLJobType(job.Type) {
	case models.ETLJobSync:
		params.Summary, err = w.sync(ctx)
	case models.ETLJobReport:
		format, _ := job.Payload.(models.ReportFormat)
		var result *ExportResult
		if result, err = w.report(ctx, job.ID, format); err == nil {
			params.ResultURL = &result.URL
		}
	default:
		err = retry.Permanent(fmt.Errorf("unknown job type %q", job.Type))
	}

	if err != nil {
		if !retry.IsPermanent(err) {
			queued := models.ETLStatusQueued
			msg := err.Error()
			if updateErr := w.repo.Update(ctx, job.ID, repository.UpdateETLJobParams{Status: &queued, ErrorMessage: &msg}); updateErr != nil {
				w.logger.Warn("failed to mark job queued", zap.String("job_id", job.ID), zap.Error(updateErr))
			}
		}
		return err
	}

	finished := models.ETLStatusFinished
	cleared := ""
	now := time.Now().UTC()
	params.Status, params.ErrorMessage, params.FinishedAt = &finished, &cleared, &now
	if err := w.repo.Update(ctx, job.ID, params); err != nil {
		w.logger.Warn("failed to mark job finished", zap.String("job_id", job.ID), zap.Error(err))
	}
	w.metrics.ObserveETLJob(models.ETLJobType(job.Type), models.ETLStatusFinished)
	return nil
}

// Fail records a job that will not be retried.
func (w *ETLWorker) Fail(job jobs.Job, cause error) {
	failed := models.ETLStatusFailed
	msg := cause.Error()
	now := time.Now().UTC()
	if err := w.repo.Update(context.Background(), job.ID, repository.UpdateETLJobParams{Status: &failed, ErrorMessage: &msg, FinishedAt: &now}); err != nil {
		w.logger.Warn("failed to mark job failed", zap.String("job_id", job.ID), zap.Error(err))
	}
	w.metrics.ObserveETLJob(models.ETLJobType(job.Type), models.ETLStatusFailed)
}

// sync loads all three tables concurrently, validates them and swaps the
// dataset in one step.
func (w *ETLWorker) sync(ctx context.Context) (*models.ETLSummary, error) {
	if w.source == nil {
		return nil, retry.Permanent(errors.New("no sync source configured"))
	}
	var (
		students []models.Student
		teachers []models.Teacher
		courses  []models.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = w.source.LoadStudents(gctx)
		return err
	})
	g.Go(func() (err error) {
		teachers, err = w.source.LoadTeachers(gctx)
		return err
	})
	g.Go(func() (err error) {
		courses, err = w.source.LoadCourses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}

	if issues := quality.ValidateInput(students, teachers, courses); len(issues) > 0 {
		first := issues[0]
		return nil, retry.Permanent(fmt.Errorf("source rejected: %d validation issue(s), first %s %s: %s", len(issues), first.Entity, first.ID, first.Message))
	}
	version, err := w.store.ReplaceAll(students, teachers, courses)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("source rejected: %w", err))
	}
	if err := w.quality.Invalidate(ctx); err != nil {
		w.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}

	w.logger.Info("dataset reloaded",
		zap.Int("students", len(students)),
		zap.Int("teachers", len(teachers)),
		zap.Int("courses", len(courses)),
		zap.Uint64("version", version),
	)
	return &models.ETLSummary{Students: len(students), Teachers: len(teachers), Courses: len(courses), DatasetVersion: version}, nil
}

func (w *ETLWorker) report(ctx context.Context, jobID string, format models.ReportFormat) (*ExportResult, error) {
	if !format.Valid() {
		return nil, retry.Permanent(fmt.Errorf("unsupported format %q", format))
	}
	report, _, err := w.quality.Report(ctx)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return w.exporter.Generate(ctx, jobID, format, report)
}
