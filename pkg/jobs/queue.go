package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/pkg/retry"
)

// ErrNotStarted is returned when enqueueing on a queue that is not running.
var ErrNotStarted = errors.New("queue not started")

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job. Errors wrapped with retry.Permanent are not retried.
type Handler func(context.Context, Job) error

// FailureHandler is notified once a job has failed for good.
type FailureHandler func(Job, error)

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	OnFailure  FailureHandler
	Logger     *zap.Logger
}

// Queue is an in-memory job dispatcher backed by a fixed pool of goroutines.
// Failed jobs are re-enqueued with exponential backoff.
type Queue struct {
	name      string
	handler   Handler
	onFailure FailureHandler
	workers   int
	backoff   retry.Policy
	logger    *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	retries sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.OnFailure == nil {
		cfg.OnFailure = func(Job, error) {}
	}

	return &Queue{
		name:      name,
		handler:   handler,
		onFailure: cfg.OnFailure,
		workers:   cfg.Workers,
		backoff: retry.Policy{
			MaxRetries:   cfg.MaxRetries,
			InitialDelay: cfg.RetryDelay,
			MaxDelay:     cfg.RetryDelay * 16,
			Multiplier:   2,
		},
		logger: cfg.Logger.With(zap.String("queue", name)),
		jobs:   make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Calling it again is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i + 1)
	}
	q.started = true
	q.logger.Info("queue started", zap.Int("workers", q.workers))
}

// Stop cancels workers and pending retries and waits for them to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.started = false
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.retries.Wait()
	q.logger.Info("queue stopped")
}

// Enqueue pushes a job onto the queue, blocking while the buffer is full.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	ctx := q.ctx
	started := q.started
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("queue %s: %w", q.name, ErrNotStarted)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

func (q *Queue) worker(workerID int) {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.run(workerID, job)
		}
	}
}

func (q *Queue) run(workerID int, job Job) {
	start := time.Now()
	err := q.handler(q.ctx, job)
	if err == nil {
		q.logger.Debug("job finished",
			zap.Int("worker", workerID),
			zap.String("job_id", job.ID),
			zap.String("type", job.Type),
			zap.Duration("duration", time.Since(start)),
		)
		return
	}
	q.handleFailure(job, err)
}

func (q *Queue) handleFailure(job Job, err error) {
	job.Attempt++
	if retry.IsPermanent(err) || job.Attempt > q.backoff.MaxRetries {
		q.logger.Error("job failed", zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempts", job.Attempt), zap.Error(err))
		q.onFailure(job, err)
		return
	}
	delay := q.backoff.Backoff(job.Attempt)
	q.logger.Warn("job failed, retrying",
		zap.String("job_id", job.ID),
		zap.String("type", job.Type),
		zap.Int("attempt", job.Attempt),
		zap.Duration("delay", delay),
		zap.Error(err),
	)

	q.retries.Add(1)
	go func(j Job) {
		defer q.retries.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			q.onFailure(j, q.ctx.Err())
		case <-timer.C:
			if err := q.Enqueue(j); err != nil {
				q.logger.Error("failed to requeue job", zap.String("job_id", j.ID), zap.Error(err))
				q.onFailure(j, err)
			}
		}
	}(job)
}
