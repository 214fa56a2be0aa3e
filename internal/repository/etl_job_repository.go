package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// ETLJobRepository tracks background job state in memory.
type ETLJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.ETLJob
}

// NewETLJobRepository constructs an empty job registry.
func NewETLJobRepository() *ETLJobRepository {
	return &ETLJobRepository{jobs: make(map[string]models.ETLJob)}
}

// Create registers a job, assigning id, status and creation time when unset.
func (r *ETLJobRepository) Create(_ context.Context, job *models.ETLJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ETLStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; ok {
		return ErrDuplicateID
	}
	r.jobs[job.ID] = *job
	return nil
}

// GetByID returns a copy of the job.
func (r *ETLJobRepository) GetByID(_ context.Context, id string) (*models.ETLJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

// UpdateETLJobParams defines the mutable fields; nil fields are left as is.
type UpdateETLJobParams struct {
	Status       *models.ETLJobStatus
	Attempts     *int
	ResultURL    *string
	ErrorMessage *string
	Summary      *models.ETLSummary
	FinishedAt   *time.Time
}

// Update applies params to the job.
func (r *ETLJobRepository) Update(_ context.Context, id string, params UpdateETLJobParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Attempts != nil {
		job.Attempts = *params.Attempts
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		if *params.ErrorMessage == "" {
			job.ErrorMessage = nil
		} else {
			job.ErrorMessage = params.ErrorMessage
		}
	}
	if params.Summary != nil {
		job.Summary = params.Summary
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	r.jobs[id] = job
	return nil
}

// PruneFinished drops finished or failed jobs that ended before cutoff.
func (r *ETLJobRepository) PruneFinished(_ context.Context, cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, job := range r.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}
