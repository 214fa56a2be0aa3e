package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

func TestETLJobRepositoryLifecycle(t *testing.T) {
	repo := NewETLJobRepository()
	ctx := context.Background()

	job := &models.ETLJob{Type: models.ETLJobSync, CreatedBy: "u1"}
	require.NoError(t, repo.Create(ctx, job))
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ETLStatusQueued, job.Status)
	assert.ErrorIs(t, repo.Create(ctx, job), ErrDuplicateID)

	msg := "source down"
	attempts := 1
	require.NoError(t, repo.Update(ctx, job.ID, UpdateETLJobParams{ErrorMessage: &msg, Attempts: &attempts}))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "source down", *got.ErrorMessage)
	assert.Equal(t, 1, got.Attempts)

	finished := models.ETLStatusFinished
	cleared := ""
	now := time.Now().UTC()
	require.NoError(t, repo.Update(ctx, job.ID, UpdateETLJobParams{Status: &finished, ErrorMessage: &cleared, FinishedAt: &now}))
	got, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ErrorMessage)
	assert.Equal(t, models.ETLStatusFinished, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, "missing", UpdateETLJobParams{}), ErrNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestETLJobRepositoryPruneFinished(t *testing.T) {
	repo := NewETLJobRepository()
	ctx := context.Background()

	old := time.Now().Add(-2 * time.Hour)
	done := &models.ETLJob{Type: models.ETLJobReport}
	pending := &models.ETLJob{Type: models.ETLJobSync}
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Update(ctx, done.ID, UpdateETLJobParams{FinishedAt: &old}))

	assert.Equal(t, 1, repo.PruneFinished(ctx, time.Now().Add(-time.Hour)))
	_, err := repo.GetByID(ctx, pending.ID)
	assert.NoError(t, err)
}
