package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

func TestUserRepositoryUpsertKeepsIdentity(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first := &models.User{Email: " Admin@Example.edu ", FullName: "Admin", Role: models.RoleAdmin, Active: true}
	require.NoError(t, repo.Upsert(ctx, first))
	assert.Equal(t, "admin@example.edu", first.Email)

	second := &models.User{Email: "admin@example.edu", FullName: "Renamed", Role: models.RoleSuperAdmin, Active: true}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	found, err := repo.FindByEmail(ctx, "ADMIN@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.FullName)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryRefreshTokens(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	token := &models.RefreshToken{UserID: "u1", Token: "opaque", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, repo.CreateRefreshToken(ctx, token))
	require.NotEmpty(t, token.ID)

	stored, err := repo.FindRefreshToken(ctx, "opaque")
	require.NoError(t, err)
	assert.False(t, stored.Revoked())

	revoked, err := repo.RevokeRefreshToken(ctx, token.ID, now)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = repo.RevokeRefreshToken(ctx, token.ID, now)
	require.NoError(t, err)
	assert.False(t, revoked)

	stored, _ = repo.FindRefreshToken(ctx, "opaque")
	assert.True(t, stored.Revoked())

	expired := &models.RefreshToken{UserID: "u1", Token: "old", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.CreateRefreshToken(ctx, expired))
	assert.Equal(t, 1, repo.PurgeExpired(ctx, now))
	_, err = repo.FindRefreshToken(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}
