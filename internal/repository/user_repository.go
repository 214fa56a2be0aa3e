package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// UserRepository keeps dashboard accounts and their refresh-token sessions in memory.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	tokens  map[string]models.RefreshToken
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string]models.RefreshToken),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Upsert stores the user, keyed by its email. An existing account with the
// same email keeps its id.
func (r *UserRepository) Upsert(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(user.Email)
	if id, ok := r.byEmail[email]; ok {
		user.ID = id
		user.CreatedAt = r.users[id].CreatedAt
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Email = email
	r.users[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// UpdateLastLogin records a successful login.
func (r *UserRepository) UpdateLastLogin(_ context.Context, id string, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.LastLogin = &ts
	r.users[id] = user
	return nil
}

// CreateRefreshToken stores a refresh-token session.
func (r *UserRepository) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.tokens[token.Token] = *token
	return nil
}

// FindRefreshToken looks a session up by its opaque token value.
func (r *UserRepository) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &stored, nil
}

// RevokeRefreshToken marks the session with the given id as revoked. It
// reports false when the session was already revoked.
func (r *UserRepository) RevokeRefreshToken(_ context.Context, id string, revokedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, stored := range r.tokens {
		if stored.ID != id {
			continue
		}
		if stored.Revoked() {
			return false, nil
		}
		stored.RevokedAt = &revokedAt
		r.tokens[key] = stored
		return true, nil
	}
	return false, ErrNotFound
}

// PurgeExpired drops sessions that expired before now.
func (r *UserRepository) PurgeExpired(_ context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, stored := range r.tokens {
		if now.After(stored.ExpiresAt) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed
}
