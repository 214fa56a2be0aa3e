package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
		Issuer:             "academic-quality-api",
	})
	_, err := svc.SeedUser(context.Background(), "Admin@Example.edu", "admin123", "Administrator", models.RoleAdmin)
	require.NoError(t, err)
	return svc, repo
}

func login(t *testing.T, svc *AuthService) *models.LoginResponse {
	t.Helper()
	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.edu", Password: "admin123"})
	require.NoError(t, err)
	return resp
}

func TestAuthLoginIssuesValidTokens(t *testing.T) {
	svc, repo := newAuthService(t)

	resp := login(t, svc)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(60), resp.ExpiresIn)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "admin@example.edu", claims.Email)

	user, err := repo.FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.edu", Password: "wrong"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.edu", Password: "admin123"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAuthLoginInactiveAccount(t *testing.T) {
	svc, repo := newAuthService(t)
	user, err := repo.FindByEmail(context.Background(), "admin@example.edu")
	require.NoError(t, err)
	user.Active = false
	require.NoError(t, repo.Upsert(context.Background(), user))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.edu", Password: "admin123"})
	assert.True(t, errors.Is(err, appErrors.ErrInactiveAccount))
}

func TestAuthRefreshRotates(t *testing.T) {
	svc, _ := newAuthService(t)
	resp := login(t, svc)

	rotated, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.NoError(t, err)
}

func TestAuthRefreshConcurrentUseSucceedsOnce(t *testing.T) {
	svc, _ := newAuthService(t)
	resp := login(t, svc)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: resp.RefreshToken}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestAuthRefreshExpired(t *testing.T) {
	svc, _ := newAuthService(t)
	resp := login(t, svc)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	_, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthLogout(t *testing.T) {
	svc, _ := newAuthService(t)
	resp := login(t, svc)

	err := svc.Logout(context.Background(), resp.RefreshToken, "someone-else")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken, resp.User.ID))

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	err = svc.Logout(context.Background(), "unknown", resp.User.ID)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthValidateTokenRejects(t *testing.T) {
	svc, _ := newAuthService(t)
	resp := login(t, svc)

	other := NewAuthService(repository.NewUserRepository(), nil, nil, AuthConfig{AccessTokenSecret: "different", Issuer: "academic-quality-api"})
	_, err := other.ValidateToken(resp.AccessToken)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	svc.now = func() time.Time { return time.Now().UTC().Add(time.Hour) }
	_, err = svc.ValidateToken(resp.AccessToken)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JWTClaims{UserID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
