package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/pkg/retry"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{"statusCode": status, "message": http.StatusText(status), "data": data}
	if status >= http.StatusBadRequest {
		body["error"] = map[string]interface{}{"code": "ERR", "message": "failed"}
	}
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL: srv.URL,
		Retry:   retry.Policy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2},
	})
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeEnvelope(w, http.StatusBadGateway, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, models.ETLJob{ID: "job-1", Status: models.ETLStatusQueued})
	})

	job, err := c.Job(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGivesUpAfterThreeRetries(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusInternalServerError, nil)
	})

	_, err := c.Job(context.Background(), "job-1")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.EqualValues(t, 4, calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusBadRequest, nil)
	})

	_, err := c.TriggerReport(context.Background(), "xml")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ERR", apiErr.Code)
	assert.EqualValues(t, 1, calls.Load())
}

func TestRefreshesOnceOnUnauthorized(t *testing.T) {
	var refreshes atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			refreshes.Add(1)
			var req models.RefreshTokenRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "refresh-1", req.RefreshToken)
			writeEnvelope(w, http.StatusOK, models.RefreshTokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"})
		case "/api/v1/analytics/risks":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeEnvelope(w, http.StatusUnauthorized, nil)
				return
			}
			assert.Equal(t, "High", r.URL.Query().Get("level"))
			writeEnvelope(w, http.StatusOK, []models.RiskAssessment{{Level: models.RiskHigh}})
		}
	})
	c.SetTokens("access-1", "refresh-1")

	risks, err := c.Risks(context.Background(), models.RiskHigh)
	require.NoError(t, err)
	assert.Len(t, risks, 1)
	assert.EqualValues(t, 1, refreshes.Load())

	access, refresh := c.Tokens()
	assert.Equal(t, "access-2", access)
	assert.Equal(t, "refresh-2", refresh)
}

func TestLoginRequiredWhenRefreshRejected(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil)
	})
	c.SetTokens("stale", "stale-refresh")

	_, _, err := c.Quality(context.Background())
	assert.ErrorIs(t, err, ErrLoginRequired)
	access, _ := c.Tokens()
	assert.Empty(t, access)
}

func TestLoginRequiredWhenStillUnauthorizedAfterRefresh(t *testing.T) {
	var refreshes atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			refreshes.Add(1)
			writeEnvelope(w, http.StatusOK, models.RefreshTokenResponse{AccessToken: "a", RefreshToken: "r"})
			return
		}
		writeEnvelope(w, http.StatusUnauthorized, nil)
	})
	c.SetTokens("stale", "stale-refresh")

	_, err := c.Departments(context.Background(), "CS")
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.EqualValues(t, 1, refreshes.Load())
}

func TestLoginStoresSession(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		writeEnvelope(w, http.StatusOK, models.LoginResponse{TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"}})
	})

	_, err := c.Login(context.Background(), "admin@example.edu", "secret")
	require.NoError(t, err)
	access, refresh := c.Tokens()
	assert.Equal(t, "a", access)
	assert.Equal(t, "r", refresh)
}

func TestDownloadRelativeURL(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/etl/reports/download", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("# Summary\n"))
	})

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), "/api/v1/etl/reports/download?token=tok", &buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)
	assert.Equal(t, "# Summary\n", buf.String())
}
