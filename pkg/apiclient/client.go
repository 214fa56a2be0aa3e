// Package apiclient is a JSON client for the academic quality API.
//
// Transport failures and 5xx answers are retried with backoff. Any 4xx answer
// stops retrying at once. A 401 triggers a single token refresh; if the
// refreshed call is rejected again the caller gets ErrLoginRequired.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/pkg/retry"
)

// ErrLoginRequired is returned when the session cannot be refreshed.
var ErrLoginRequired = errors.New("login required")

// Error is a non-2xx answer decoded from the response envelope.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	APIPrefix  string
	Timeout    time.Duration
	Retry      retry.Policy
	HTTPClient *http.Client
}

// Client talks to one API deployment. It is safe for concurrent use.
type Client struct {
	base   string
	prefix string
	http   *http.Client
	policy retry.Policy

	mu      sync.RWMutex
	access  string
	refresh string
}

// New builds a Client. Retry defaults to three retries starting at 200ms.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Retry == (retry.Policy{}) {
		cfg.Retry = retry.DefaultPolicy()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		prefix: "/" + strings.Trim(cfg.APIPrefix, "/"),
		http:   cfg.HTTPClient,
		policy: cfg.Retry,
	}
}

// SetTokens installs a previously obtained session.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	c.access, c.refresh = access, refresh
	c.mu.Unlock()
}

// Tokens returns the current session tokens.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.access, c.refresh
}

type envelope struct {
	Data     json.RawMessage        `json:"data"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var res models.LoginResponse
	body := models.LoginRequest{Email: email, Password: password}
	if _, err := c.send(ctx, http.MethodPost, "/auth/login", body, "", &res); err != nil {
		return nil, err
	}
	c.SetTokens(res.AccessToken, res.RefreshToken)
	return &res, nil
}

// Logout revokes the stored refresh token and forgets the session.
func (c *Client) Logout(ctx context.Context) error {
	_, refresh := c.Tokens()
	if refresh == "" {
		return nil
	}
	err := c.call(ctx, http.MethodPost, "/auth/logout", models.RefreshTokenRequest{RefreshToken: refresh}, nil)
	c.SetTokens("", "")
	return err
}

// Quality fetches the integrated report and the response metadata.
func (c *Client) Quality(ctx context.Context) (*models.QualityReport, map[string]interface{}, error) {
	var report models.QualityReport
	meta, err := c.get(ctx, "/analytics/quality", &report)
	if err != nil {
		return nil, nil, err
	}
	return &report, meta, nil
}

// Departments fetches per-department quality, optionally for one department.
func (c *Client) Departments(ctx context.Context, department string) ([]models.DepartmentQuality, error) {
	path := "/analytics/departments"
	if department != "" {
		path += "?department=" + url.QueryEscape(department)
	}
	var out []models.DepartmentQuality
	_, err := c.get(ctx, path, &out)
	return out, err
}

// Risks fetches triggered risk rules, optionally filtered by level.
func (c *Client) Risks(ctx context.Context, level models.RiskLevel) ([]models.RiskAssessment, error) {
	path := "/analytics/risks"
	if level != "" {
		path += "?level=" + url.QueryEscape(string(level))
	}
	var out []models.RiskAssessment
	_, err := c.get(ctx, path, &out)
	return out, err
}

// TriggerSync queues a dataset reload.
func (c *Client) TriggerSync(ctx context.Context) (*models.ETLJob, error) {
	var job models.ETLJob
	if err := c.call(ctx, http.MethodPost, "/etl/sync", nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// TriggerReport queues a report export in the given format.
func (c *Client) TriggerReport(ctx context.Context, format models.ReportFormat) (*models.ETLJob, error) {
	var job models.ETLJob
	if err := c.call(ctx, http.MethodPost, "/etl/reports", map[string]string{"format": string(format)}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Job fetches the state of a queued job.
func (c *Client) Job(ctx context.Context, id string) (*models.ETLJob, error) {
	var job models.ETLJob
	if _, err := c.get(ctx, "/etl/jobs/"+url.PathEscape(id), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// WaitJob polls a job until it finishes, fails or ctx ends.
func (c *Client) WaitJob(ctx context.Context, id string, every time.Duration) (*models.ETLJob, error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		job, err := c.Job(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status == models.ETLStatusFinished || job.Status == models.ETLStatusFailed {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Download streams a signed result URL into w. resultURL may be relative to
// the server root.
func (c *Client) Download(ctx context.Context, resultURL string, w io.Writer) (int64, error) {
	target := resultURL
	if strings.HasPrefix(resultURL, "/") {
		target = c.base + resultURL
	}
	var written int64
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return classify(decodeError(resp))
		}
		written, err = io.Copy(w, resp.Body)
		if err != nil {
			return retry.Permanent(fmt.Errorf("write download: %w", err))
		}
		return nil
	})
	return written, err
}

func (c *Client) get(ctx context.Context, path string, out interface{}) (map[string]interface{}, error) {
	return c.authorized(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.authorized(ctx, method, path, body, out)
	return err
}

// authorized sends an authenticated request, refreshing the session once on 401.
func (c *Client) authorized(ctx context.Context, method, path string, body, out interface{}) (map[string]interface{}, error) {
	access, _ := c.Tokens()
	meta, err := c.send(ctx, method, path, body, access, out)
	if !isUnauthorized(err) {
		return meta, err
	}
	if refreshErr := c.refreshSession(ctx); refreshErr != nil {
		return nil, refreshErr
	}
	access, _ = c.Tokens()
	meta, err = c.send(ctx, method, path, body, access, out)
	if isUnauthorized(err) {
		return nil, ErrLoginRequired
	}
	return meta, err
}

func (c *Client) refreshSession(ctx context.Context) error {
	_, refresh := c.Tokens()
	if refresh == "" {
		return ErrLoginRequired
	}
	var res models.RefreshTokenResponse
	if _, err := c.send(ctx, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: refresh}, "", &res); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			c.SetTokens("", "")
			return ErrLoginRequired
		}
		return err
	}
	c.SetTokens(res.AccessToken, res.RefreshToken)
	return nil
}

// send performs one logical request under the retry policy and decodes the
// envelope data into out.
func (c *Client) send(ctx context.Context, method, path string, body interface{}, token string, out interface{}) (map[string]interface{}, error) {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = raw
	}

	var env envelope
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, method, c.base+c.prefix+path, bytes.NewReader(payload))
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return classify(decodeError(resp))
		}
		if resp.StatusCode == http.StatusNoContent {
			env = envelope{}
			return nil
		}
		env = envelope{}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return retry.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Metadata, nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err == nil {
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
		} else if env.Message != "" {
			apiErr.Message = env.Message
		}
	}
	return apiErr
}

// classify marks client errors as permanent so retry.Do returns them at once.
func classify(err *Error) error {
	if err.Status < http.StatusInternalServerError {
		return retry.Permanent(err)
	}
	return err
}

func isUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
