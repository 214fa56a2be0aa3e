package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidToken is returned for malformed or tampered download tokens.
	ErrInvalidToken = errors.New("invalid download token")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("download token expired")
)

// Grant is the content of a download token.
type Grant struct {
	JobID     string
	Path      string
	ExpiresAt time.Time
}

// SignedURLSigner issues and verifies HMAC-signed download tokens of the form
// base64(job|expiry|path).base64(mac).
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token granting access to path on behalf of jobID.
func (s *SignedURLSigner) Sign(jobID, path string) (string, Grant, error) {
	if jobID == "" || path == "" {
		return "", Grant{}, fmt.Errorf("job id and path required")
	}
	if len(s.secret) == 0 {
		return "", Grant{}, fmt.Errorf("signing secret missing")
	}
	grant := Grant{JobID: jobID, Path: path, ExpiresAt: s.now().Add(s.ttl).Truncate(time.Second)}
	payload := strings.Join([]string{jobID, strconv.FormatInt(grant.ExpiresAt.Unix(), 10), path}, "|")
	token := base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + base64.RawURLEncoding.EncodeToString(s.mac(payload))
	return token, grant, nil
}

// Verify checks the token signature and expiry and returns its grant.
func (s *SignedURLSigner) Verify(token string) (Grant, error) {
	encPayload, encMAC, ok := strings.Cut(token, ".")
	if !ok {
		return Grant{}, ErrInvalidToken
	}
	rawPayload, err := base64.RawURLEncoding.DecodeString(encPayload)
	if err != nil {
		return Grant{}, ErrInvalidToken
	}
	sig, err := base64.RawURLEncoding.DecodeString(encMAC)
	if err != nil || !hmac.Equal(sig, s.mac(string(rawPayload))) {
		return Grant{}, ErrInvalidToken
	}
	parts := strings.SplitN(string(rawPayload), "|", 3)
	if len(parts) != 3 {
		return Grant{}, ErrInvalidToken
	}
	expUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Grant{}, ErrInvalidToken
	}
	grant := Grant{JobID: parts[0], Path: parts[2], ExpiresAt: time.Unix(expUnix, 0)}
	if s.now().After(grant.ExpiresAt) {
		return grant, ErrTokenExpired
	}
	return grant, nil
}

func (s *SignedURLSigner) mac(payload string) []byte {
	m := hmac.New(sha256.New, s.secret)
	_, _ = m.Write([]byte(payload))
	return m.Sum(nil)
}
