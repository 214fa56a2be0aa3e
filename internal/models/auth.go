package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest carries credentials. IP and UserAgent are filled from the
// request for audit logging.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// TokenPair is a short-lived access token and its rotating refresh token.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// LoginResponse is the session issued on login.
type LoginResponse struct {
	TokenPair
	User UserInfo `json:"user"`
}

// RefreshTokenRequest presents a refresh token for rotation or revocation.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse is the rotated pair.
type RefreshTokenResponse = TokenPair

// UserInfo is the public view of a user.
type UserInfo struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// JWTClaims is the access token payload.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}
