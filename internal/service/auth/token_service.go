// Package auth issues and verifies the bearer tokens that guard the report
// API. Tokens are HS256 JWTs carrying a subject and a scope.
package auth

import (
	"context"
	"time"
)

// ScopeReportsRead grants access to the task report endpoint.
const ScopeReportsRead = "reports:read"

// TokenService issues and validates API tokens.
type TokenService interface {
	// IssueToken signs a token for subject valid for lifetime.
	IssueToken(ctx context.Context, subject string, lifetime time.Duration) (string, error)

	// ValidateToken verifies the signature and time claims of tokenString
	// and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of a token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	Scope     string    `json:"scope,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
