package mocks

import (
	"context"
	"time"

	"github.com/withoutfanfare/developer-test/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	IssueTokenFn    func(ctx context.Context, subject string, lifetime time.Duration) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default response values
	Token  string
	Claims *auth.Claims
	Err    error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements auth.TokenService
func (m *MockTokenService) IssueToken(ctx context.Context, subject string, lifetime time.Duration) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, subject, lifetime)
	}
	return m.Token, m.Err
}

// ValidateToken implements auth.TokenService
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.Err
}
