package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

var fixedTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedService(t *testing.T, secret string, now time.Time) *hmacTokenService {
	t.Helper()
	svc, err := newTokenService(secret, func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	t.Parallel()
	_, err := NewTokenService("too-short")
	require.Error(t, err)
}

func TestIssueToken(t *testing.T) {
	t.Parallel()
	svc := fixedService(t, testSecret, fixedTime)

	token, err := svc.IssueToken(context.Background(), "ops-dashboard", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ops-dashboard", claims.Subject)
	assert.Equal(t, ScopeReportsRead, claims.Scope)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestIssueToken_InvalidArguments(t *testing.T) {
	t.Parallel()
	svc := fixedService(t, testSecret, fixedTime)

	_, err := svc.IssueToken(context.Background(), "", time.Hour)
	require.Error(t, err)
	_, err = svc.IssueToken(context.Background(), "ops", 0)
	require.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuer := fixedService(t, testSecret, fixedTime)
	valid, err := issuer.IssueToken(context.Background(), "ops", time.Hour)
	require.NoError(t, err)

	wrongKey := fixedService(t, "wrong-secret-that-is-long-enough-for-testing", fixedTime)
	forged, err := wrongKey.IssueToken(context.Background(), "ops", time.Hour)
	require.NoError(t, err)

	unscoped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid", token: valid, now: fixedTime.Add(30 * time.Minute)},
		{name: "within clock skew", token: valid, now: fixedTime.Add(time.Hour + time.Minute)},
		{name: "expired", token: valid, now: fixedTime.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "not yet valid", token: valid, now: fixedTime.Add(-time.Hour), wantErr: ErrTokenNotYetValid},
		{name: "wrong signature", token: forged, now: fixedTime, wantErr: ErrInvalidToken},
		{name: "malformed", token: "not-a-jwt", now: fixedTime, wantErr: ErrInvalidToken},
		{name: "missing", token: "", now: fixedTime, wantErr: ErrMissingToken},
		{name: "missing scope", token: unscoped, now: fixedTime, wantErr: ErrInsufficientScope},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := fixedService(t, testSecret, tc.now)
			claims, err := svc.ValidateToken(context.Background(), tc.token)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ops", claims.Subject)
		})
	}
}
