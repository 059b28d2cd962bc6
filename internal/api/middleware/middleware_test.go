package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withoutfanfare/developer-test/internal/api/shared"
	"github.com/withoutfanfare/developer-test/internal/mocks"
	"github.com/withoutfanfare/developer-test/internal/platform/logger"
	"github.com/withoutfanfare/developer-test/internal/service/auth"
	"github.com/withoutfanfare/developer-test/internal/testutils"
)

func okHandler(t *testing.T, check func(r *http.Request)) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		authHeader      string
		validateErr     error
		claims          *auth.Claims
		expectedStatus  int
		expectedMessage string
	}{
		{name: "valid token", authHeader: "Bearer good", claims: &auth.Claims{Subject: "ops"}, expectedStatus: http.StatusOK},
		{name: "lowercase scheme", authHeader: "bearer good", claims: &auth.Claims{Subject: "ops"}, expectedStatus: http.StatusOK},
		{name: "missing header", authHeader: "", expectedStatus: http.StatusUnauthorized, expectedMessage: "Authorization header required"},
		{name: "wrong scheme", authHeader: "Basic abc", expectedStatus: http.StatusUnauthorized, expectedMessage: "Invalid authorization format"},
		{name: "no token", authHeader: "Bearer", expectedStatus: http.StatusUnauthorized, expectedMessage: "Invalid authorization format"},
		{name: "expired", authHeader: "Bearer old", validateErr: auth.ErrExpiredToken, expectedStatus: http.StatusUnauthorized, expectedMessage: "Token expired"},
		{name: "invalid", authHeader: "Bearer bad", validateErr: auth.ErrInvalidToken, expectedStatus: http.StatusUnauthorized, expectedMessage: "Invalid token"},
		{name: "wrong scope", authHeader: "Bearer other", validateErr: auth.ErrInsufficientScope, expectedStatus: http.StatusUnauthorized, expectedMessage: "Token does not grant report access"},
		{name: "unexpected error", authHeader: "Bearer x", validateErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMessage: "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens := &mocks.MockTokenService{Claims: tc.claims, Err: tc.validateErr}
			var subject string
			h := NewAuthMiddleware(tokens).Authenticate(okHandler(t, func(r *http.Request) {
				subject, _ = shared.GetSubject(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, "ops", subject)
				return
			}
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedMessage, body.Error)
		})
	}
}

func TestTrace(t *testing.T) {
	t.Parallel()
	log, handler := testutils.NewTestLogger()

	var ctxTraceID string
	h := Trace(log)(okHandler(t, func(r *http.Request) {
		ctxTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, ctxTraceID)
	assert.Equal(t, ctxTraceID, rec.Header().Get(TraceHeader))
	entries := handler.EntriesWithMessage("inside handler")
	require.Len(t, entries, 1)
	assert.Equal(t, ctxTraceID, entries[0]["trace_id"])
}

func TestTrace_PropagatesIncomingID(t *testing.T) {
	t.Parallel()
	incoming := "0b7c3f7e-0a4e-4e0c-8f55-7d8a1d2c9e10"

	h := Trace(nil)(okHandler(t, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, incoming)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(TraceHeader))
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2)
	limiter.now = func() time.Time { return now }
	h := limiter.Limit(okHandler(t, nil))

	call := func(ctx context.Context, remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	bg := context.Background()

	assert.Equal(t, http.StatusOK, call(bg, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call(bg, "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call(bg, "10.0.0.1:1002"), "same host, different port")
	assert.Equal(t, http.StatusOK, call(bg, "10.0.0.2:1000"), "other clients keep their own budget")

	subjectCtx := shared.WithSubject(bg, "ops")
	assert.Equal(t, http.StatusOK, call(subjectCtx, "10.0.0.1:1003"), "authenticated clients are keyed by subject")

	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, call(bg, "10.0.0.1:1004"), "budget refills over time")
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	t.Parallel()
	limiter := NewRateLimiter(1)
	h := limiter.Limit(okHandler(t, nil))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "61", second.Header().Get("Retry-After"))
}
