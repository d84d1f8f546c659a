package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rrens/careops/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	s.keys = append(s.keys, key)
	return s.allowed, 4, time.Unix(0, 0), s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
		wantHeader bool
	}{
		{"allowed", &stubLimiter{allowed: true}, http.StatusOK, true},
		{"throttled", &stubLimiter{allowed: false}, http.StatusTooManyRequests, true},
		{"limiter down fails open", &stubLimiter{err: errors.New("connection refused")}, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRateLimitMiddleware(tt.limiter).Limit(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/public/contact", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, []string{"203.0.113.7"}, tt.limiter.keys)
			if tt.wantHeader {
				assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
			} else {
				assert.Empty(t, rec.Header().Get("X-RateLimit-Remaining"))
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("middleware-test-secret", time.Hour)
	token, err := tokens.Generate("ws-1", "glow-clinic")
	require.NoError(t, err)

	var seen string
	h := NewAuthMiddleware(tokens).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetWorkspaceID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ws-1", seen)
			} else {
				assert.Empty(t, seen)
			}
		})
	}
}

func TestGetWorkspaceID(t *testing.T) {
	_, ok := GetWorkspaceID(context.Background())
	assert.False(t, ok)

	id, ok := GetWorkspaceID(WithWorkspaceID(context.Background(), "ws-9"))
	assert.True(t, ok)
	assert.Equal(t, "ws-9", id)
}
