package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/security"
)

type contextKey string

const (
	WorkspaceIDKey   contextKey = "workspaceID"
	WorkspaceSlugKey contextKey = "workspaceSlug"
)

// AuthMiddleware validates workspace access tokens
type AuthMiddleware struct {
	tokens *security.TokenManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token and scopes the request to its workspace
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), WorkspaceIDKey, claims.WorkspaceID)
		ctx = context.WithValue(ctx, WorkspaceSlugKey, claims.Slug)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWorkspaceID gets the authenticated workspace ID from context
func GetWorkspaceID(ctx context.Context) (string, bool) {
	workspaceID, ok := ctx.Value(WorkspaceIDKey).(string)
	return workspaceID, ok && workspaceID != ""
}

// WithWorkspaceID returns a context scoped to a workspace
func WithWorkspaceID(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, WorkspaceIDKey, workspaceID)
}
