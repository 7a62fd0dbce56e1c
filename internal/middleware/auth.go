package middleware

import (
	"net/http"
	"strings"

	"github.com/dukerupert/sif/internal/domain"
)

// SessionSource exposes the active session. *auth.Manager satisfies it.
type SessionSource interface {
	Token() string
	CurrentUser() *domain.User
}

// WithUser attaches the signed-in user to the request context when the
// request carries the active session's bearer token. It never rejects the
// request; unauthenticated requests simply continue without a user.
func WithUser(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" || token != sessions.Token() {
				next.ServeHTTP(w, r)
				return
			}

			user := sessions.CurrentUser()
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that have no authenticated user with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IsAuthenticated(r.Context()) {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
