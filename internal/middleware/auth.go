package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"storygen/internal/domain"
)

// TokenVerifier maps a bearer token to the user ID embedded in it.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

const principalKey contextKey = "principal"

// Auth verifies the Authorization header, loads the referenced user and
// attaches it to the request context as the typed principal. Handlers read it
// back with PrincipalFromContext.
func Auth(verifier TokenVerifier, users domain.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				failJSON(w, http.StatusUnauthorized, "Authorization header not found")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				failJSON(w, http.StatusUnauthorized, "Token not found")
				return
			}
			userID, err := verifier.Verify(parts[1])
			if err != nil {
				failJSON(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			if _, err := uuid.Parse(userID); err != nil {
				failJSON(w, http.StatusBadRequest, "Invalid user ID format")
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				failJSON(w, http.StatusNotFound, "User not found")
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated user attached by Auth, or
// nil when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(principalKey).(*domain.User); ok {
		return u
	}
	return nil
}

// ContextWithPrincipal attaches a user to the context. Exposed for handler
// tests that bypass the middleware.
func ContextWithPrincipal(ctx context.Context, user *domain.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey, user)
}

func failJSON(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "Fail", "message": message})
}
