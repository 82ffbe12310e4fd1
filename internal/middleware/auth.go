package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/benx421/bankcards/internal/auth"
)

type contextKey string

const principalContextKey contextKey = "principal"

type authErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Authenticate creates middleware that verifies the bearer token and
// stores the resolved principal in the request context. Requests
// without a valid token are rejected with 401.
func Authenticate(tokens *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				logger.Debug("token verification failed", "error", err)
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin rejects requests whose principal does not hold the admin
// role. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok || !principal.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithPrincipal returns a context carrying the principal.
func ContextWithPrincipal(ctx context.Context, principal auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFrom extracts the authenticated principal from the context.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(auth.Principal)
	return principal, ok
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(authErrorResponse{Error: code, Message: message})
}
