// Package middleware provides HTTP middleware components for the card API.
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benx421/bankcards/internal/models"
)

const idempotencyKeyHeader = "Idempotency-Key"

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key string, userID int64, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b) // Capture for caching
	return rc.ResponseWriter.Write(b)
}

// Idempotency creates middleware that handles idempotent request caching.
// Money-moving POST endpoints replay the stored response when the same
// Idempotency-Key is presented again by the same user. It must run after
// Authenticate: cached entries are scoped to the principal, and a request
// with no principal is never served from nor written to the cache.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get(idempotencyKeyHeader)
			if idempotencyKey == "" {
				// Not mandatory; the request simply is not replayable
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			principal, ok := PrincipalFrom(ctx)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			requestPath := normalizeRequestPath(r.URL.Path)

			cached, err := repo.Get(ctx, idempotencyKey, principal.UserID, requestPath)
			if err != nil {
				logger.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				logger.Debug("returning cached idempotent response",
					"key", idempotencyKey,
					"path", requestPath,
					"status", cached.ResponseStatus,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotent-Replayed", "true")
				w.WriteHeader(cached.ResponseStatus)
				//nolint:errcheck // Best effort response writing
				w.Write([]byte(cached.ResponseBody))
				return
			}

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if shouldCacheResponse(capture.statusCode) {
				idemKey := &models.IdempotencyKey{
					Key:            idempotencyKey,
					UserID:         principal.UserID,
					RequestPath:    requestPath,
					ResponseStatus: capture.statusCode,
					ResponseBody:   capture.body.String(),
					CreatedAt:      time.Now(),
				}

				if err := repo.Store(ctx, idemKey); err != nil {
					logger.Error("failed to store idempotency key",
						"error", err,
						"key", idempotencyKey,
					)
				}
			}
		})
	}
}

// requiresIdempotency reports whether the request moves money or issues
// a card. Only mutating operations (POST) need idempotency.
func requiresIdempotency(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	path := normalizeRequestPath(r.URL.Path)
	switch {
	case path == "/api/v1/cards":
		return true
	case path == "/api/v1/transfers":
		return true
	case strings.HasPrefix(path, "/api/v1/transfers/") && strings.HasSuffix(path, "/cancel"):
		return true
	}
	return false
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
