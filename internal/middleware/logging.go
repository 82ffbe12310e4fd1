package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Paths too noisy to log per-request.
var quietPaths = []string{
	"/health",
	"/docs",
}

// RequestLogging creates middleware that logs one line per request with
// method, path, status and duration.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isQuietPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			capture := newResponseCapture(w)

			next.ServeHTTP(capture, r)

			logger.Info("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", capture.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func isQuietPath(path string) bool {
	for _, quiet := range quietPaths {
		if strings.HasPrefix(path, quiet) {
			return true
		}
	}
	return false
}
