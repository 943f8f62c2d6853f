package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dormscout/dormscout/internal/metrics"
)

// Metrics records Prometheus request counts and latency.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(wrapped.statusCode),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses path parameters so metric cardinality stays
// bounded.
func normalizePath(path string) string {
	patterns := []struct{ prefix, normalized string }{
		{"/api/dorms/", "/api/dorms/:id"},
		{"/api/schools/", "/api/schools/:id"},
		{"/api/buildings/", "/api/buildings/:id"},
		{"/api/rooms/", "/api/rooms/:id"},
		{"/api/posts/", "/api/posts/:id"},
		{"/api/photos/", "/api/photos/:id"},
		{"/api/auth/verify-email/", "/api/auth/verify-email/:token"},
		{"/api/legal/", "/api/legal/:slug"},
	}
	for _, p := range patterns {
		if strings.HasPrefix(path, p.prefix) && len(path) > len(p.prefix) {
			return p.normalized
		}
	}
	return path
}
