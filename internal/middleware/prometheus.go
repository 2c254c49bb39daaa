package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cyberkittens/cyberkittens-go/internal/metrics"
)

// unmatchedRoute labels requests that never reached a route: 404s, 405s and
// requests rejected by middleware before dispatch.
const unmatchedRoute = "unmatched"

// Prometheus records request duration and count per route.
// Only chi route patterns are used as labels so clients cannot mint new series.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrap := wrapWriter(w)
		next.ServeHTTP(wrap, r)
		if r.URL.Path == "/metrics" {
			return
		}

		path := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		metrics.RecordRequest(r.Method, path, wrap.status, time.Since(start).Seconds())
	})
}
