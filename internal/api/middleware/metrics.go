// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olmapi/olmapi/internal/metrics"
)

// Metrics creates a middleware that records per-request Prometheus metrics:
// count, duration, in-flight gauge and response size. The collectors live in
// the metrics package; registering them here too would collide on the
// default registry.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			metrics.IncHTTPInFlight()
			defer metrics.DecHTTPInFlight()

			// Wrap the response writer to capture status and size while
			// preserving streaming interfaces.
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// Label by route pattern, not raw path, to bound cardinality.
			path := r.URL.Path
			if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
				if pattern := routeCtx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			metrics.RecordHTTPRequest(r.Method, path, ww.Status(), time.Since(start).Seconds())
			if written := ww.BytesWritten(); written > 0 {
				metrics.RecordHTTPResponseSize(r.Method, path, float64(written))
			}
		})
	}
}
