// SPDX-License-Identifier: MIT

// Package middleware assembles the HTTP ingress chain for the olmapi API
// server.
package middleware

import (
	"github.com/go-chi/chi/v5"

	xlog "github.com/olmapi/olmapi/internal/log"
)

// Options tunes the parts of the ingress chain that vary by deployment. The
// fixed parts (panic recovery, request IDs, strict CORS, security headers,
// request metrics, request logging) are always on.
type Options struct {
	// TracingService names the service on OpenTelemetry spans. Empty
	// disables tracing.
	TracingService string

	// RateLimitPerMinute caps requests per client IP. Zero disables the
	// limiter.
	RateLimitPerMinute int
}

// NewRouter builds a chi router with the full ingress chain applied. The
// recoverer sits outermost so a panic anywhere below still yields a 500; the
// rate limiter sits innermost so rejected requests are still metered and
// logged.
func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(Recoverer)
	r.Use(RequestID)
	r.Use(CORS(nil))
	r.Use(SecurityHeaders)
	r.Use(Metrics())
	if opts.TracingService != "" {
		r.Use(Tracing(opts.TracingService))
	}
	r.Use(xlog.Middleware())
	if opts.RateLimitPerMinute > 0 {
		r.Use(APIRateLimit(opts.RateLimitPerMinute))
	}
	return r
}
