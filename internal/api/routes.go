// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olmapi/olmapi/internal/api/middleware"
	"github.com/olmapi/olmapi/internal/version"
)

func (s *Server) newRouter() http.Handler {
	cfg := s.currentConfig()

	tracingService := ""
	if cfg.Telemetry.Enabled {
		tracingService = "olmapi"
	}

	r := middleware.NewRouter(middleware.Options{
		TracingService:     tracingService,
		RateLimitPerMinute: cfg.HTTPRateLimit,
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/livez", s.handleLive)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/tags", s.handleListTags)
		r.Get("/tags/{tag}", s.handleDescribeTag)
		r.Get("/stores", s.handleStores)

		// Name resolution can allocate mappings, so the whole subtree sits
		// behind the token when one is configured.
		r.Route("/names", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/resolve", s.handleResolveNames)
			r.Post("/reverse", s.handleReverseNames)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.health.ServeHealth(w, r)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.health.ServeReady(w, r)
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}
