// SPDX-License-Identifier: MIT

// Package api serves the olmapi HTTP surface: property-tag introspection,
// named-property resolution and the session's message store table, plus the
// health, version and metrics endpoints.
package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/health"
	"github.com/olmapi/olmapi/internal/log"
	"github.com/olmapi/olmapi/internal/namedprop"
	"github.com/olmapi/olmapi/internal/session"
	"github.com/olmapi/olmapi/internal/table"
)

// Deps carries everything the server needs. All fields are required.
type Deps struct {
	Config   config.AppConfig
	Registry *namedprop.Registry
	Session  *session.Session
	Health   *health.Manager
}

// Server is the olmapi HTTP API server. The middleware stack and routes are
// fixed at construction; the config can be hot-swapped with ApplyConfig, which
// takes effect for the per-request settings (API token). Listen addresses and
// rate limits need a restart.
type Server struct {
	mu       sync.RWMutex
	cfg      config.AppConfig
	registry *namedprop.Registry
	session  *session.Session
	health   *health.Manager

	// stores is the session's message store table, built once at
	// construction. pageMu serializes seek+query pairs so concurrent pagers
	// cannot interleave on the shared cursor.
	stores *table.Table
	pageMu sync.Mutex

	router http.Handler
}

// New builds the server and its router.
func New(deps Deps) (*Server, error) {
	if deps.Registry == nil {
		return nil, errors.New("api: registry is required")
	}
	if deps.Session == nil {
		return nil, errors.New("api: session is required")
	}
	if deps.Health == nil {
		return nil, errors.New("api: health manager is required")
	}

	stores, err := deps.Session.Stores()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      deps.Config,
		registry: deps.Registry,
		session:  deps.Session,
		health:   deps.Health,
		stores:   stores,
	}
	s.router = s.newRouter()
	return s, nil
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP makes the server mountable directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ApplyConfig swaps the active configuration after a reload. Only the
// request-time settings take effect; structural changes (listen address,
// store backend, rate limit) are logged and ignored until restart.
func (s *Server) ApplyConfig(cfg config.AppConfig) {
	s.mu.Lock()
	old := s.cfg
	s.cfg = cfg
	s.mu.Unlock()

	logger := log.WithComponent("api")
	if old.Listen != cfg.Listen {
		logger.Warn().
			Str("event", "config.restart_required").
			Str("old", old.Listen).
			Str("new", cfg.Listen).
			Msg("listen address change requires a restart")
	}
	if old.APIToken != cfg.APIToken {
		logger.Info().Str("event", "config.token_rotated").Msg("api token updated")
	}
	if old.LogLevel != cfg.LogLevel {
		if err := log.SetLevel(cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("reloaded log level is invalid")
		}
	}
}

// currentConfig returns a consistent snapshot of the live config.
func (s *Server) currentConfig() config.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}
