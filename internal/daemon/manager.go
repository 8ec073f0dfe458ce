// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/olmapi/olmapi/internal/config"
)

// ShutdownHook performs one cleanup step during graceful shutdown. Hooks run
// in reverse registration order, so a hook may rely on everything registered
// before it still being alive.
type ShutdownHook func(ctx context.Context) error

type namedHook struct {
	name string
	hook ShutdownHook
}

// Manager runs the API and metrics servers and owns graceful shutdown of the
// servers, the snapshot exporter and the runtime resources handed to it.
type Manager struct {
	cfg  config.ServerConfig
	deps Deps

	api     *http.Server
	metrics *http.Server

	mu       sync.Mutex
	hooks    []namedHook
	started  bool
	stopping bool

	closeOnce sync.Once

	logger zerolog.Logger
}

// NewManager validates deps and prepares the servers. Nothing listens until
// Start is called.
func NewManager(cfg config.ServerConfig, deps Deps) (*Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	m := &Manager{
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger.With().Str("component", "manager").Logger(),
	}

	m.api = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           deps.APIHandler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout / 2,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	if deps.MetricsHandler != nil && cfg.MetricsAddr != "" {
		m.metrics = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           deps.MetricsHandler,
			ReadHeaderTimeout: cfg.ReadTimeout / 2,
		}
	}

	return m, nil
}

// Start brings up the servers and the exporter, then blocks until ctx is
// cancelled or a server fails. Either way it drains everything through
// Shutdown before returning.
func (m *Manager) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("start context is nil")
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return errors.New("manager already started")
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Info().
		Str("listen", m.cfg.ListenAddr).
		Dur("read_timeout", m.cfg.ReadTimeout).
		Dur("write_timeout", m.cfg.WriteTimeout).
		Dur("shutdown_timeout", m.cfg.ShutdownTimeout).
		Msg("starting daemon manager")

	// Buffered per server so a late failure report never blocks a goroutine
	// after Start has returned.
	failures := make(chan error, 2)

	// Close hooks go in before any listener opens, so runtime resources are
	// released even when startup fails halfway.
	m.registerRuntimeCloseHooks()

	if m.metrics != nil {
		m.serve("metrics", m.metrics, failures)
	}

	if err := m.startExporter(ctx); err != nil {
		return fmt.Errorf("failed to start snapshot exporter: %w", err)
	}

	m.serve("api", m.api, failures)

	var cause error
	select {
	case cause = <-failures:
		m.logger.Error().Err(cause).Msg("server failure, initiating shutdown")
	case <-ctx.Done():
		m.logger.Info().Msg("shutdown signal received")
	}

	// Shutdown gets its own deadline, detached from the parent context which
	// is already cancelled on the signal path.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if err := m.Shutdown(shutdownCtx); err != nil {
		if cause != nil {
			return fmt.Errorf("server error and shutdown failure: %w", errors.Join(cause, err))
		}
		return err
	}
	return cause
}

// serve runs srv in its own goroutine and reports anything other than a
// clean close on errc.
func (m *Manager) serve(name string, srv *http.Server, errc chan<- error) {
	go func() {
		m.logger.Info().
			Str("server", name).
			Str("addr", srv.Addr).
			Msg("server listening")

		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().
				Err(err).
				Str("event", name+".server.failed").
				Msg("server failed")
			errc <- fmt.Errorf("%s server: %w", name, err)
		}
	}()
}

// registerRuntimeCloseHooks registers close hooks for the store, cache and
// trace provider. Hooks run LIFO, so these fire after the exporter hook and
// the final snapshot export still sees an open store.
func (m *Manager) registerRuntimeCloseHooks() {
	m.closeOnce.Do(func() {
		if m.deps.Store != nil {
			m.RegisterShutdownHook("store_close", func(context.Context) error {
				return m.deps.Store.Close()
			})
		}
		if m.deps.Cache != nil {
			m.RegisterShutdownHook("cache_close", func(context.Context) error {
				return m.deps.Cache.Close()
			})
		}
		if m.deps.Telemetry != nil {
			m.RegisterShutdownHook("telemetry_flush", func(ctx context.Context) error {
				return m.deps.Telemetry.Shutdown(ctx)
			})
		}
	})
}

// Shutdown drains the servers and runs the registered hooks in reverse
// order. It is safe to call concurrently; only the first call does the work.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return errors.New("shutdown context is nil")
	}

	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		return nil
	}
	if !m.started {
		m.mu.Unlock()
		return ErrManagerNotStarted
	}
	m.stopping = true
	hooks := m.hooks
	m.mu.Unlock()

	m.logger.Info().Msg("shutting down daemon manager")

	// The deadline survives caller cancellation so in-flight requests still
	// drain during signal-triggered shutdown.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error

	for _, s := range []struct {
		name string
		srv  *http.Server
	}{
		{"api", m.api},
		{"metrics", m.metrics},
	} {
		if s.srv == nil {
			continue
		}
		m.logger.Debug().Str("server", s.name).Msg("draining server")
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown: %w", s.name, err))
		}
	}

	m.logger.Debug().Int("hooks", len(hooks)).Msg("running shutdown hooks")
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		begin := time.Now()
		if err := h.hook(shutdownCtx); err != nil {
			m.logger.Error().
				Err(err).
				Str("hook", h.name).
				Dur("duration", time.Since(begin)).
				Msg("shutdown hook failed")
			errs = append(errs, fmt.Errorf("hook %s: %w", h.name, err))
			continue
		}
		m.logger.Debug().
			Str("hook", h.name).
			Dur("duration", time.Since(begin)).
			Msg("shutdown hook done")
	}

	if len(errs) > 0 {
		m.logger.Error().
			Int("error_count", len(errs)).
			Msg("shutdown completed with errors")
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	m.logger.Info().Msg("daemon manager stopped cleanly")
	return nil
}

// RegisterShutdownHook adds a named cleanup step. Hooks run in reverse
// registration order during Shutdown.
func (m *Manager) RegisterShutdownHook(name string, hook ShutdownHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks = append(m.hooks, namedHook{name: name, hook: hook})
	m.logger.Debug().Str("hook", name).Msg("registered shutdown hook")
}
