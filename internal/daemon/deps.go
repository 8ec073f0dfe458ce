// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/olmapi/olmapi/internal/cache"
	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/namedprop"
	"github.com/olmapi/olmapi/internal/telemetry"
)

// Deps contains dependencies required by the daemon Manager.
// This allows for clean dependency injection and easier testing.
type Deps struct {
	// Logger is the structured logger for the daemon
	Logger zerolog.Logger

	// Config is the resolved application configuration
	Config config.AppConfig

	// APIHandler is the HTTP handler for the API server
	APIHandler http.Handler

	// MetricsHandler serves Prometheus metrics (nil disables the metrics server)
	MetricsHandler http.Handler

	// Store is the named-property mapping store. It is closed during
	// shutdown and feeds the snapshot exporter when one is configured.
	Store namedprop.Store

	// Cache is the resolution cache, closed during shutdown.
	Cache cache.Cache

	// Telemetry is the trace provider, flushed and stopped during shutdown.
	Telemetry *telemetry.Provider
}

// Validate checks if the dependencies are valid.
func (d *Deps) Validate() error {
	if d.Logger.GetLevel() == zerolog.Disabled {
		return ErrMissingLogger
	}
	if d.APIHandler == nil {
		return ErrMissingAPIHandler
	}
	if d.Config.Export.Path != "" && d.Config.Export.Interval > 0 && d.Store == nil {
		return ErrMissingStore
	}
	return nil
}
