// SPDX-License-Identifier: MIT

// Package log configures the process-wide zerolog logger and provides
// helpers for carrying correlation identifiers through contexts.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/olmapi/olmapi/internal/version"
)

// Config controls the one-time logger setup.
type Config struct {
	Level   string    // initial level; LOG_LEVEL or "info" when empty
	Output  io.Writer // destination; os.Stdout when nil
	Service string    // service field; LOG_SERVICE or "olmapi" when empty
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure builds the base logger. Only the first call takes effect.
func Configure(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(resolveLevel(cfg.Level))
		zerolog.TimeFieldFormat = time.RFC3339

		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}

		base = zerolog.New(out).With().
			Timestamp().
			Str("service", resolveService(cfg.Service)).
			Str("version", version.Version).
			Logger()
	})
}

// SetLevel adjusts the global log level at runtime, for example after a
// config reload. An unparseable level leaves the current level in place.
func SetLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// resolveLevel tries the explicit level, then LOG_LEVEL, then falls back to
// info. Unparseable candidates are skipped rather than failing boot.
func resolveLevel(explicit string) zerolog.Level {
	for _, candidate := range []string{explicit, os.Getenv("LOG_LEVEL")} {
		if candidate == "" {
			continue
		}
		if lvl, err := zerolog.ParseLevel(candidate); err == nil {
			return lvl
		}
	}
	return zerolog.InfoLevel
}

func resolveService(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("LOG_SERVICE"); env != "" {
		return env
	}
	return "olmapi"
}

func logger() zerolog.Logger {
	Configure(Config{})
	return base
}

// Base returns the configured base logger.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with a component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str(FieldComponent, component).Logger()
}
