// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/olmapi/olmapi/internal/log"
)

// EnvPrefix is the prefix of all environment variables the service reads.
const EnvPrefix = "OLMAPI_"

func envLogger() zerolog.Logger {
	return log.WithComponent("config")
}

func logDefault(logger zerolog.Logger, key string, def interface{}) {
	logger.Debug().
		Str("key", key).
		Interface("default", def).
		Str("source", "default").
		Msg("using default value")
}

// ParseString reads a string from an environment variable or returns the
// default. Values of sensitive keys (token, password) are never logged.
func ParseString(key, defaultValue string) string {
	logger := envLogger()
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		logDefault(logger, key, defaultValue)
		return defaultValue
	}

	lowerKey := strings.ToLower(key)
	if strings.Contains(lowerKey, "token") || strings.Contains(lowerKey, "password") {
		logger.Debug().
			Str("key", key).
			Str("source", "environment").
			Bool("sensitive", true).
			Msg("using environment variable")
	} else {
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
	}
	return value
}

// ParseInt reads an integer from an environment variable or returns the
// default. Invalid values fall back to the default with a warning.
func ParseInt(key string, defaultValue int) int {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logDefault(logger, key, defaultValue)
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Int("value", i).
		Str("source", "environment").
		Msg("using environment variable")
	return i
}

// ParseFloat reads a float64 from an environment variable or returns the default.
func ParseFloat(key string, defaultValue float64) float64 {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logDefault(logger, key, defaultValue)
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Float64("default", defaultValue).
			Msg("invalid float in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Float64("value", f).
		Str("source", "environment").
		Msg("using environment variable")
	return f
}

// ParseDuration reads a duration in Go syntax (e.g. "5s") from an environment
// variable or returns the default.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logDefault(logger, key, defaultValue)
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Dur("default", defaultValue).
			Msg("invalid duration in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Dur("value", d).
		Str("source", "environment").
		Msg("using environment variable")
	return d
}

// ParseBool reads a boolean from an environment variable or returns the
// default. Accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func ParseBool(key string, defaultValue bool) bool {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logDefault(logger, key, defaultValue)
		return defaultValue
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		logger.Debug().
			Str("key", key).
			Bool("value", true).
			Str("source", "environment").
			Msg("using environment variable")
		return true
	case "false", "0", "no":
		logger.Debug().
			Str("key", key).
			Bool("value", false).
			Str("source", "environment").
			Msg("using environment variable")
		return false
	default:
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Bool("default", defaultValue).
			Msg("invalid boolean in environment variable, using default")
		return defaultValue
	}
}

// WarnUnknownEnvKeys logs a warning for every OLMAPI_* variable in the
// process environment that the loader did not consume. Typos in variable
// names would otherwise silently do nothing.
func WarnUnknownEnvKeys(consumed map[string]struct{}) {
	logger := envLogger()
	for _, kv := range os.Environ() {
		key, _, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if _, ok := consumed[key]; !ok {
			logger.Warn().
				Str("key", key).
				Msg("unknown environment variable with OLMAPI_ prefix, ignoring")
		}
	}
}
