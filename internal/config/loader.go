// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence ENV > file > defaults.
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
}

// NewLoader creates a new configuration loader.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Wrapper methods for mechanical consumption tracking

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// Order: parse file (strict) -> apply env -> validate.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge config file: %w", err)
		}
	}

	l.mergeEnvConfig(&cfg)
	WarnUnknownEnvKeys(l.ConsumedEnvKeys)

	// DataDir must be absolute to survive working-directory changes.
	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}
	if cfg.Store.Path == "" && cfg.Store.Backend != "memory" {
		cfg.Store.Path = defaultStorePath(cfg.DataDir, cfg.Store.Backend)
	}

	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// defaultStorePath places backend data under the data directory.
func defaultStorePath(dataDir, backend string) string {
	switch backend {
	case "badger":
		return filepath.Join(dataDir, "namedprops")
	case "sqlite":
		return filepath.Join(dataDir, "namedprops.db")
	default:
		return ""
	}
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&fileCfg); err != nil {
		if err == io.EOF {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

// mergeFileConfig applies file values over the defaults. File durations are
// parsed strictly; a malformed duration fails the load.
func mergeFileConfig(cfg *AppConfig, f *FileConfig) error {
	parseDur := func(field, s string, into *time.Duration) error {
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q: %w", field, s, err)
		}
		*into = d
		return nil
	}

	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.Listen != "" {
		cfg.Listen = f.Listen
	}
	if f.MetricsListen != "" {
		cfg.MetricsListen = f.MetricsListen
	}
	if f.APIToken != "" {
		cfg.APIToken = f.APIToken
	}
	if err := parseDur("readTimeout", f.ReadTimeout, &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := parseDur("writeTimeout", f.WriteTimeout, &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := parseDur("shutdownTimeout", f.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if f.HTTPRateLimit != nil {
		cfg.HTTPRateLimit = *f.HTTPRateLimit
	}

	if f.Store != nil {
		if f.Store.Backend != "" {
			cfg.Store.Backend = f.Store.Backend
		}
		if f.Store.Path != "" {
			cfg.Store.Path = f.Store.Path
		}
		if f.Store.Quota != nil {
			cfg.Store.Quota = *f.Store.Quota
		}
	}

	if f.Cache != nil {
		if f.Cache.Backend != "" {
			cfg.Cache.Backend = f.Cache.Backend
		}
		if err := parseDur("cache.ttl", f.Cache.TTL, &cfg.Cache.TTL); err != nil {
			return err
		}
		if err := parseDur("cache.cleanupInterval", f.Cache.CleanupInterval, &cfg.Cache.CleanupInterval); err != nil {
			return err
		}
		if f.Cache.RedisAddr != "" {
			cfg.Cache.RedisAddr = f.Cache.RedisAddr
		}
		if f.Cache.RedisPassword != "" {
			cfg.Cache.RedisPassword = f.Cache.RedisPassword
		}
		if f.Cache.RedisDB != nil {
			cfg.Cache.RedisDB = *f.Cache.RedisDB
		}
	}

	if f.Rate != nil {
		if f.Rate.CreateRate != nil {
			cfg.Rate.CreateRate = *f.Rate.CreateRate
		}
		if f.Rate.CreateBurst != nil {
			cfg.Rate.CreateBurst = *f.Rate.CreateBurst
		}
	}

	if f.Export != nil {
		if f.Export.Path != "" {
			cfg.Export.Path = f.Export.Path
		}
		if err := parseDur("export.interval", f.Export.Interval, &cfg.Export.Interval); err != nil {
			return err
		}
	}

	if f.Profile != nil {
		if f.Profile.Name != "" {
			cfg.Profile.Name = f.Profile.Name
		}
		if len(f.Profile.Stores) > 0 {
			stores := make([]ProfileStore, 0, len(f.Profile.Stores))
			for _, s := range f.Profile.Stores {
				entry := ProfileStore{Name: s.Name}
				if s.Default != nil {
					entry.Default = *s.Default
				}
				stores = append(stores, entry)
			}
			cfg.Profile.Stores = stores
		}
	}

	if f.Telemetry != nil {
		if f.Telemetry.Enabled != nil {
			cfg.Telemetry.Enabled = *f.Telemetry.Enabled
		}
		if f.Telemetry.Endpoint != "" {
			cfg.Telemetry.Endpoint = f.Telemetry.Endpoint
		}
		if f.Telemetry.Protocol != "" {
			cfg.Telemetry.Protocol = f.Telemetry.Protocol
		}
		if f.Telemetry.SampleRatio != nil {
			cfg.Telemetry.SampleRatio = *f.Telemetry.SampleRatio
		}
		if f.Telemetry.Insecure != nil {
			cfg.Telemetry.Insecure = *f.Telemetry.Insecure
		}
	}

	return nil
}

// mergeEnvConfig applies environment overrides, the highest precedence layer.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.DataDir = l.envString("OLMAPI_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = l.envString("OLMAPI_LOG_LEVEL", cfg.LogLevel)

	cfg.Listen = l.envString("OLMAPI_LISTEN", cfg.Listen)
	cfg.MetricsListen = l.envString("OLMAPI_METRICS_LISTEN", cfg.MetricsListen)
	cfg.APIToken = l.envString("OLMAPI_API_TOKEN", cfg.APIToken)
	cfg.ReadTimeout = l.envDuration("OLMAPI_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = l.envDuration("OLMAPI_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.ShutdownTimeout = l.envDuration("OLMAPI_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.HTTPRateLimit = l.envInt("OLMAPI_HTTP_RATE_LIMIT", cfg.HTTPRateLimit)

	cfg.Store.Backend = l.envString("OLMAPI_STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Path = l.envString("OLMAPI_STORE_PATH", cfg.Store.Path)
	cfg.Store.Quota = l.envInt("OLMAPI_NAMED_PROP_QUOTA", cfg.Store.Quota)

	cfg.Cache.Backend = l.envString("OLMAPI_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTL = l.envDuration("OLMAPI_CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.CleanupInterval = l.envDuration("OLMAPI_CACHE_CLEANUP_INTERVAL", cfg.Cache.CleanupInterval)
	cfg.Cache.RedisAddr = l.envString("OLMAPI_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = l.envString("OLMAPI_REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = l.envInt("OLMAPI_REDIS_DB", cfg.Cache.RedisDB)

	cfg.Rate.CreateRate = l.envFloat("OLMAPI_CREATE_RATE", cfg.Rate.CreateRate)
	cfg.Rate.CreateBurst = l.envInt("OLMAPI_CREATE_BURST", cfg.Rate.CreateBurst)

	cfg.Export.Path = l.envString("OLMAPI_EXPORT_PATH", cfg.Export.Path)
	cfg.Export.Interval = l.envDuration("OLMAPI_EXPORT_INTERVAL", cfg.Export.Interval)

	cfg.Profile.Name = l.envString("OLMAPI_PROFILE", cfg.Profile.Name)

	cfg.Telemetry.Enabled = l.envBool("OLMAPI_OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Endpoint = l.envString("OLMAPI_OTEL_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Protocol = l.envString("OLMAPI_OTEL_PROTOCOL", cfg.Telemetry.Protocol)
	cfg.Telemetry.SampleRatio = l.envFloat("OLMAPI_OTEL_SAMPLE_RATIO", cfg.Telemetry.SampleRatio)
	cfg.Telemetry.Insecure = l.envBool("OLMAPI_OTEL_INSECURE", cfg.Telemetry.Insecure)
}
