// SPDX-License-Identifier: MIT

package config

import "time"

// AppConfig is the fully resolved runtime configuration.
type AppConfig struct {
	Version string

	DataDir  string
	LogLevel string

	Listen          string
	MetricsListen   string
	APIToken        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	HTTPRateLimit   int // requests per minute per client, 0 disables

	Store     StoreConfig
	Cache     CacheConfig
	Rate      RateConfig
	Export    ExportConfig
	Profile   ProfileConfig
	Telemetry TelemetryConfig
}

// ServerConfig carries the HTTP server tuning used by the daemon manager.
type ServerConfig struct {
	ListenAddr      string
	MetricsAddr     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
}

// Server derives the daemon server settings from the resolved config.
func (c AppConfig) Server() ServerConfig {
	return ServerConfig{
		ListenAddr:      c.Listen,
		MetricsAddr:     c.MetricsListen,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		IdleTimeout:     120 * time.Second,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

// StoreConfig selects and parameterizes the named-property store backend.
type StoreConfig struct {
	Backend string // "memory", "badger" or "sqlite"
	Path    string // data path, required for badger and sqlite
	Quota   int    // max named-property mappings, 0 means the full ID range
}

// CacheConfig selects the name-to-ID cache backend.
type CacheConfig struct {
	Backend         string // "memory", "redis" or "none"
	TTL             time.Duration
	CleanupInterval time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// RateConfig bounds named-property creation.
type RateConfig struct {
	CreateRate  float64 // creations per second, 0 disables throttling
	CreateBurst int
}

// ExportConfig controls periodic snapshot exports of the mapping table.
type ExportConfig struct {
	Path     string        // target file, empty disables exports
	Interval time.Duration // 0 disables the periodic exporter
}

// ProfileConfig describes the profile presented at logon.
type ProfileConfig struct {
	Name   string
	Stores []ProfileStore
}

// ProfileStore is one message store entry in the profile.
type ProfileStore struct {
	Name    string
	Default bool
}

// TelemetryConfig controls the OpenTelemetry trace exporter.
type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	Protocol    string // "grpc" or "http"
	SampleRatio float64
	Insecure    bool
}

// FileConfig represents the YAML configuration structure.
// Durations are strings in Go duration syntax (e.g. "15m").
type FileConfig struct {
	DataDir  string `yaml:"dataDir,omitempty"`
	LogLevel string `yaml:"logLevel,omitempty"`

	Listen          string `yaml:"listen,omitempty"`
	MetricsListen   string `yaml:"metricsListen,omitempty"`
	APIToken        string `yaml:"apiToken,omitempty"`
	ReadTimeout     string `yaml:"readTimeout,omitempty"`
	WriteTimeout    string `yaml:"writeTimeout,omitempty"`
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty"`
	HTTPRateLimit   *int   `yaml:"httpRateLimit,omitempty"`

	Store     *FileStore     `yaml:"store,omitempty"`
	Cache     *FileCache     `yaml:"cache,omitempty"`
	Rate      *FileRate      `yaml:"rate,omitempty"`
	Export    *FileExport    `yaml:"export,omitempty"`
	Profile   *FileProfile   `yaml:"profile,omitempty"`
	Telemetry *FileTelemetry `yaml:"telemetry,omitempty"`
}

// FileStore is the YAML form of StoreConfig.
type FileStore struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Quota   *int   `yaml:"quota,omitempty"`
}

// FileCache is the YAML form of CacheConfig.
type FileCache struct {
	Backend         string `yaml:"backend,omitempty"`
	TTL             string `yaml:"ttl,omitempty"`
	CleanupInterval string `yaml:"cleanupInterval,omitempty"`
	RedisAddr       string `yaml:"redisAddr,omitempty"`
	RedisPassword   string `yaml:"redisPassword,omitempty"`
	RedisDB         *int   `yaml:"redisDb,omitempty"`
}

// FileRate is the YAML form of RateConfig.
type FileRate struct {
	CreateRate  *float64 `yaml:"createRate,omitempty"`
	CreateBurst *int     `yaml:"createBurst,omitempty"`
}

// FileExport is the YAML form of ExportConfig.
type FileExport struct {
	Path     string `yaml:"path,omitempty"`
	Interval string `yaml:"interval,omitempty"`
}

// FileProfile is the YAML form of ProfileConfig.
type FileProfile struct {
	Name   string             `yaml:"name,omitempty"`
	Stores []FileProfileStore `yaml:"stores,omitempty"`
}

// FileProfileStore is one store entry in the YAML profile.
type FileProfileStore struct {
	Name    string `yaml:"name"`
	Default *bool  `yaml:"default,omitempty"`
}

// FileTelemetry is the YAML form of TelemetryConfig.
type FileTelemetry struct {
	Enabled     *bool    `yaml:"enabled,omitempty"`
	Endpoint    string   `yaml:"endpoint,omitempty"`
	Protocol    string   `yaml:"protocol,omitempty"`
	SampleRatio *float64 `yaml:"sampleRatio,omitempty"`
	Insecure    *bool    `yaml:"insecure,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:  "./data",
		LogLevel: "info",

		Listen:          ":8088",
		MetricsListen:   ":9090",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		HTTPRateLimit:   300,

		Store: StoreConfig{
			Backend: "memory",
		},
		Cache: CacheConfig{
			Backend:         "memory",
			TTL:             15 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Rate: RateConfig{
			CreateRate:  50,
			CreateBurst: 100,
		},
		Profile: ProfileConfig{
			Name: "Default",
			Stores: []ProfileStore{
				{Name: "Personal Folders", Default: true},
			},
		},
		Telemetry: TelemetryConfig{
			Protocol:    "grpc",
			SampleRatio: 0.1,
		},
	}
}
