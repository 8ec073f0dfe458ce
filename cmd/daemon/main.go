// SPDX-License-Identifier: MIT

// Command daemon runs the olmapi registry service: the named-property HTTP
// API, the Prometheus metrics server and the periodic snapshot exporter.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olmapi/olmapi/internal/api"
	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/daemon"
	"github.com/olmapi/olmapi/internal/health"
	xlog "github.com/olmapi/olmapi/internal/log"
	"github.com/olmapi/olmapi/internal/session"
	"github.com/olmapi/olmapi/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		info := version.Info()
		fmt.Printf("%s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
		os.Exit(0)
	}

	// Safe defaults until the real configuration is loaded; the level is
	// adjusted afterwards via SetLevel.
	xlog.Configure(xlog.Config{Level: "info", Service: "olmapi"})
	logger := xlog.WithComponent("daemon")

	ctx := daemon.WaitForShutdown()

	effectivePath := resolveConfigPath(*configPath)

	// Precedence: ENV > file > defaults.
	loader := config.NewLoader(effectivePath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", effectivePath).
			Msg("failed to load configuration")
	}

	if err := xlog.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn().
			Err(err).
			Str("level", cfg.LogLevel).
			Msg("invalid log level, keeping info")
	}

	switch {
	case strings.TrimSpace(*configPath) != "":
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", effectivePath).
			Msg("loaded configuration from file")
	case effectivePath != "":
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file(auto)").
			Str("path", effectivePath).
			Msg("loaded configuration from file")
	default:
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "startup.check_failed").
			Msg("startup checks failed, verify configuration and permissions")
	}

	rt, err := daemon.NewRuntime(ctx, cfg)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "runtime.build_failed").
			Msg("failed to build runtime")
	}

	// The service session stays logged on for the process lifetime; the
	// stores table the API pages over is built from it.
	rt.Sessions.Initialize(session.InitFlags{NoCoInit: true})
	sess, err := rt.Sessions.Logon(buildProfile(cfg.Profile), session.LogonFlags{
		Unicode:    true,
		UseDefault: true,
		NoMail:     true,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "session.logon_failed").
			Str("profile", cfg.Profile.Name).
			Msg("service logon failed")
	}

	srv, err := api.New(api.Deps{
		Config:   cfg,
		Registry: rt.Registry,
		Session:  sess,
		Health:   rt.Health,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "api.build_failed").
			Msg("failed to build API server")
	}

	info := version.Info()
	logger.Info().
		Str("event", "startup").
		Str("version", info.Version).
		Str("commit", info.Commit).
		Str("build_date", info.Date).
		Str("addr", cfg.Listen).
		Msg("starting olmapi")

	logger.Info().Msgf("→ Store: %s%s", cfg.Store.Backend, storePathSuffix(cfg.Store))
	logger.Info().Msgf("→ Cache: %s (TTL %s)", cfg.Cache.Backend, cfg.Cache.TTL)
	logger.Info().Msgf("→ Profile: %q (%d stores)", cfg.Profile.Name, len(cfg.Profile.Stores))
	if cfg.APIToken != "" {
		logger.Info().Msg("→ API token: configured")
	} else {
		logger.Warn().
			Str("security", "weak").
			Msg("→ API token: NOT configured (mutating endpoints open). Set OLMAPI_API_TOKEN.")
	}
	if cfg.Telemetry.Enabled {
		logger.Info().Msgf("→ Tracing: OTLP/%s to %s (ratio %.2f)",
			cfg.Telemetry.Protocol, cfg.Telemetry.Endpoint, cfg.Telemetry.SampleRatio)
	}
	if cfg.Export.Path != "" && cfg.Export.Interval > 0 {
		logger.Info().Msgf("→ Snapshot export: %s every %s", cfg.Export.Path, cfg.Export.Interval)
	}
	logger.Info().Msgf("→ Metrics: %s", cfg.MetricsListen)
	logger.Info().Msgf("→ Data dir: %s", cfg.DataDir)

	// Hot reload: watch the config file and accept SIGHUP.
	holderPath := effectivePath
	if holderPath == "" {
		holderPath = filepath.Join(cfg.DataDir, "config.yaml")
	}
	cfgHolder := config.NewHolder(cfg, config.NewLoader(holderPath, version.Version), holderPath)

	mgr, err := daemon.NewManager(cfg.Server(), daemon.Deps{
		Logger:         logger,
		Config:         cfg,
		APIHandler:     srv.Handler(),
		MetricsHandler: promhttp.Handler(),
		Store:          rt.Store,
		Cache:          rt.Cache,
		Telemetry:      rt.Telemetry,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "manager.creation_failed").
			Msg("failed to create daemon manager")
	}

	mgr.RegisterShutdownHook("session_logoff", func(_ context.Context) error {
		sess.Logoff()
		rt.Sessions.Uninitialize()
		return nil
	})

	app := daemon.NewApp(logger, mgr, cfgHolder, srv)
	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "manager.failed").
			Msg("daemon app failed")
	}

	logger.Info().Msg("server exiting")
}

// resolveConfigPath prefers the explicit --config value and otherwise picks
// up ${OLMAPI_DATA_DIR}/config.yaml when that file exists.
func resolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	dataDir := strings.TrimSpace(os.Getenv("OLMAPI_DATA_DIR"))
	if dataDir == "" {
		dataDir = "./data"
	}
	autoPath := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(autoPath); err == nil {
		return autoPath
	}
	return ""
}

// buildProfile maps the configured profile onto a logon profile. Entry IDs
// are derived from the profile and store names, so they are stable across
// restarts.
func buildProfile(cfg config.ProfileConfig) *session.Profile {
	stores := make([]session.StoreInfo, 0, len(cfg.Stores))
	for _, ps := range cfg.Stores {
		stores = append(stores, session.StoreInfo{
			DisplayName: ps.Name,
			Default:     ps.Default,
		})
	}
	return session.NewProfile(cfg.Name, stores...)
}

// storePathSuffix renders the store path for the boot summary.
func storePathSuffix(cfg config.StoreConfig) string {
	if cfg.Backend == "memory" || cfg.Path == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", cfg.Path)
}
