// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/log"
	"github.com/olmapi/olmapi/internal/validate"
)

// PerformStartupChecks validates the environment and dependencies before starting the server.
func PerformStartupChecks(_ context.Context, cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("Running pre-flight startup checks...")

	if err := checkDataDir(logger, cfg.DataDir); err != nil {
		return fmt.Errorf("data directory check failed: %w", err)
	}

	if err := checkListenAddr(logger, "API", cfg.Listen); err != nil {
		return err
	}
	if cfg.MetricsListen != "" {
		if err := checkListenAddr(logger, "metrics", cfg.MetricsListen); err != nil {
			return err
		}
	}

	if err := checkStoreBackend(logger, cfg); err != nil {
		return fmt.Errorf("store backend check failed: %w", err)
	}

	logger.Info().Msg("✅ All startup checks passed")
	return nil
}

func checkDataDir(logger zerolog.Logger, path string) error {
	// The loader already created the directory, so by now it must exist.
	v := validate.New()
	v.WritableDirectory("DataDir", path, true)
	if err := v.Err(); err != nil {
		return err
	}

	logger.Info().Str("path", path).Msg("✓ Data directory is writable")
	return nil
}

func checkListenAddr(logger zerolog.Logger, label, addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid %s listen address %q: %w", label, addr, err)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum <= 0 || portNum > 65535 {
		return fmt.Errorf("invalid %s listen port %q in %q", label, port, addr)
	}
	logger.Info().Str("addr", addr).Msgf("✓ %s listen address is valid", label)
	return nil
}

func checkStoreBackend(logger zerolog.Logger, cfg config.AppConfig) error {
	switch cfg.Store.Backend {
	case "memory":
		logger.Warn().
			Str("store_backend", cfg.Store.Backend).
			Msg("named-property mappings are in-memory; allocations are lost on restart")

	case "badger":
		if err := os.MkdirAll(cfg.Store.Path, 0750); err != nil {
			return fmt.Errorf("failed to ensure badger path %q: %w", cfg.Store.Path, err)
		}
		logger.Info().Str("path", cfg.Store.Path).Msg("✓ Badger store path available")

	case "sqlite":
		dir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to ensure sqlite directory %q: %w", dir, err)
		}
		logger.Info().Str("path", cfg.Store.Path).Msg("✓ SQLite store path available")
	}

	tempDir := filepath.Clean(os.TempDir())
	dataDir := filepath.Clean(cfg.DataDir)
	if tempDir != "." && (dataDir == tempDir || strings.HasPrefix(dataDir, tempDir+string(filepath.Separator))) {
		logger.Warn().
			Str("data_dir", cfg.DataDir).
			Msg("data directory is under temp; mappings may be lost on reboot")
	}

	return nil
}
