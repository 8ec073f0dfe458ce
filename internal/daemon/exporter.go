// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/olmapi/olmapi/internal/namedprop"
)

// startExporter launches the periodic mapping snapshot exporter when one is
// configured. The shutdown hook stops the loop and writes one final snapshot
// so the file on disk matches the store state at exit.
func (m *Manager) startExporter(ctx context.Context) error {
	exportCfg := m.deps.Config.Export
	if exportCfg.Path == "" || exportCfg.Interval <= 0 {
		return nil
	}
	if m.deps.Store == nil {
		return ErrMissingStore
	}

	m.logger.Info().
		Str("path", exportCfg.Path).
		Dur("interval", exportCfg.Interval).
		Msg("starting snapshot exporter")

	exportCtx, exportCancel := context.WithCancel(ctx)
	exporterDone := make(chan struct{})

	m.RegisterShutdownHook("exporter_stop", func(shutdownCtx context.Context) error {
		exportCancel()
		select {
		case <-shutdownCtx.Done():
			return fmt.Errorf("timeout waiting for exporter stop: %w", shutdownCtx.Err())
		case <-exporterDone:
		}
		if err := namedprop.Export(shutdownCtx, m.deps.Store, exportCfg.Path); err != nil {
			return fmt.Errorf("final export: %w", err)
		}
		return nil
	})

	go func() {
		defer close(exporterDone)
		ticker := time.NewTicker(exportCfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-exportCtx.Done():
				return
			case <-ticker.C:
				// Export failures are logged, never fatal; the next tick
				// retries and the shutdown hook writes a final snapshot.
				if err := namedprop.Export(exportCtx, m.deps.Store, exportCfg.Path); err != nil {
					m.logger.Error().
						Err(err).
						Str("event", "export.failed").
						Str("path", exportCfg.Path).
						Msg("periodic snapshot export failed")
				}
			}
		}
	}()

	return nil
}
