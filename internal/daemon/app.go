// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/olmapi/olmapi/internal/config"
)

// Lifecycle is the slice of Manager behavior the App drives.
type Lifecycle interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ConfigApplier receives the new configuration after a successful reload.
type ConfigApplier interface {
	ApplyConfig(cfg config.AppConfig)
}

// App owns the long-lived runtime wiring: the config watcher, reload signal
// handling and the server lifecycle.
type App struct {
	logger       zerolog.Logger
	manager      Lifecycle
	cfgHolder    *config.Holder
	applier      ConfigApplier
	reloadSignal os.Signal
}

// NewApp wires the manager, config holder and reload target together.
func NewApp(logger zerolog.Logger, manager Lifecycle, cfgHolder *config.Holder, applier ConfigApplier) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		cfgHolder:    cfgHolder,
		applier:      applier,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts the background subsystems and blocks until ctx is cancelled or
// the manager fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	a.startConfigWatcher(ctx)
	a.forwardConfigApplies(ctx, g)
	a.handleReloadSignal(ctx, g)

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}

// startConfigWatcher is best-effort: a daemon without live reload still runs.
func (a *App) startConfigWatcher(ctx context.Context) {
	if a.cfgHolder == nil {
		return
	}
	if err := a.cfgHolder.StartWatcher(ctx); err != nil {
		a.logger.Warn().
			Err(err).
			Str("event", "config.watcher_start_failed").
			Msg("config watcher failed to start, continuing without file watch")
	}
}

// forwardConfigApplies delivers every accepted config swap to the applier.
func (a *App) forwardConfigApplies(ctx context.Context, g *errgroup.Group) {
	if a.cfgHolder == nil || a.applier == nil {
		return
	}

	applyCh := make(chan config.AppConfig, 1)
	a.cfgHolder.RegisterListener(applyCh)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case cfg := <-applyCh:
				a.applier.ApplyConfig(cfg)
			}
		}
	})
}

// handleReloadSignal triggers a config reload on each SIGHUP. Reload failures
// keep the previous config active.
func (a *App) handleReloadSignal(ctx context.Context, g *errgroup.Group) {
	if a.cfgHolder == nil || a.reloadSignal == nil {
		return
	}

	g.Go(func() error {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, a.reloadSignal)
		defer signal.Stop(sigc)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-sigc:
				a.logger.Info().
					Str("event", "config.reload_signal").
					Str("signal", a.reloadSignal.String()).
					Msg("reload signal received")

				if err := a.cfgHolder.Reload(context.Background()); err != nil {
					a.logger.Warn().
						Err(err).
						Str("event", "config.reload_failed").
						Msg("config reload failed, keeping previous config")
				}
			}
		}
	})
}
