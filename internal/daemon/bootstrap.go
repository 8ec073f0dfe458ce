// SPDX-License-Identifier: MIT

// Package daemon provides the core daemon bootstrapping and lifecycle management.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/olmapi/olmapi/internal/cache"
	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/health"
	"github.com/olmapi/olmapi/internal/log"
	"github.com/olmapi/olmapi/internal/metrics"
	"github.com/olmapi/olmapi/internal/namedprop"
	"github.com/olmapi/olmapi/internal/session"
	"github.com/olmapi/olmapi/internal/telemetry"
)

// Runtime bundles the domain components built from one configuration. The
// Manager's close hooks release its resources during shutdown; the runtime
// itself owns no goroutines.
type Runtime struct {
	Store     namedprop.Store
	Cache     cache.Cache
	Registry  *namedprop.Registry
	Sessions  *session.Runtime
	Health    *health.Manager
	Telemetry *telemetry.Provider
}

// NewRuntime opens the mapping store, builds the cache and registry on top
// of it and prepares the session runtime, health manager and trace provider.
// On error everything opened so far is closed again.
func NewRuntime(ctx context.Context, cfg config.AppConfig) (*Runtime, error) {
	store, err := namedprop.OpenStore(namedprop.StoreConfig{
		Backend: cfg.Store.Backend,
		Path:    cfg.Store.Path,
		Quota:   cfg.Store.Quota,
	})
	if err != nil {
		return nil, fmt.Errorf("open mapping store: %w", err)
	}

	propCache, err := buildCache(cfg.Cache)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build cache: %w", err)
	}

	registry := namedprop.NewRegistry(store, namedprop.RegistryConfig{
		Cache:       propCache,
		CacheTTL:    cfg.Cache.TTL,
		CreateRate:  rate.Limit(cfg.Rate.CreateRate),
		CreateBurst: cfg.Rate.CreateBurst,
		Logger:      log.WithComponent("registry"),
	})

	// Seed the allocation gauge so dashboards are correct right after boot.
	if count, err := registry.Count(ctx); err == nil {
		metrics.SetNamedPropsAllocated(float64(count))
	}

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewStoreChecker(cfg.Store.Backend, store.Ping))
	hm.RegisterChecker(health.NewCacheChecker(cfg.Cache.Backend, cachePing(propCache)))

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "olmapi",
		ServiceVersion: cfg.Version,
		Environment:    "production",
		ExporterType:   cfg.Telemetry.Protocol,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SampleRatio,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		_ = propCache.Close()
		_ = store.Close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	return &Runtime{
		Store:     store,
		Cache:     propCache,
		Registry:  registry,
		Sessions:  session.NewRuntime(registry, log.WithComponent("session")),
		Health:    hm,
		Telemetry: provider,
	}, nil
}

// buildCache constructs the resolution cache selected by cfg.Backend.
func buildCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return cache.NewMemory(cfg.CleanupInterval), nil
	case "redis":
		return cache.NewRedis(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log.WithComponent("cache"))
	case "none":
		return cache.Nop(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// cachePing returns the health probe for caches that support one. Memory and
// noop caches have no failure mode, so they report healthy with a nil probe.
func cachePing(c cache.Cache) func(ctx context.Context) error {
	if hc, ok := c.(interface {
		HealthCheck(ctx context.Context) error
	}); ok {
		return hc.HealthCheck
	}
	return nil
}

// WaitForShutdown returns a context cancelled by SIGINT or SIGTERM.
func WaitForShutdown() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
