// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/cache"
	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/log"
	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/namedprop"
)

type trackingStore struct {
	namedprop.Store
	closed atomic.Int32
}

func (s *trackingStore) Close() error {
	s.closed.Add(1)
	return s.Store.Close()
}

type trackingCache struct {
	cache.Cache
	closed atomic.Int32
}

func (c *trackingCache) Close() error {
	c.closed.Add(1)
	return c.Cache.Close()
}

func TestManager_Start_ShutdownClosesRuntimeResources(t *testing.T) {
	store := &trackingStore{Store: namedprop.NewMemoryStore(0)}
	propCache := &trackingCache{Cache: cache.Nop()}

	mgr, err := NewManager(config.ServerConfig{
		ListenAddr:      "127.0.0.1:0",
		ShutdownTimeout: 2 * time.Second,
	}, Deps{
		Logger:     log.WithComponent("test"),
		Config:     config.AppConfig{},
		APIHandler: http.NotFoundHandler(),
		Store:      store,
		Cache:      propCache,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- mgr.Start(ctx)
	}()

	cancel()

	select {
	case startErr := <-errCh:
		require.NoError(t, startErr)
	case <-time.After(3 * time.Second):
		t.Fatal("manager.Start did not return after cancellation")
	}

	assert.Equal(t, int32(1), store.closed.Load())
	assert.Equal(t, int32(1), propCache.closed.Load())
}

func TestManager_ExporterWritesFinalSnapshot(t *testing.T) {
	store := namedprop.NewMemoryStore(0)
	_, _, err := store.Allocate(context.Background(), namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "Keywords"))
	require.NoError(t, err)

	snapshotPath := filepath.Join(t.TempDir(), "mappings.json")

	mgr, err := NewManager(config.ServerConfig{
		ListenAddr:      "127.0.0.1:0",
		ShutdownTimeout: 2 * time.Second,
	}, Deps{
		Logger:     log.WithComponent("test"),
		APIHandler: http.NotFoundHandler(),
		Config: config.AppConfig{
			// Long interval: only the shutdown hook's final export fires.
			Export: config.ExportConfig{Path: snapshotPath, Interval: time.Hour},
		},
		Store: store,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- mgr.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case startErr := <-errCh:
		require.NoError(t, startErr)
	case <-time.After(3 * time.Second):
		t.Fatal("manager.Start did not return after cancellation")
	}

	if _, err := os.Stat(snapshotPath); err != nil {
		t.Fatalf("expected final snapshot at %s: %v", snapshotPath, err)
	}

	snap, err := namedprop.ReadSnapshot(snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Count)
}

func TestManager_RunsShutdownHooksLIFO(t *testing.T) {
	mgr, err := NewManager(config.ServerConfig{
		ListenAddr:      "127.0.0.1:0",
		ShutdownTimeout: 2 * time.Second,
	}, Deps{
		Logger:     log.WithComponent("test"),
		Config:     config.AppConfig{},
		APIHandler: http.NotFoundHandler(),
	})
	require.NoError(t, err)

	var order []string
	mgr.RegisterShutdownHook("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	mgr.RegisterShutdownHook("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- mgr.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case startErr := <-errCh:
		require.NoError(t, startErr)
	case <-time.After(3 * time.Second):
		t.Fatal("manager.Start did not return after cancellation")
	}

	require.Equal(t, []string{"second", "first"}, order)
}
