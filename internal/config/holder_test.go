// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderReload(t *testing.T) {
	t.Setenv("OLMAPI_DATA_DIR", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`logLevel: info`), 0600))

	loader := NewLoader(path, "test")
	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)
	defer holder.Stop()

	listener := make(chan AppConfig, 1)
	holder.RegisterListener(listener)

	assert.Equal(t, "info", holder.Get().LogLevel)

	require.NoError(t, os.WriteFile(path, []byte(`logLevel: debug`), 0600))
	require.NoError(t, holder.Reload(context.Background()))

	assert.Equal(t, "debug", holder.Get().LogLevel)

	select {
	case got := <-listener:
		assert.Equal(t, "debug", got.LogLevel)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestHolderReloadFailureKeepsOld(t *testing.T) {
	t.Setenv("OLMAPI_DATA_DIR", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`logLevel: warn`), 0600))

	loader := NewLoader(path, "test")
	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewHolder(initial, loader, path)
	defer holder.Stop()

	// Unknown key makes the strict parser fail.
	require.NoError(t, os.WriteFile(path, []byte(`logLvel: debug`), 0600))
	require.Error(t, holder.Reload(context.Background()))

	assert.Equal(t, "warn", holder.Get().LogLevel)
}

func TestHolderWatcherDisabledWithoutPath(t *testing.T) {
	holder := NewHolder(Defaults(), NewLoader("", "test"), "")
	require.NoError(t, holder.StartWatcher(context.Background()))
	holder.Stop()
}
