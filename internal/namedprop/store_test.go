// SPDX-License-Identifier: MIT

package namedprop_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/namedprop"
)

// openStores builds one store per backend, each rooted in its own temp
// directory. Closing is registered on t.
func openStores(t *testing.T, quota int) map[string]namedprop.Store {
	t.Helper()

	badgerStore, err := namedprop.OpenBadgerStore(filepath.Join(t.TempDir(), "badger"), quota)
	require.NoError(t, err)
	t.Cleanup(func() { _ = badgerStore.Close() })

	sqliteStore, err := namedprop.OpenSQLiteStore(filepath.Join(t.TempDir(), "props.db"), quota, namedprop.DefaultSQLiteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]namedprop.Store{
		"memory": namedprop.NewMemoryStore(quota),
		"badger": badgerStore,
		"sqlite": sqliteStore,
	}
}

func TestStoreAllocateSequential(t *testing.T) {
	ctx := context.Background()

	for backend, store := range openStores(t, 0) {
		t.Run(backend, func(t *testing.T) {
			first := namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "Keywords")
			second := namedprop.NumericName(mapi.PS_MAPI, 0x8501)

			id1, created, err := store.Allocate(ctx, first)
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, mapi.NamedPropIDFirst, id1)

			id2, created, err := store.Allocate(ctx, second)
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, mapi.NamedPropIDFirst+1, id2)

			// Re-allocating an existing name returns the same ID.
			again, created, err := store.Allocate(ctx, first)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, id1, again)

			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, count)
		})
	}
}

func TestStoreLookupAndReverse(t *testing.T) {
	ctx := context.Background()

	for backend, store := range openStores(t, 0) {
		t.Run(backend, func(t *testing.T) {
			name := namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "x-custom-header")

			_, found, err := store.Lookup(ctx, name)
			require.NoError(t, err)
			assert.False(t, found)

			id, _, err := store.Allocate(ctx, name)
			require.NoError(t, err)

			got, found, err := store.Lookup(ctx, name)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, id, got)

			back, found, err := store.Reverse(ctx, id)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, name, back)

			_, found, err = store.Reverse(ctx, 0x9999)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStoreQuota(t *testing.T) {
	ctx := context.Background()

	for backend, store := range openStores(t, 2) {
		t.Run(backend, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				name := namedprop.NumericName(mapi.PS_MAPI, uint32(0x8500+i))
				_, _, err := store.Allocate(ctx, name)
				require.NoError(t, err)
			}

			_, _, err := store.Allocate(ctx, namedprop.NumericName(mapi.PS_MAPI, 0x9000))
			require.Error(t, err)
			assert.True(t, errors.Is(err, mapi.MAPI_E_NAMED_PROP_QUOTA_EXCEEDED),
				"want MAPI_E_NAMED_PROP_QUOTA_EXCEEDED, got %v", err)

			// Existing names still resolve once the quota is hit.
			id, created, err := store.Allocate(ctx, namedprop.NumericName(mapi.PS_MAPI, 0x8500))
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, mapi.NamedPropIDFirst, id)
		})
	}
}

func TestStoreListOrdered(t *testing.T) {
	ctx := context.Background()

	for backend, store := range openStores(t, 0) {
		t.Run(backend, func(t *testing.T) {
			names := []namedprop.Name{
				namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "zulu"),
				namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "alpha"),
				namedprop.NumericName(mapi.PS_MAPI, 0x8777),
			}
			for _, n := range names {
				_, _, err := store.Allocate(ctx, n)
				require.NoError(t, err)
			}

			mappings, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, mappings, len(names))

			for i, m := range mappings {
				assert.Equal(t, mapi.NamedPropIDFirst+uint16(i), m.PropID)
				assert.Equal(t, names[i], m.Name, "list must preserve allocation order")
			}
		})
	}
}

func TestStorePersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	name := namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "survives-restart")

	t.Run("badger", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "badger")

		store, err := namedprop.OpenBadgerStore(dir, 0)
		require.NoError(t, err)
		id, _, err := store.Allocate(ctx, name)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		store, err = namedprop.OpenBadgerStore(dir, 0)
		require.NoError(t, err)
		defer store.Close()

		got, found, err := store.Lookup(ctx, name)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, id, got)

		// The next allocation continues after the persisted range.
		next, created, err := store.Allocate(ctx, namedprop.NumericName(mapi.PS_MAPI, 0x8600))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, id+1, next)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "props.db")

		store, err := namedprop.OpenSQLiteStore(path, 0, namedprop.DefaultSQLiteConfig())
		require.NoError(t, err)
		id, _, err := store.Allocate(ctx, name)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		store, err = namedprop.OpenSQLiteStore(path, 0, namedprop.DefaultSQLiteConfig())
		require.NoError(t, err)
		defer store.Close()

		got, found, err := store.Lookup(ctx, name)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, id, got)

		next, created, err := store.Allocate(ctx, namedprop.NumericName(mapi.PS_MAPI, 0x8600))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, id+1, next)
	})
}

func TestStoreConcurrentAllocate(t *testing.T) {
	ctx := context.Background()

	for backend, store := range openStores(t, 0) {
		t.Run(backend, func(t *testing.T) {
			const workers = 8
			const perWorker = 10

			errs := make(chan error, workers)
			for w := 0; w < workers; w++ {
				go func(w int) {
					for i := 0; i < perWorker; i++ {
						name := namedprop.StringName(mapi.PS_PUBLIC_STRINGS, fmt.Sprintf("prop-%d-%d", w, i))
						if _, _, err := store.Allocate(ctx, name); err != nil {
							errs <- err
							return
						}
					}
					errs <- nil
				}(w)
			}
			for w := 0; w < workers; w++ {
				require.NoError(t, <-errs)
			}

			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, workers*perWorker, count)

			// Every allocated ID must be unique and contiguous.
			mappings, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, mappings, workers*perWorker)
			seen := make(map[uint16]bool, len(mappings))
			for _, m := range mappings {
				assert.False(t, seen[m.PropID], "duplicate id 0x%04X", m.PropID)
				seen[m.PropID] = true
				assert.GreaterOrEqual(t, m.PropID, mapi.NamedPropIDFirst)
				assert.Less(t, int(m.PropID), int(mapi.NamedPropIDFirst)+workers*perWorker)
			}
		})
	}
}

func TestOpenStoreFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     namedprop.StoreConfig
		wantErr string
	}{
		{name: "default is memory", cfg: namedprop.StoreConfig{}},
		{name: "memory", cfg: namedprop.StoreConfig{Backend: "memory"}},
		{name: "badger without path", cfg: namedprop.StoreConfig{Backend: "badger"}, wantErr: "requires a path"},
		{name: "sqlite without path", cfg: namedprop.StoreConfig{Backend: "sqlite"}, wantErr: "requires a path"},
		{name: "unknown backend", cfg: namedprop.StoreConfig{Backend: "etcd"}, wantErr: "unknown store backend: etcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := namedprop.OpenStore(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, store)
			assert.NoError(t, store.Close())
		})
	}
}
