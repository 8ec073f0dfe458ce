// SPDX-License-Identifier: MIT

package namedprop_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/namedprop"
)

func TestExportAndReadSnapshot(t *testing.T) {
	ctx := context.Background()
	store := namedprop.NewMemoryStore(0)

	names := []namedprop.Name{
		namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "Keywords"),
		namedprop.NumericName(mapi.PS_MAPI, 0x8501),
	}
	for _, n := range names {
		_, _, err := store.Allocate(ctx, n)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "mappings.json")
	require.NoError(t, namedprop.Export(ctx, store, path))

	snap, err := namedprop.ReadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Count)
	require.Len(t, snap.Mappings, 2)
	assert.Equal(t, names[0], snap.Mappings[0].Name)
	assert.Equal(t, uint16(0x8000), snap.Mappings[0].PropID)
	assert.Equal(t, names[1], snap.Mappings[1].Name)
	assert.Equal(t, uint16(0x8001), snap.Mappings[1].PropID)
	assert.False(t, snap.ExportedAt.IsZero())
}

func TestExportReplacesExistingFile(t *testing.T) {
	ctx := context.Background()
	store := namedprop.NewMemoryStore(0)

	path := filepath.Join(t.TempDir(), "mappings.json")
	require.NoError(t, os.WriteFile(path, []byte("stale garbage"), 0o644))

	_, _, err := store.Allocate(ctx, namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "fresh"))
	require.NoError(t, err)

	require.NoError(t, namedprop.Export(ctx, store, path))

	snap, err := namedprop.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Count)
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := namedprop.ReadSnapshot(path)
	assert.Error(t, err)
}
