// SPDX-License-Identifier: MIT
package validate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/validate"
)

func TestValidator_Checks(t *testing.T) {
	tests := []struct {
		name    string
		check   func(v *validate.Validator)
		wantErr bool
	}{
		{"NotEmpty ok", func(v *validate.Validator) { v.NotEmpty("f", "value") }, false},
		{"NotEmpty empty", func(v *validate.Validator) { v.NotEmpty("f", "") }, true},
		{"NotEmpty whitespace", func(v *validate.Validator) { v.NotEmpty("f", " \t ") }, true},

		{"OneOf first", func(v *validate.Validator) { v.OneOf("f", "memory", []string{"memory", "badger", "sqlite"}) }, false},
		{"OneOf last", func(v *validate.Validator) { v.OneOf("f", "sqlite", []string{"memory", "badger", "sqlite"}) }, false},
		{"OneOf unknown", func(v *validate.Validator) { v.OneOf("f", "bolt", []string{"memory", "badger", "sqlite"}) }, true},
		{"OneOf case sensitive", func(v *validate.Validator) { v.OneOf("f", "Memory", []string{"memory"}) }, true},

		{"NonNegative zero", func(v *validate.Validator) { v.NonNegative("f", 0) }, false},
		{"NonNegative negative", func(v *validate.Validator) { v.NonNegative("f", -1) }, true},

		{"Range inside", func(v *validate.Validator) { v.Range("f", 5, 1, 10) }, false},
		{"Range at bounds", func(v *validate.Validator) { v.Range("f", 10, 1, 10) }, false},
		{"Range below", func(v *validate.Validator) { v.Range("f", 0, 1, 10) }, true},
		{"Range above", func(v *validate.Validator) { v.Range("f", 11, 1, 10) }, true},

		{"LogLevel info", func(v *validate.Validator) { v.LogLevel("f", "info") }, false},
		{"LogLevel trace", func(v *validate.Validator) { v.LogLevel("f", "trace") }, false},
		{"LogLevel unknown", func(v *validate.Validator) { v.LogLevel("f", "verbose") }, true},

		{"HostPort port only", func(v *validate.Validator) { v.HostPort("f", ":8088") }, false},
		{"HostPort host and port", func(v *validate.Validator) { v.HostPort("f", "127.0.0.1:9090") }, false},
		{"HostPort hostname", func(v *validate.Validator) { v.HostPort("f", "localhost:8080") }, false},
		{"HostPort empty", func(v *validate.Validator) { v.HostPort("f", "") }, true},
		{"HostPort no port", func(v *validate.Validator) { v.HostPort("f", "localhost") }, true},
		{"HostPort named port", func(v *validate.Validator) { v.HostPort("f", "localhost:http") }, true},
		{"HostPort zero", func(v *validate.Validator) { v.HostPort("f", ":0") }, true},
		{"HostPort too large", func(v *validate.Validator) { v.HostPort("f", ":70000") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New()
			tt.check(v)
			if tt.wantErr {
				assert.False(t, v.IsValid(), "expected a validation error")
				assert.Error(t, v.Err())
			} else {
				assert.True(t, v.IsValid(), "unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_Directory(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("existing", func(t *testing.T) {
		v := validate.New()
		v.Directory("dir", tmpDir, true)
		assert.True(t, v.IsValid(), "unexpected error: %v", v.Err())
	})

	t.Run("missing with mustExist", func(t *testing.T) {
		v := validate.New()
		v.Directory("dir", filepath.Join(tmpDir, "missing"), true)
		require.Error(t, v.Err())
		assert.Contains(t, v.Err().Error(), "directory does not exist")
	})

	t.Run("missing gets created", func(t *testing.T) {
		created := filepath.Join(tmpDir, "created")
		v := validate.New()
		v.Directory("dir", created, false)
		require.True(t, v.IsValid(), "unexpected error: %v", v.Err())
		assert.DirExists(t, created)
	})

	t.Run("traversal rejected", func(t *testing.T) {
		v := validate.New()
		v.Directory("dir", "../escape", false)
		require.Error(t, v.Err())
		assert.Contains(t, v.Err().Error(), "traversal")
	})

	t.Run("file is not a directory", func(t *testing.T) {
		file := filepath.Join(tmpDir, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
		v := validate.New()
		v.Directory("dir", file, true)
		require.Error(t, v.Err())
		assert.Contains(t, v.Err().Error(), "not a directory")
	})

	t.Run("empty path", func(t *testing.T) {
		v := validate.New()
		v.Directory("dir", "", false)
		assert.Error(t, v.Err())
	})
}

func TestValidator_WritableDirectory(t *testing.T) {
	t.Run("writable", func(t *testing.T) {
		v := validate.New()
		v.WritableDirectory("dir", t.TempDir(), true)
		assert.True(t, v.IsValid(), "unexpected error: %v", v.Err())
	})

	t.Run("created and probed", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "fresh")
		v := validate.New()
		v.WritableDirectory("dir", target, false)
		require.True(t, v.IsValid(), "unexpected error: %v", v.Err())
		assert.DirExists(t, target)

		entries, err := os.ReadDir(target)
		require.NoError(t, err)
		assert.Empty(t, entries, "probe file must be cleaned up")
	})

	t.Run("read-only", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root writes everywhere, cannot provoke a write failure")
		}
		readOnly := filepath.Join(t.TempDir(), "ro")
		require.NoError(t, os.Mkdir(readOnly, 0500))

		v := validate.New()
		v.WritableDirectory("dir", readOnly, true)
		require.Error(t, v.Err())
		assert.Contains(t, v.Err().Error(), "not writable")
	})

	t.Run("missing with mustExist", func(t *testing.T) {
		v := validate.New()
		v.WritableDirectory("dir", filepath.Join(t.TempDir(), "missing"), true)
		assert.Error(t, v.Err())
	})
}

func TestValidator_ErrAggregation(t *testing.T) {
	v := validate.New()
	assert.NoError(t, v.Err(), "empty validator must return nil")
	assert.True(t, v.IsValid())

	v.AddError("Listen", "first problem", ":bad")
	v.AddError("Store.Backend", "second problem", "bolt")

	err := v.Err()
	require.Error(t, err)

	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
	assert.Equal(t, "Listen", errs[0].Field)

	msg := err.Error()
	assert.True(t, strings.Contains(msg, "first problem") && strings.Contains(msg, "second problem"),
		"aggregated message incomplete: %s", msg)
	assert.Contains(t, msg, "Store.Backend")
}
