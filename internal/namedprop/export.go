// SPDX-License-Identifier: MIT

package namedprop

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/renameio/v2"

	"github.com/olmapi/olmapi/internal/metrics"
)

// Snapshot is the exported mapping file format.
type Snapshot struct {
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Mappings   []Mapping `json:"mappings"`
}

// Export atomically writes all mappings to path as JSON.
// The data is fsynced before the rename, so a crash mid-export never
// leaves a truncated snapshot behind.
func Export(ctx context.Context, store Store, path string) error {
	mappings, err := store.List(ctx)
	if err != nil {
		metrics.RecordExport("failure")
		return fmt.Errorf("list mappings: %w", err)
	}

	snap := Snapshot{
		ExportedAt: time.Now().UTC(),
		Count:      len(mappings),
		Mappings:   mappings,
	}

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		metrics.RecordExport("failure")
		return fmt.Errorf("create pending snapshot file: %w", err)
	}
	defer func() {
		_ = pendingFile.Cleanup()
	}()

	enc := json.NewEncoder(pendingFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		metrics.RecordExport("failure")
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		metrics.RecordExport("failure")
		return fmt.Errorf("atomically replace snapshot: %w", err)
	}

	metrics.RecordExport("success")
	return nil
}

// ReadSnapshot loads a snapshot written by Export.
func ReadSnapshot(path string) (*Snapshot, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(buf, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &snap, nil
}
