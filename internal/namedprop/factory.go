// SPDX-License-Identifier: MIT

package namedprop

import "fmt"

// StoreConfig selects and configures a mapping store backend.
type StoreConfig struct {
	// Backend is one of "memory", "badger" or "sqlite". Empty selects memory.
	Backend string
	// Path is the Badger directory or the SQLite database file.
	Path string
	// Quota caps the number of mappings. Zero selects the full ID range.
	Quota int
}

// OpenStore builds the Store named by cfg.Backend.
func OpenStore(cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.Quota), nil
	case "badger":
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger backend requires a path")
		}
		return OpenBadgerStore(cfg.Path, cfg.Quota)
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return OpenSQLiteStore(cfg.Path, cfg.Quota, DefaultSQLiteConfig())
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
