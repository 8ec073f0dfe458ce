// SPDX-License-Identifier: MIT

package namedprop

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go driver

	"github.com/olmapi/olmapi/internal/mapi"
)

// SQLiteConfig defines operational parameters for the SQLite backend.
type SQLiteConfig struct {
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// DefaultSQLiteConfig returns the recommended pool configuration.
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 25,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS named_props (
	prop_id    INTEGER PRIMARY KEY,
	guid       TEXT    NOT NULL,
	kind       INTEGER NOT NULL,
	num_id     INTEGER NOT NULL DEFAULT 0,
	str_name   TEXT    NOT NULL DEFAULT '',
	created_at TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	UNIQUE (guid, kind, num_id, str_name)
);`

// SQLiteStore persists mappings in a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	alloc sync.Mutex // serializes Allocate transactions
	quota int
}

// OpenSQLiteStore opens or creates the database file at path and applies
// the schema. quota caps the number of mappings; zero selects the full ID
// range.
func OpenSQLiteStore(path string, quota int, cfg SQLiteConfig) (*SQLiteStore, error) {
	// _pragma in the DSN applies to every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: schema failed: %w", err)
	}

	return &SQLiteStore{db: db, quota: clampQuota(quota)}, nil
}

const lookupQuery = `SELECT prop_id FROM named_props WHERE guid = ? AND kind = ? AND num_id = ? AND str_name = ?`

func (s *SQLiteStore) Lookup(ctx context.Context, name Name) (uint16, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, lookupQuery,
		name.Set.String(), name.Kind, name.ID, name.Str).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint16(id), true, nil
}

func (s *SQLiteStore) Reverse(ctx context.Context, id uint16) (Name, bool, error) {
	var (
		guid    string
		kind    uint32
		numID   uint32
		strName string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT guid, kind, num_id, str_name FROM named_props WHERE prop_id = ?`,
		id).Scan(&guid, &kind, &numID, &strName)
	if err == sql.ErrNoRows {
		return Name{}, false, nil
	}
	if err != nil {
		return Name{}, false, err
	}

	set, err := uuid.Parse(guid)
	if err != nil {
		return Name{}, false, fmt.Errorf("sqlite: corrupt guid %q: %w", guid, err)
	}
	return Name{Set: set, Kind: kind, ID: numID, Str: strName}, true, nil
}

func (s *SQLiteStore) Allocate(ctx context.Context, name Name) (uint16, bool, error) {
	s.alloc.Lock()
	defer s.alloc.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx, lookupQuery,
		name.Set.String(), name.Kind, name.ID, name.Str).Scan(&existing)
	if err == nil {
		return uint16(existing), false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM named_props`).Scan(&count); err != nil {
		return 0, false, err
	}
	if count >= s.quota {
		return 0, false, errQuota(s.quota)
	}

	id := mapi.NamedPropIDFirst + uint16(count)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO named_props (prop_id, guid, kind, num_id, str_name) VALUES (?, ?, ?, ?, ?)`,
		id, name.Set.String(), name.Kind, name.ID, name.Str); err != nil {
		return 0, false, err
	}
	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Mapping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT prop_id, guid, kind, num_id, str_name FROM named_props ORDER BY prop_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mapping
	for rows.Next() {
		var (
			id      int64
			guid    string
			kind    uint32
			numID   uint32
			strName string
		)
		if err := rows.Scan(&id, &guid, &kind, &numID, &strName); err != nil {
			return nil, err
		}
		set, err := uuid.Parse(guid)
		if err != nil {
			return nil, fmt.Errorf("sqlite: corrupt guid %q: %w", guid, err)
		}
		out = append(out, Mapping{
			Name:   Name{Set: set, Kind: kind, ID: numID, Str: strName},
			PropID: uint16(id),
		})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM named_props`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
