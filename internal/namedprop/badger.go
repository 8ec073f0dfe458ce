// SPDX-License-Identifier: MIT

package namedprop

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/olmapi/olmapi/internal/mapi"
)

// BadgerStore persists mappings in a Badger key-value database.
// Layout:
//   - name:<canonical key> (JSON Mapping)
//   - id:<hex prop id>     (JSON Name)
//   - meta:count           (JSON int)
type BadgerStore struct {
	db    *badger.DB
	alloc sync.Mutex // serializes Allocate; reads go straight to View
	quota int
}

// OpenBadgerStore opens or creates a Badger database at path. quota caps
// the number of mappings; zero selects the full ID range.
func OpenBadgerStore(path string, quota int) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open %s: %w", path, err)
	}
	return &BadgerStore{db: db, quota: clampQuota(quota)}, nil
}

func nameKey(n Name) []byte { return []byte("name:" + n.Key()) }

func idKey(id uint16) []byte { return []byte(fmt.Sprintf("id:%04x", id)) }

var countKey = []byte("meta:count")

func (s *BadgerStore) Lookup(_ context.Context, name Name) (uint16, bool, error) {
	var m Mapping
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nameKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return m.PropID, true, nil
}

func (s *BadgerStore) Reverse(_ context.Context, id uint16) (Name, bool, error) {
	var name Name
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &name)
		})
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return Name{}, false, nil
		}
		return Name{}, false, err
	}
	return name, true, nil
}

func (s *BadgerStore) Allocate(ctx context.Context, name Name) (uint16, bool, error) {
	// Fast path without the allocation lock.
	if id, ok, err := s.Lookup(ctx, name); err != nil || ok {
		return id, false, err
	}

	s.alloc.Lock()
	defer s.alloc.Unlock()

	var (
		id      uint16
		created bool
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		// Re-check under the allocation lock.
		item, err := txn.Get(nameKey(name))
		if err == nil {
			var m Mapping
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}
			id = m.PropID
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		count, err := readCount(txn)
		if err != nil {
			return err
		}
		if count >= s.quota {
			return errQuota(s.quota)
		}

		id = mapi.NamedPropIDFirst + uint16(count)

		buf, err := json.Marshal(Mapping{Name: name, PropID: id})
		if err != nil {
			return err
		}
		if err := txn.Set(nameKey(name), buf); err != nil {
			return err
		}

		nbuf, err := json.Marshal(name)
		if err != nil {
			return err
		}
		if err := txn.Set(idKey(id), nbuf); err != nil {
			return err
		}

		cbuf, err := json.Marshal(count + 1)
		if err != nil {
			return err
		}
		if err := txn.Set(countKey, cbuf); err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

func readCount(txn *badger.Txn) (int, error) {
	item, err := txn.Get(countKey)
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var count int
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &count)
	})
	return count, err
}

func (s *BadgerStore) List(ctx context.Context) ([]Mapping, error) {
	prefix := []byte("name:")
	var out []Mapping
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			var m Mapping
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PropID < out[j].PropID })
	return out, nil
}

func (s *BadgerStore) Count(_ context.Context) (int, error) {
	var count int
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		count, err = readCount(txn)
		return err
	})
	return count, err
}

func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return fmt.Errorf("badger: database closed")
	}
	return nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

var _ Store = (*BadgerStore)(nil)
