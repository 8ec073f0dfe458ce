// SPDX-License-Identifier: MIT

package namedprop

import (
	"context"
	"sort"
	"sync"

	"github.com/olmapi/olmapi/internal/mapi"
)

// MemoryStore keeps mappings in process memory. It backs tests and
// single-run tools; the daemon uses it when no persistence is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	quota int
	byKey map[string]uint16
	byID  map[uint16]Name
}

// NewMemoryStore creates an empty in-memory store. quota caps the number
// of mappings; zero selects the full ID range.
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{
		quota: clampQuota(quota),
		byKey: make(map[string]uint16),
		byID:  make(map[uint16]Name),
	}
}

func (s *MemoryStore) Lookup(_ context.Context, name Name) (uint16, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[name.Key()]
	return id, ok, nil
}

func (s *MemoryStore) Reverse(_ context.Context, id uint16) (Name, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.byID[id]
	return name, ok, nil
}

func (s *MemoryStore) Allocate(_ context.Context, name Name) (uint16, bool, error) {
	key := name.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byKey[key]; ok {
		return id, false, nil
	}
	if len(s.byKey) >= s.quota {
		return 0, false, errQuota(s.quota)
	}

	id := mapi.NamedPropIDFirst + uint16(len(s.byKey))
	s.byKey[key] = id
	s.byID[id] = name
	return id, true, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Mapping, 0, len(s.byID))
	for id, name := range s.byID {
		out = append(out, Mapping{Name: name, PropID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PropID < out[j].PropID })
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey), nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
