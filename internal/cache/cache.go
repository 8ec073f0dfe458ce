// SPDX-License-Identifier: MIT

// Package cache provides TTL caches for resolved named-property IDs. The
// registry fronts its mapping store with one of these so hot names skip the
// store. Mappings are immutable once allocated, so entries can never go
// stale; the TTL only sheds names nobody asks for anymore.
package cache

import (
	"sync"
	"time"
)

// Cache stores name-key to property-ID lookups with a per-entry TTL.
type Cache interface {
	// Get returns the ID cached under key, if present and fresh.
	Get(key string) (uint16, bool)
	// Set caches id under key for ttl.
	Set(key string, id uint16, ttl time.Duration)
	// Close releases background resources.
	Close() error
}

// Nop returns a Cache that stores nothing, for deployments that disable
// caching. Hit and miss counts for all cache kinds are recorded by the
// registry, not here.
func Nop() Cache {
	return nopCache{}
}

type nopCache struct{}

func (nopCache) Get(string) (uint16, bool)         { return 0, false }
func (nopCache) Set(string, uint16, time.Duration) {}
func (nopCache) Close() error                      { return nil }

// Memory is an in-process Cache. A background sweeper drops expired
// entries so the map does not grow with every name ever resolved.
type Memory struct {
	mu   sync.Mutex
	ids  map[string]memoryEntry
	stop chan struct{}
	once sync.Once
}

type memoryEntry struct {
	id       uint16
	deadline time.Time
}

// NewMemory builds a memory cache. sweepEvery > 0 starts the sweeper; zero
// leaves expired entries in place until they are next looked up.
func NewMemory(sweepEvery time.Duration) *Memory {
	m := &Memory{
		ids:  make(map[string]memoryEntry),
		stop: make(chan struct{}),
	}
	if sweepEvery > 0 {
		go m.sweep(sweepEvery)
	}
	return m
}

// Get returns the ID cached under key. Expired entries count as absent even
// before the sweeper gets to them.
func (m *Memory) Get(key string) (uint16, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.ids[key]
	if !ok || time.Now().After(e.deadline) {
		return 0, false
	}
	return e.id, true
}

// Set caches id under key for ttl.
func (m *Memory) Set(key string, id uint16, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[key] = memoryEntry{id: id, deadline: time.Now().Add(ttl)}
}

// Len reports the number of entries currently held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}

// Close stops the sweeper. Safe to call more than once.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *Memory) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, e := range m.ids {
				if now.After(e.deadline) {
					delete(m.ids, key)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}
