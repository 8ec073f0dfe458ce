// SPDX-License-Identifier: MIT

package namedprop

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/olmapi/olmapi/internal/cache"
	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/metrics"
)

// defaultCacheTTL bounds how long a resolved ID may be served without
// consulting the store. Mappings never change, so the TTL only limits
// memory held for names that stop being asked for.
const defaultCacheTTL = 15 * time.Minute

// Registry implements GetIDsFromNames and GetNamesFromIDs over a Store,
// with a read-through cache and an optional create rate limit.
type Registry struct {
	store   Store
	cache   cache.Cache
	limiter *rate.Limiter
	ttl     time.Duration
	logger  zerolog.Logger
	sf      singleflight.Group
}

// RegistryConfig tunes a Registry. Zero values disable the corresponding
// feature.
type RegistryConfig struct {
	// Cache fronts store lookups. Nil disables caching.
	Cache cache.Cache
	// CacheTTL overrides the default entry lifetime.
	CacheTTL time.Duration
	// CreateRate caps sustained mapping creation per second. Zero means
	// unlimited.
	CreateRate rate.Limit
	// CreateBurst is the creation burst size. Defaults to 1 when a rate
	// is set.
	CreateBurst int
	// Logger receives allocation and rejection events.
	Logger zerolog.Logger
}

// NewRegistry builds a Registry on top of store.
func NewRegistry(store Store, cfg RegistryConfig) *Registry {
	r := &Registry{
		store:  store,
		cache:  cfg.Cache,
		ttl:    cfg.CacheTTL,
		logger: cfg.Logger,
	}
	if r.cache == nil {
		r.cache = cache.Nop()
	}
	if r.ttl <= 0 {
		r.ttl = defaultCacheTTL
	}
	if cfg.CreateRate > 0 {
		burst := cfg.CreateBurst
		if burst <= 0 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(cfg.CreateRate, burst)
	}
	return r
}

// GetIDs maps names to property tags. Known names come back as
// PT_UNSPECIFIED tags carrying the mapped ID; the caller picks the value
// type. With MAPI_CREATE set, unknown names are allocated. Without it,
// unknown or malformed names come back as PT_ERROR tags and the returned
// HResult is MAPI_W_ERRORS_RETURNED.
//
// flags accepts MAPI_CREATE only; any other bit fails the whole call with
// MAPI_E_UNKNOWN_FLAGS.
func (r *Registry) GetIDs(ctx context.Context, names []Name, flags uint32) ([]mapi.PropTag, mapi.HResult, error) {
	if flags&^mapi.MAPI_CREATE != 0 {
		return nil, 0, fmt.Errorf("flags 0x%08X: %w", flags, mapi.MAPI_E_UNKNOWN_FLAGS)
	}
	create := flags&mapi.MAPI_CREATE != 0

	tags := make([]mapi.PropTag, len(names))
	hr := mapi.S_OK
	for i, name := range names {
		if err := name.Validate(); err != nil {
			r.logger.Debug().Err(err).Msg("rejecting malformed property name")
			tags[i] = mapi.NewTag(mapi.PT_ERROR, 0)
			hr = mapi.MAPI_W_ERRORS_RETURNED
			continue
		}

		id, found, err := r.resolve(ctx, name)
		if err != nil {
			return nil, 0, err
		}
		if found {
			tags[i] = mapi.NewTag(mapi.PT_UNSPECIFIED, id)
			continue
		}
		if !create {
			tags[i] = mapi.NewTag(mapi.PT_ERROR, 0)
			hr = mapi.MAPI_W_ERRORS_RETURNED
			continue
		}

		id, err = r.create(ctx, name)
		if err != nil {
			return nil, 0, err
		}
		tags[i] = mapi.NewTag(mapi.PT_UNSPECIFIED, id)
	}
	return tags, hr, nil
}

// GetNames maps property IDs back to names. Entries for IDs that were
// never allocated are nil and the returned HResult is
// MAPI_W_ERRORS_RETURNED.
func (r *Registry) GetNames(ctx context.Context, ids []uint16) ([]*Name, mapi.HResult, error) {
	names := make([]*Name, len(ids))
	hr := mapi.S_OK
	for i, id := range ids {
		name, found, err := r.store.Reverse(ctx, id)
		if err != nil {
			metrics.IncStoreError("reverse")
			return nil, 0, fmt.Errorf("reverse 0x%04X: %w", id, err)
		}
		if !found {
			hr = mapi.MAPI_W_ERRORS_RETURNED
			continue
		}
		n := name
		names[i] = &n
	}
	return names, hr, nil
}

// resolve consults the cache, then the store.
func (r *Registry) resolve(ctx context.Context, name Name) (uint16, bool, error) {
	key := name.Key()
	if id, ok := r.cache.Get(key); ok {
		metrics.RecordNameResolution("cache_hit")
		return id, true, nil
	}

	id, found, err := r.store.Lookup(ctx, name)
	if err != nil {
		metrics.RecordNameResolution("error")
		metrics.IncStoreError("lookup")
		return 0, false, fmt.Errorf("lookup %s: %w", name, err)
	}
	if !found {
		metrics.RecordNameResolution("miss")
		return 0, false, nil
	}

	metrics.RecordNameResolution("store_hit")
	r.cache.Set(key, id, r.ttl)
	return id, true, nil
}

type allocResult struct {
	id      uint16
	created bool
}

// create allocates a mapping, collapsing concurrent requests for the same
// name into a single store write.
func (r *Registry) create(ctx context.Context, name Name) (uint16, error) {
	if r.limiter != nil && !r.limiter.Allow() {
		metrics.RecordNameResolution("throttled")
		r.logger.Warn().Str("name", name.String()).Msg("mapping creation throttled")
		return 0, fmt.Errorf("create rate exceeded: %w", mapi.MAPI_E_BUSY)
	}

	key := name.Key()
	v, err, _ := r.sf.Do(key, func() (any, error) {
		id, created, err := r.store.Allocate(ctx, name)
		if err != nil {
			return nil, err
		}
		return allocResult{id: id, created: created}, nil
	})
	if err != nil {
		metrics.IncStoreError("allocate")
		return 0, fmt.Errorf("allocate %s: %w", name, err)
	}

	res := v.(allocResult)
	r.cache.Set(key, res.id, r.ttl)
	if res.created {
		metrics.RecordNameResolution("created")
		metrics.IncNamedPropsAllocated()
		r.logger.Info().
			Str("name", name.String()).
			Str("prop_id", fmt.Sprintf("0x%04X", res.id)).
			Msg("allocated named property")
	}
	return res.id, nil
}

// List returns every mapping ordered by property ID.
func (r *Registry) List(ctx context.Context) ([]Mapping, error) {
	mappings, err := r.store.List(ctx)
	if err != nil {
		metrics.IncStoreError("list")
		return nil, err
	}
	return mappings, nil
}

// Count returns the number of allocated mappings.
func (r *Registry) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx)
}

// Ping verifies the backing store is reachable.
func (r *Registry) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		metrics.IncStoreError("ping")
		return err
	}
	return nil
}
