// SPDX-License-Identifier: MIT

package namedprop

import (
	"context"
	"fmt"

	"github.com/olmapi/olmapi/internal/mapi"
)

// Store persists name-to-ID mappings. Property IDs are assigned
// sequentially from mapi.NamedPropIDFirst and never reused; a mapping is
// immutable once written.
type Store interface {
	// Lookup returns the property ID mapped to name, if any.
	Lookup(ctx context.Context, name Name) (uint16, bool, error)
	// Reverse returns the name a property ID was allocated to, if any.
	Reverse(ctx context.Context, id uint16) (Name, bool, error)
	// Allocate returns the property ID for name, assigning the next free
	// ID when the name is not yet mapped. created reports whether a new
	// mapping was written. Allocation fails with
	// MAPI_E_NAMED_PROP_QUOTA_EXCEEDED once the store is full.
	Allocate(ctx context.Context, name Name) (id uint16, created bool, err error)
	// List returns all mappings ordered by property ID.
	List(ctx context.Context) ([]Mapping, error)
	// Count returns the number of allocated mappings.
	Count(ctx context.Context) (int, error)
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases store resources.
	Close() error
}

// clampQuota applies the hard ID-range cap to a configured quota.
// Non-positive quotas select the full range.
func clampQuota(quota int) int {
	hard := int(mapi.NamedPropIDLast-mapi.NamedPropIDFirst) + 1
	if quota <= 0 || quota > hard {
		return hard
	}
	return quota
}

func errQuota(quota int) error {
	return fmt.Errorf("named property quota %d reached: %w", quota, mapi.MAPI_E_NAMED_PROP_QUOTA_EXCEEDED)
}
