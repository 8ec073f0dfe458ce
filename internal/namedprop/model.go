// SPDX-License-Identifier: MIT

// Package namedprop implements the named property registry: durable
// name-to-ID mappings in the 0x8000+ property ID range, GetIDsFromNames
// and GetNamesFromIDs on top of them, and the storage backends that
// persist the mappings.
package namedprop

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/olmapi/olmapi/internal/mapi"
)

// maxStringNameLen caps MNID_STRING names. Longer names are rejected
// before they reach a store.
const maxStringNameLen = 255

// Name identifies a named property: a property set GUID plus either a
// numeric ID (MNID_ID) or a string (MNID_STRING).
type Name struct {
	Set  uuid.UUID `json:"set"`
	Kind uint32    `json:"kind"`
	ID   uint32    `json:"id,omitempty"`
	Str  string    `json:"name,omitempty"`
}

// NumericName builds an MNID_ID name.
func NumericName(set uuid.UUID, id uint32) Name {
	return Name{Set: set, Kind: mapi.MNID_ID, ID: id}
}

// StringName builds an MNID_STRING name.
func StringName(set uuid.UUID, s string) Name {
	return Name{Set: set, Kind: mapi.MNID_STRING, Str: s}
}

// Validate rejects names that cannot be mapped. The kind must be MNID_ID
// or MNID_STRING, and the fields of the other kind must be zero so each
// name has exactly one canonical form.
func (n Name) Validate() error {
	if n.Set == uuid.Nil {
		return fmt.Errorf("property set GUID is zero: %w", mapi.MAPI_E_INVALID_PARAMETER)
	}
	switch n.Kind {
	case mapi.MNID_ID:
		if n.Str != "" {
			return fmt.Errorf("numeric name carries a string: %w", mapi.MAPI_E_INVALID_PARAMETER)
		}
	case mapi.MNID_STRING:
		if n.Str == "" {
			return fmt.Errorf("string name is empty: %w", mapi.MAPI_E_INVALID_PARAMETER)
		}
		if len(n.Str) > maxStringNameLen {
			return fmt.Errorf("string name exceeds %d bytes: %w", maxStringNameLen, mapi.MAPI_E_STRING_TOO_LONG)
		}
		if n.ID != 0 {
			return fmt.Errorf("string name carries a numeric ID: %w", mapi.MAPI_E_INVALID_PARAMETER)
		}
	default:
		return fmt.Errorf("unknown name kind %d: %w", n.Kind, mapi.MAPI_E_INVALID_PARAMETER)
	}
	return nil
}

// Key returns the canonical storage and cache key for the name. String
// names compare case-sensitively.
func (n Name) Key() string {
	if n.Kind == mapi.MNID_STRING {
		return n.Set.String() + "/str/" + n.Str
	}
	return fmt.Sprintf("%s/id/0x%08X", n.Set, n.ID)
}

// String renders the name for logs.
func (n Name) String() string {
	if n.Kind == mapi.MNID_STRING {
		return fmt.Sprintf("%s:%q", n.Set, n.Str)
	}
	return fmt.Sprintf("%s:0x%04X", n.Set, n.ID)
}

// Mapping pairs a name with its allocated property ID.
type Mapping struct {
	Name   Name   `json:"name"`
	PropID uint16 `json:"prop_id"`
}

// Tag returns the mapping's property tag with the given type.
func (m Mapping) Tag(t mapi.PropType) mapi.PropTag {
	return mapi.NewTag(t, m.PropID)
}
