// SPDX-License-Identifier: MIT

package namedprop_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/namedprop"
)

func TestNameValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      namedprop.Name
		wantErr mapi.HResult
	}{
		{
			name: "numeric name",
			in:   namedprop.NumericName(mapi.PS_MAPI, 0x8501),
		},
		{
			name: "string name",
			in:   namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "Keywords"),
		},
		{
			name:    "zero GUID",
			in:      namedprop.Name{Kind: mapi.MNID_ID, ID: 1},
			wantErr: mapi.MAPI_E_INVALID_PARAMETER,
		},
		{
			name:    "unknown kind",
			in:      namedprop.Name{Set: mapi.PS_MAPI, Kind: 7},
			wantErr: mapi.MAPI_E_INVALID_PARAMETER,
		},
		{
			name:    "empty string name",
			in:      namedprop.Name{Set: mapi.PS_PUBLIC_STRINGS, Kind: mapi.MNID_STRING},
			wantErr: mapi.MAPI_E_INVALID_PARAMETER,
		},
		{
			name:    "oversized string name",
			in:      namedprop.StringName(mapi.PS_PUBLIC_STRINGS, strings.Repeat("x", 256)),
			wantErr: mapi.MAPI_E_STRING_TOO_LONG,
		},
		{
			name:    "numeric name with string",
			in:      namedprop.Name{Set: mapi.PS_MAPI, Kind: mapi.MNID_ID, ID: 1, Str: "extra"},
			wantErr: mapi.MAPI_E_INVALID_PARAMETER,
		},
		{
			name:    "string name with numeric ID",
			in:      namedprop.Name{Set: mapi.PS_PUBLIC_STRINGS, Kind: mapi.MNID_STRING, ID: 3, Str: "x"},
			wantErr: mapi.MAPI_E_INVALID_PARAMETER,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == 0 {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "want %v, got %v", tt.wantErr, err)
		})
	}
}

func TestNameKey(t *testing.T) {
	numeric := namedprop.NumericName(mapi.PS_MAPI, 0x8501)
	assert.Equal(t, "00020328-0000-0000-c000-000000000046/id/0x00008501", numeric.Key())

	str := namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "Keywords")
	assert.Equal(t, "00020329-0000-0000-c000-000000000046/str/Keywords", str.Key())

	// Keys are case-sensitive for string names.
	lower := namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "keywords")
	assert.NotEqual(t, str.Key(), lower.Key())
}

func TestNameString(t *testing.T) {
	set := uuid.MustParse("00020329-0000-0000-c000-000000000046")

	assert.Equal(t, `00020329-0000-0000-c000-000000000046:"Keywords"`,
		namedprop.StringName(set, "Keywords").String())
	assert.Equal(t, "00020329-0000-0000-c000-000000000046:0x8501",
		namedprop.NumericName(set, 0x8501).String())
}

func TestMappingTag(t *testing.T) {
	m := namedprop.Mapping{
		Name:   namedprop.StringName(mapi.PS_PUBLIC_STRINGS, "Keywords"),
		PropID: 0x8042,
	}

	tag := m.Tag(mapi.PT_MV_UNICODE)
	assert.Equal(t, uint16(0x8042), tag.ID())
	assert.Equal(t, mapi.PT_MV_UNICODE, tag.Type())
	assert.True(t, tag.IsNamed())
}
