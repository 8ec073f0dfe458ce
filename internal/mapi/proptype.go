// SPDX-License-Identifier: MIT

package mapi

import "fmt"

// Single-value property types.
const (
	PT_UNSPECIFIED PropType = 0x0000
	PT_NULL        PropType = 0x0001
	PT_I2          PropType = 0x0002
	PT_LONG        PropType = 0x0003
	PT_R4          PropType = 0x0004
	PT_DOUBLE      PropType = 0x0005
	PT_CURRENCY    PropType = 0x0006
	PT_APPTIME     PropType = 0x0007
	PT_ERROR       PropType = 0x000A
	PT_BOOLEAN     PropType = 0x000B
	PT_OBJECT      PropType = 0x000D
	PT_I8          PropType = 0x0014
	PT_STRING8     PropType = 0x001E
	PT_UNICODE     PropType = 0x001F
	PT_SYSTIME     PropType = 0x0040
	PT_CLSID       PropType = 0x0048
	PT_BINARY      PropType = 0x0102
	PT_PTR         PropType = 0x0103

	// Alternate names used throughout the MAPI headers.
	PT_SHORT       = PT_I2
	PT_I4          = PT_LONG
	PT_FLOAT       = PT_R4
	PT_R8          = PT_DOUBLE
	PT_LONGLONG    = PT_I8
	PT_FILE_HANDLE = PT_PTR
)

// Property type flag bits. MV_FLAG marks a multi-valued type; MV_INSTANCE
// requests per-instance rows when set on a table column.
const (
	MV_FLAG     uint32 = 0x1000
	MV_INSTANCE uint32 = 0x2000
)

// Multi-value property types (MV_FLAG | base type).
const (
	PT_MV_I2       = PT_I2 | PropType(MV_FLAG)
	PT_MV_LONG     = PT_LONG | PropType(MV_FLAG)
	PT_MV_R4       = PT_R4 | PropType(MV_FLAG)
	PT_MV_DOUBLE   = PT_DOUBLE | PropType(MV_FLAG)
	PT_MV_CURRENCY = PT_CURRENCY | PropType(MV_FLAG)
	PT_MV_APPTIME  = PT_APPTIME | PropType(MV_FLAG)
	PT_MV_I8       = PT_I8 | PropType(MV_FLAG)
	PT_MV_STRING8  = PT_STRING8 | PropType(MV_FLAG)
	PT_MV_UNICODE  = PT_UNICODE | PropType(MV_FLAG)
	PT_MV_SYSTIME  = PT_SYSTIME | PropType(MV_FLAG)
	PT_MV_CLSID    = PT_CLSID | PropType(MV_FLAG)
	PT_MV_BINARY   = PT_BINARY | PropType(MV_FLAG)

	PT_MV_SHORT    = PT_MV_I2
	PT_MV_FLOAT    = PT_MV_R4
	PT_MV_R8       = PT_MV_DOUBLE
	PT_MV_LONGLONG = PT_MV_I8
)

var propTypeNames = map[PropType]string{
	PT_UNSPECIFIED: "PT_UNSPECIFIED",
	PT_NULL:        "PT_NULL",
	PT_I2:          "PT_I2",
	PT_LONG:        "PT_LONG",
	PT_R4:          "PT_R4",
	PT_DOUBLE:      "PT_DOUBLE",
	PT_CURRENCY:    "PT_CURRENCY",
	PT_APPTIME:     "PT_APPTIME",
	PT_ERROR:       "PT_ERROR",
	PT_BOOLEAN:     "PT_BOOLEAN",
	PT_OBJECT:      "PT_OBJECT",
	PT_I8:          "PT_I8",
	PT_STRING8:     "PT_STRING8",
	PT_UNICODE:     "PT_UNICODE",
	PT_SYSTIME:     "PT_SYSTIME",
	PT_CLSID:       "PT_CLSID",
	PT_BINARY:      "PT_BINARY",
	PT_PTR:         "PT_PTR",
	PT_MV_I2:       "PT_MV_I2",
	PT_MV_LONG:     "PT_MV_LONG",
	PT_MV_R4:       "PT_MV_R4",
	PT_MV_DOUBLE:   "PT_MV_DOUBLE",
	PT_MV_CURRENCY: "PT_MV_CURRENCY",
	PT_MV_APPTIME:  "PT_MV_APPTIME",
	PT_MV_I8:       "PT_MV_I8",
	PT_MV_STRING8:  "PT_MV_STRING8",
	PT_MV_UNICODE:  "PT_MV_UNICODE",
	PT_MV_SYSTIME:  "PT_MV_SYSTIME",
	PT_MV_CLSID:    "PT_MV_CLSID",
	PT_MV_BINARY:   "PT_MV_BINARY",
}

// String returns the canonical PT_* name, or a hex form for unknown types.
func (pt PropType) String() string {
	if s, ok := propTypeNames[pt]; ok {
		return s
	}
	if s, ok := propTypeNames[pt&^PropType(MV_INSTANCE)]; ok {
		return s + "|MV_INSTANCE"
	}
	return fmt.Sprintf("0x%04X", uint16(pt))
}

// ParsePropType resolves a canonical PT_* name. It returns PT_UNSPECIFIED and
// false for names it does not know.
func ParsePropType(s string) (PropType, bool) {
	for pt, name := range propTypeNames {
		if name == s {
			return pt, true
		}
	}
	return PT_UNSPECIFIED, false
}
