// SPDX-License-Identifier: MIT

// Package mapi defines the MAPI constant tables and base value types the rest
// of the module builds on: property types, property tags, HRESULT codes,
// table/bookmark/sort constants and session flags.
//
// Constant names follow the MAPI headers (PT_*, PR_*, MAPI_E_*) so every
// value can be cross-checked against published documentation. The pinned
// values in buildcheck.go fail the build if one of the load-bearing constants
// drifts.
package mapi

// PROP_TAG bit layout: the high word is the property ID, the low word the
// property type.
const (
	PROP_ID_MASK   uint32 = 0xFFFF0000
	PROP_TYPE_MASK uint32 = 0x0000FFFF
)

// PropTag is a 32-bit MAPI property tag.
type PropTag uint32

// NewTag combines a property type and ID into a tag. Equivalent to the MAPI
// PROP_TAG macro.
func NewTag(t PropType, id uint16) PropTag {
	return PropTag(uint32(id)<<16 | uint32(t))
}

// ID extracts the PROP_ID portion of the tag.
func (t PropTag) ID() uint16 {
	return uint16((uint32(t) & PROP_ID_MASK) >> 16)
}

// Type extracts the PROP_TYPE portion of the tag.
func (t PropTag) Type() PropType {
	return PropType(uint32(t) & PROP_TYPE_MASK)
}

// WithType replaces the PROP_TYPE portion keeping the ID. Equivalent to the
// MAPI CHANGE_PROP_TYPE macro.
func (t PropTag) WithType(pt PropType) PropTag {
	return NewTag(pt, t.ID())
}

// IsMultiValued reports whether the tag's type carries MV_FLAG.
func (t PropTag) IsMultiValued() bool {
	return t.Type().IsMultiValued()
}

// IsNamed reports whether the tag sits in the named-property ID range.
func (t PropTag) IsNamed() bool {
	return t.ID() >= NamedPropIDFirst
}

// PropType is the 16-bit property type held in a tag's low word.
type PropType uint16

// Normalize maps unrecognized property types to PT_UNSPECIFIED. MV_INSTANCE
// is ignored during the check and preserved in the result.
func (pt PropType) Normalize() PropType {
	switch pt &^ PropType(MV_INSTANCE) {
	case PT_NULL, PT_I2, PT_LONG, PT_PTR, PT_R4, PT_DOUBLE, PT_BOOLEAN,
		PT_CURRENCY, PT_APPTIME, PT_SYSTIME, PT_STRING8, PT_BINARY,
		PT_UNICODE, PT_CLSID, PT_I8, PT_ERROR, PT_OBJECT,
		PT_MV_I2, PT_MV_LONG, PT_MV_R4, PT_MV_DOUBLE, PT_MV_CURRENCY,
		PT_MV_APPTIME, PT_MV_SYSTIME, PT_MV_BINARY, PT_MV_STRING8,
		PT_MV_UNICODE, PT_MV_CLSID, PT_MV_I8:
		return pt
	default:
		return PT_UNSPECIFIED
	}
}

// IsMultiValued reports whether MV_FLAG is set.
func (pt PropType) IsMultiValued() bool {
	return uint32(pt)&MV_FLAG != 0
}

// Base returns the type without MV_FLAG and MV_INSTANCE.
func (pt PropType) Base() PropType {
	return pt &^ PropType(MV_FLAG|MV_INSTANCE)
}

// WithFlags sets property type flag bits such as MV_FLAG.
func (pt PropType) WithFlags(mask uint32) PropType {
	return pt | PropType(mask&PROP_TYPE_MASK)
}

// WithoutFlags clears property type flag bits.
func (pt PropType) WithoutFlags(mask uint32) PropType {
	return pt &^ PropType(mask&PROP_TYPE_MASK)
}
