// SPDX-License-Identifier: MIT

// Package propval models typed MAPI property values and their portable
// binary encoding. A Value pairs a property tag with exactly one variant;
// the constructors coerce the tag's type word so the two never disagree.
package propval

import (
	"bytes"
	"cmp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olmapi/olmapi/internal/mapi"
)

// Value is one property: a tag plus the variant its type selects.
type Value struct {
	tag  mapi.PropTag
	data any
}

// Tag returns the property tag.
func (v Value) Tag() mapi.PropTag { return v.tag }

// Type returns the tag's property type.
func (v Value) Type() mapi.PropType { return v.tag.Type() }

// Data returns the raw variant. Callers that know the type should prefer the
// typed getters.
func (v Value) Data() any { return v.data }

// IsNull reports whether the value is a PT_NULL placeholder.
func (v Value) IsNull() bool { return v.tag.Type().Base() == mapi.PT_NULL }

// Null builds a PT_NULL placeholder for the tag's property ID.
func Null(tag mapi.PropTag) Value {
	return Value{tag: tag.WithType(mapi.PT_NULL)}
}

// Int16 builds a PT_I2 value.
func Int16(tag mapi.PropTag, v int16) Value {
	return Value{tag: tag.WithType(mapi.PT_I2), data: v}
}

// Int32 builds a PT_LONG value.
func Int32(tag mapi.PropTag, v int32) Value {
	return Value{tag: tag.WithType(mapi.PT_LONG), data: v}
}

// Float32 builds a PT_R4 value.
func Float32(tag mapi.PropTag, v float32) Value {
	return Value{tag: tag.WithType(mapi.PT_R4), data: v}
}

// Float64 builds a PT_DOUBLE value.
func Float64(tag mapi.PropTag, v float64) Value {
	return Value{tag: tag.WithType(mapi.PT_DOUBLE), data: v}
}

// Currency builds a PT_CURRENCY value; v is the raw 64-bit amount scaled by
// 10000 as in the CY type.
func Currency(tag mapi.PropTag, v int64) Value {
	return Value{tag: tag.WithType(mapi.PT_CURRENCY), data: v}
}

// AppTime builds a PT_APPTIME value (OLE automation date).
func AppTime(tag mapi.PropTag, v float64) Value {
	return Value{tag: tag.WithType(mapi.PT_APPTIME), data: v}
}

// Bool builds a PT_BOOLEAN value.
func Bool(tag mapi.PropTag, v bool) Value {
	return Value{tag: tag.WithType(mapi.PT_BOOLEAN), data: v}
}

// Int64 builds a PT_I8 value.
func Int64(tag mapi.PropTag, v int64) Value {
	return Value{tag: tag.WithType(mapi.PT_I8), data: v}
}

// String8 builds a PT_STRING8 value.
func String8(tag mapi.PropTag, v string) Value {
	return Value{tag: tag.WithType(mapi.PT_STRING8), data: v}
}

// Unicode builds a PT_UNICODE value.
func Unicode(tag mapi.PropTag, v string) Value {
	return Value{tag: tag.WithType(mapi.PT_UNICODE), data: v}
}

// SysTime builds a PT_SYSTIME value.
func SysTime(tag mapi.PropTag, v time.Time) Value {
	return Value{tag: tag.WithType(mapi.PT_SYSTIME), data: v.UTC()}
}

// CLSID builds a PT_CLSID value.
func CLSID(tag mapi.PropTag, v uuid.UUID) Value {
	return Value{tag: tag.WithType(mapi.PT_CLSID), data: v}
}

// Binary builds a PT_BINARY value. The slice is not copied.
func Binary(tag mapi.PropTag, v []byte) Value {
	return Value{tag: tag.WithType(mapi.PT_BINARY), data: v}
}

// Err builds a PT_ERROR value carrying an HRESULT, the MAPI convention for
// per-column failures in table rows.
func Err(tag mapi.PropTag, hr mapi.HResult) Value {
	return Value{tag: tag.WithType(mapi.PT_ERROR), data: hr}
}

// Object builds a PT_OBJECT value. Objects have no byte representation and
// are rejected by the codec.
func Object(tag mapi.PropTag, v int32) Value {
	return Value{tag: tag.WithType(mapi.PT_OBJECT), data: v}
}

// Multi-value constructors. Slices are not copied.

func MVInt16(tag mapi.PropTag, v []int16) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_I2), data: v}
}

func MVInt32(tag mapi.PropTag, v []int32) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_LONG), data: v}
}

func MVFloat32(tag mapi.PropTag, v []float32) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_R4), data: v}
}

func MVFloat64(tag mapi.PropTag, v []float64) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_DOUBLE), data: v}
}

func MVCurrency(tag mapi.PropTag, v []int64) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_CURRENCY), data: v}
}

func MVAppTime(tag mapi.PropTag, v []float64) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_APPTIME), data: v}
}

func MVInt64(tag mapi.PropTag, v []int64) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_I8), data: v}
}

func MVString8(tag mapi.PropTag, v []string) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_STRING8), data: v}
}

func MVUnicode(tag mapi.PropTag, v []string) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_UNICODE), data: v}
}

func MVSysTime(tag mapi.PropTag, v []time.Time) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_SYSTIME), data: v}
}

func MVCLSID(tag mapi.PropTag, v []uuid.UUID) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_CLSID), data: v}
}

func MVBinary(tag mapi.PropTag, v [][]byte) Value {
	return Value{tag: tag.WithType(mapi.PT_MV_BINARY), data: v}
}

// Typed getters. Each reports false when the value's type is something else.

func (v Value) Int16() (int16, bool) {
	x, ok := v.data.(int16)
	return x, ok && v.Type() == mapi.PT_I2
}

func (v Value) Int32() (int32, bool) {
	x, ok := v.data.(int32)
	return x, ok && v.Type() == mapi.PT_LONG
}

func (v Value) Float32() (float32, bool) {
	x, ok := v.data.(float32)
	return x, ok && v.Type() == mapi.PT_R4
}

func (v Value) Float64() (float64, bool) {
	x, ok := v.data.(float64)
	return x, ok && v.Type() == mapi.PT_DOUBLE
}

func (v Value) Currency() (int64, bool) {
	x, ok := v.data.(int64)
	return x, ok && v.Type() == mapi.PT_CURRENCY
}

func (v Value) AppTime() (float64, bool) {
	x, ok := v.data.(float64)
	return x, ok && v.Type() == mapi.PT_APPTIME
}

func (v Value) Bool() (bool, bool) {
	x, ok := v.data.(bool)
	return x, ok && v.Type() == mapi.PT_BOOLEAN
}

func (v Value) Int64() (int64, bool) {
	x, ok := v.data.(int64)
	return x, ok && v.Type() == mapi.PT_I8
}

// Text returns the text of a PT_STRING8 or PT_UNICODE value.
func (v Value) Text() (string, bool) {
	x, ok := v.data.(string)
	return x, ok && (v.Type() == mapi.PT_STRING8 || v.Type() == mapi.PT_UNICODE)
}

func (v Value) SysTime() (time.Time, bool) {
	x, ok := v.data.(time.Time)
	return x, ok && v.Type() == mapi.PT_SYSTIME
}

func (v Value) CLSID() (uuid.UUID, bool) {
	x, ok := v.data.(uuid.UUID)
	return x, ok && v.Type() == mapi.PT_CLSID
}

func (v Value) Binary() ([]byte, bool) {
	x, ok := v.data.([]byte)
	return x, ok && v.Type() == mapi.PT_BINARY
}

func (v Value) HResult() (mapi.HResult, bool) {
	x, ok := v.data.(mapi.HResult)
	return x, ok && v.Type() == mapi.PT_ERROR
}

// Compare orders two values of the same property type: negative when a sorts
// before b. Values of different types compare by type word so sorting stays
// total. Null sorts first.
func Compare(a, b Value) int {
	if a.Type() != b.Type() {
		return int(a.Type()) - int(b.Type())
	}
	switch a.Type().Base() {
	case mapi.PT_NULL:
		return 0
	case mapi.PT_I2:
		x, _ := a.Int16()
		y, _ := b.Int16()
		return cmp.Compare(x, y)
	case mapi.PT_LONG:
		x, _ := a.Int32()
		y, _ := b.Int32()
		return cmp.Compare(x, y)
	case mapi.PT_R4:
		x, _ := a.Float32()
		y, _ := b.Float32()
		return cmp.Compare(x, y)
	case mapi.PT_DOUBLE:
		x, _ := a.Float64()
		y, _ := b.Float64()
		return cmp.Compare(x, y)
	case mapi.PT_CURRENCY:
		x, _ := a.Currency()
		y, _ := b.Currency()
		return cmp.Compare(x, y)
	case mapi.PT_APPTIME:
		x, _ := a.AppTime()
		y, _ := b.AppTime()
		return cmp.Compare(x, y)
	case mapi.PT_BOOLEAN:
		x, _ := a.Bool()
		y, _ := b.Bool()
		return cmpBool(x, y)
	case mapi.PT_I8:
		x, _ := a.Int64()
		y, _ := b.Int64()
		return cmp.Compare(x, y)
	case mapi.PT_STRING8, mapi.PT_UNICODE:
		x, _ := a.Text()
		y, _ := b.Text()
		return strings.Compare(x, y)
	case mapi.PT_SYSTIME:
		x, _ := a.SysTime()
		y, _ := b.SysTime()
		return x.Compare(y)
	case mapi.PT_CLSID:
		x, _ := a.CLSID()
		y, _ := b.CLSID()
		return bytes.Compare(x[:], y[:])
	case mapi.PT_BINARY:
		x, _ := a.Binary()
		y, _ := b.Binary()
		return bytes.Compare(x, y)
	case mapi.PT_ERROR:
		x, _ := a.HResult()
		y, _ := b.HResult()
		return cmp.Compare(uint32(x), uint32(y))
	default:
		return 0
	}
}

func cmpBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}
