// SPDX-License-Identifier: MIT

package propval

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/olmapi/olmapi/internal/mapi"
)

// Wire format: little-endian scalars; booleans as uint16; strings and
// binaries prefixed with a uint32 byte count (PT_UNICODE as UTF-16LE);
// PT_SYSTIME as FILETIME; PT_CLSID in GUID byte order. Multi-values carry a
// uint32 element count before the elements.

// Decode limits. Counts beyond these fail with MAPI_E_TOO_BIG before any
// allocation happens.
const (
	maxElementCount = 1 << 20
	maxByteCount    = 16 << 20
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Encode writes the value's payload. The tag itself is not written; framing
// that pairs tags with payloads is the caller's concern.
func Encode(w io.Writer, v Value) error {
	pt := v.Type().WithoutFlags(mapi.MV_INSTANCE)
	if pt.IsMultiValued() {
		return encodeMV(w, pt, v)
	}
	return encodeScalar(w, pt, v.data)
}

func encodeScalar(w io.Writer, pt mapi.PropType, data any) error {
	switch pt {
	case mapi.PT_NULL:
		return nil
	case mapi.PT_UNSPECIFIED:
		return mapi.MAPI_E_INVALID_TYPE
	case mapi.PT_OBJECT, mapi.PT_PTR:
		return mapi.MAPI_E_NO_SUPPORT
	}
	if data == nil {
		return mapi.E_POINTER
	}
	switch pt {
	case mapi.PT_I2:
		return putScalar(w, data.(int16))
	case mapi.PT_LONG:
		return putScalar(w, data.(int32))
	case mapi.PT_R4:
		return putScalar(w, data.(float32))
	case mapi.PT_DOUBLE, mapi.PT_APPTIME:
		return putScalar(w, data.(float64))
	case mapi.PT_CURRENCY, mapi.PT_I8:
		return putScalar(w, data.(int64))
	case mapi.PT_BOOLEAN:
		var u uint16
		if data.(bool) {
			u = 1
		}
		return putScalar(w, u)
	case mapi.PT_ERROR:
		return putScalar(w, uint32(data.(mapi.HResult)))
	case mapi.PT_SYSTIME:
		return putScalar(w, FileTime(data.(time.Time)))
	case mapi.PT_CLSID:
		wire := guidToWire(data.(uuid.UUID))
		_, err := w.Write(wire[:])
		return err
	case mapi.PT_STRING8:
		return putBytes(w, []byte(data.(string)))
	case mapi.PT_UNICODE:
		b, err := utf16le.NewEncoder().Bytes([]byte(data.(string)))
		if err != nil {
			return fmt.Errorf("propval: utf-16 encode: %w", err)
		}
		return putBytes(w, b)
	case mapi.PT_BINARY:
		return putBytes(w, data.([]byte))
	default:
		return mapi.MAPI_E_INVALID_TYPE
	}
}

func encodeMV(w io.Writer, pt mapi.PropType, v Value) error {
	if v.data == nil {
		return mapi.E_POINTER
	}
	base := pt.Base()
	switch base {
	case mapi.PT_I2:
		return encodeSlice(w, v.data.([]int16), func(x int16) error { return putScalar(w, x) })
	case mapi.PT_LONG:
		return encodeSlice(w, v.data.([]int32), func(x int32) error { return putScalar(w, x) })
	case mapi.PT_R4:
		return encodeSlice(w, v.data.([]float32), func(x float32) error { return putScalar(w, x) })
	case mapi.PT_DOUBLE, mapi.PT_APPTIME:
		return encodeSlice(w, v.data.([]float64), func(x float64) error { return putScalar(w, x) })
	case mapi.PT_CURRENCY, mapi.PT_I8:
		return encodeSlice(w, v.data.([]int64), func(x int64) error { return putScalar(w, x) })
	case mapi.PT_SYSTIME:
		return encodeSlice(w, v.data.([]time.Time), func(x time.Time) error { return putScalar(w, FileTime(x)) })
	case mapi.PT_CLSID:
		return encodeSlice(w, v.data.([]uuid.UUID), func(x uuid.UUID) error {
			wire := guidToWire(x)
			_, err := w.Write(wire[:])
			return err
		})
	case mapi.PT_STRING8:
		return encodeSlice(w, v.data.([]string), func(x string) error { return putBytes(w, []byte(x)) })
	case mapi.PT_UNICODE:
		return encodeSlice(w, v.data.([]string), func(x string) error {
			b, err := utf16le.NewEncoder().Bytes([]byte(x))
			if err != nil {
				return fmt.Errorf("propval: utf-16 encode: %w", err)
			}
			return putBytes(w, b)
		})
	case mapi.PT_BINARY:
		return encodeSlice(w, v.data.([][]byte), func(x []byte) error { return putBytes(w, x) })
	default:
		return mapi.MAPI_E_INVALID_TYPE
	}
}

func encodeSlice[E any](w io.Writer, s []E, elem func(E) error) error {
	if err := putScalar(w, uint32(len(s))); err != nil {
		return err
	}
	for _, e := range s {
		if err := elem(e); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads one payload for the tag's property type. MV_INSTANCE on the
// tag is ignored; an unknown type fails with MAPI_E_INVALID_TYPE.
func Decode(r io.Reader, tag mapi.PropTag) (Value, error) {
	pt := tag.Type().WithoutFlags(mapi.MV_INSTANCE)
	if pt.Normalize() == mapi.PT_UNSPECIFIED {
		return Value{}, mapi.MAPI_E_INVALID_TYPE
	}
	if pt.IsMultiValued() {
		return decodeMV(r, tag, pt.Base())
	}
	return decodeScalar(r, tag, pt)
}

func decodeScalar(r io.Reader, tag mapi.PropTag, pt mapi.PropType) (Value, error) {
	switch pt {
	case mapi.PT_NULL:
		return Null(tag), nil
	case mapi.PT_OBJECT, mapi.PT_PTR:
		return Value{}, mapi.MAPI_E_NO_SUPPORT
	case mapi.PT_I2:
		var x int16
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Int16(tag, x), nil
	case mapi.PT_LONG:
		var x int32
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Int32(tag, x), nil
	case mapi.PT_R4:
		var x float32
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Float32(tag, x), nil
	case mapi.PT_DOUBLE:
		var x float64
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Float64(tag, x), nil
	case mapi.PT_APPTIME:
		var x float64
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return AppTime(tag, x), nil
	case mapi.PT_CURRENCY:
		var x int64
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Currency(tag, x), nil
	case mapi.PT_I8:
		var x int64
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Int64(tag, x), nil
	case mapi.PT_BOOLEAN:
		var x uint16
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Bool(tag, x != 0), nil
	case mapi.PT_ERROR:
		var x uint32
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return Err(tag, mapi.HResult(x)), nil
	case mapi.PT_SYSTIME:
		var x uint64
		if err := getScalar(r, &x); err != nil {
			return Value{}, err
		}
		return SysTime(tag, FileTimeToTime(x)), nil
	case mapi.PT_CLSID:
		var wire [16]byte
		if _, err := io.ReadFull(r, wire[:]); err != nil {
			return Value{}, err
		}
		return CLSID(tag, guidFromWire(wire)), nil
	case mapi.PT_STRING8:
		b, err := getBytes(r)
		if err != nil {
			return Value{}, err
		}
		return String8(tag, string(b)), nil
	case mapi.PT_UNICODE:
		b, err := getBytes(r)
		if err != nil {
			return Value{}, err
		}
		s, err := utf16le.NewDecoder().Bytes(b)
		if err != nil {
			return Value{}, fmt.Errorf("propval: utf-16 decode: %w", err)
		}
		return Unicode(tag, string(s)), nil
	case mapi.PT_BINARY:
		b, err := getBytes(r)
		if err != nil {
			return Value{}, err
		}
		return Binary(tag, b), nil
	default:
		return Value{}, mapi.MAPI_E_INVALID_TYPE
	}
}

func decodeMV(r io.Reader, tag mapi.PropTag, base mapi.PropType) (Value, error) {
	n, err := getCount(r, maxElementCount)
	if err != nil {
		return Value{}, err
	}
	switch base {
	case mapi.PT_I2:
		return decodeSlice(r, n, func() (int16, error) {
			var x int16
			err := getScalar(r, &x)
			return x, err
		}, func(s []int16) Value { return MVInt16(tag, s) })
	case mapi.PT_LONG:
		return decodeSlice(r, n, func() (int32, error) {
			var x int32
			err := getScalar(r, &x)
			return x, err
		}, func(s []int32) Value { return MVInt32(tag, s) })
	case mapi.PT_R4:
		return decodeSlice(r, n, func() (float32, error) {
			var x float32
			err := getScalar(r, &x)
			return x, err
		}, func(s []float32) Value { return MVFloat32(tag, s) })
	case mapi.PT_DOUBLE:
		return decodeSlice(r, n, func() (float64, error) {
			var x float64
			err := getScalar(r, &x)
			return x, err
		}, func(s []float64) Value { return MVFloat64(tag, s) })
	case mapi.PT_APPTIME:
		return decodeSlice(r, n, func() (float64, error) {
			var x float64
			err := getScalar(r, &x)
			return x, err
		}, func(s []float64) Value { return MVAppTime(tag, s) })
	case mapi.PT_CURRENCY:
		return decodeSlice(r, n, func() (int64, error) {
			var x int64
			err := getScalar(r, &x)
			return x, err
		}, func(s []int64) Value { return MVCurrency(tag, s) })
	case mapi.PT_I8:
		return decodeSlice(r, n, func() (int64, error) {
			var x int64
			err := getScalar(r, &x)
			return x, err
		}, func(s []int64) Value { return MVInt64(tag, s) })
	case mapi.PT_SYSTIME:
		return decodeSlice(r, n, func() (time.Time, error) {
			var x uint64
			err := getScalar(r, &x)
			return FileTimeToTime(x), err
		}, func(s []time.Time) Value { return MVSysTime(tag, s) })
	case mapi.PT_CLSID:
		return decodeSlice(r, n, func() (uuid.UUID, error) {
			var wire [16]byte
			_, err := io.ReadFull(r, wire[:])
			return guidFromWire(wire), err
		}, func(s []uuid.UUID) Value { return MVCLSID(tag, s) })
	case mapi.PT_STRING8:
		return decodeSlice(r, n, func() (string, error) {
			b, err := getBytes(r)
			return string(b), err
		}, func(s []string) Value { return MVString8(tag, s) })
	case mapi.PT_UNICODE:
		return decodeSlice(r, n, func() (string, error) {
			b, err := getBytes(r)
			if err != nil {
				return "", err
			}
			s, err := utf16le.NewDecoder().Bytes(b)
			return string(s), err
		}, func(s []string) Value { return MVUnicode(tag, s) })
	case mapi.PT_BINARY:
		return decodeSlice(r, n, func() ([]byte, error) {
			return getBytes(r)
		}, func(s [][]byte) Value { return MVBinary(tag, s) })
	default:
		return Value{}, mapi.MAPI_E_INVALID_TYPE
	}
}

func decodeSlice[E any](r io.Reader, n uint32, elem func() (E, error), wrap func([]E) Value) (Value, error) {
	s := make([]E, 0, n)
	for i := uint32(0); i < n; i++ {
		e, err := elem()
		if err != nil {
			return Value{}, err
		}
		s = append(s, e)
	}
	return wrap(s), nil
}

func putScalar(w io.Writer, x any) error {
	return binary.Write(w, binary.LittleEndian, x)
}

func getScalar(r io.Reader, x any) error {
	return binary.Read(r, binary.LittleEndian, x)
}

func putBytes(w io.Writer, b []byte) error {
	if len(b) > maxByteCount {
		return mapi.MAPI_E_STRING_TOO_LONG
	}
	if err := putScalar(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func getBytes(r io.Reader) ([]byte, error) {
	n, err := getCount(r, maxByteCount)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func getCount(r io.Reader, limit uint32) (uint32, error) {
	var n uint32
	if err := getScalar(r, &n); err != nil {
		return 0, err
	}
	if n > limit {
		return 0, mapi.MAPI_E_TOO_BIG
	}
	return n, nil
}

// GUIDs travel in Microsoft order: the first three fields little-endian, the
// rest as-is. uuid.UUID stores big-endian throughout.
func guidToWire(u uuid.UUID) [16]byte {
	var b [16]byte
	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	copy(b[8:], u[8:])
	return b
}

func guidFromWire(b [16]byte) uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:])
	return u
}
