// SPDX-License-Identifier: MIT

package mapi

import "fmt"

// HResult is a 32-bit Windows HRESULT. Failure codes carry the severity bit
// (bit 31), which is why the underlying type is unsigned; use Signed for the
// two's-complement view the C headers print.
type HResult uint32

// Severity, facility and code masks per the HRESULT layout.
const (
	hresultSeverityMask HResult = 0x80000000
	hresultFacilityMask HResult = 0x07FF0000
	hresultCodeMask     HResult = 0x0000FFFF
)

// Generic COM results.
const (
	S_OK    HResult = 0x00000000
	S_FALSE HResult = 0x00000001

	E_FAIL         HResult = 0x80004005
	E_NOINTERFACE  HResult = 0x80004002
	E_POINTER      HResult = 0x80004003
	E_ABORT        HResult = 0x80004004
	E_UNEXPECTED   HResult = 0x8000FFFF
	E_OUTOFMEMORY  HResult = 0x8007000E
	E_INVALIDARG   HResult = 0x80070057
	E_ACCESSDENIED HResult = 0x80070005
)

// MAPI names for the shared COM results.
const (
	MAPI_E_CALL_FAILED             = E_FAIL
	MAPI_E_NOT_ENOUGH_MEMORY       = E_OUTOFMEMORY
	MAPI_E_INVALID_PARAMETER       = E_INVALIDARG
	MAPI_E_INTERFACE_NOT_SUPPORTED = E_NOINTERFACE
	MAPI_E_NO_ACCESS               = E_ACCESSDENIED
)

// MAPI failure codes (FACILITY_ITF).
const (
	MAPI_E_NO_SUPPORT           HResult = 0x80040102
	MAPI_E_BAD_CHARWIDTH        HResult = 0x80040103
	MAPI_E_STRING_TOO_LONG      HResult = 0x80040105
	MAPI_E_UNKNOWN_FLAGS        HResult = 0x80040106
	MAPI_E_INVALID_ENTRYID      HResult = 0x80040107
	MAPI_E_INVALID_OBJECT       HResult = 0x80040108
	MAPI_E_OBJECT_CHANGED       HResult = 0x80040109
	MAPI_E_OBJECT_DELETED       HResult = 0x8004010A
	MAPI_E_BUSY                 HResult = 0x8004010B
	MAPI_E_NOT_ENOUGH_DISK      HResult = 0x8004010D
	MAPI_E_NOT_ENOUGH_RESOURCES HResult = 0x8004010E
	MAPI_E_NOT_FOUND            HResult = 0x8004010F
	MAPI_E_VERSION              HResult = 0x80040110
	MAPI_E_LOGON_FAILED         HResult = 0x80040111
	MAPI_E_SESSION_LIMIT        HResult = 0x80040112
	MAPI_E_USER_CANCEL          HResult = 0x80040113
	MAPI_E_UNABLE_TO_ABORT      HResult = 0x80040114
	MAPI_E_NETWORK_ERROR        HResult = 0x80040115
	MAPI_E_DISK_ERROR           HResult = 0x80040116
	MAPI_E_TOO_COMPLEX          HResult = 0x80040117
	MAPI_E_BAD_COLUMN           HResult = 0x80040118
	MAPI_E_EXTENDED_ERROR       HResult = 0x80040119
	MAPI_E_COMPUTED             HResult = 0x8004011A
	MAPI_E_CORRUPT_DATA         HResult = 0x8004011B
	MAPI_E_UNCONFIGURED         HResult = 0x8004011C

	MAPI_E_END_OF_SESSION          HResult = 0x80040200
	MAPI_E_UNKNOWN_ENTRYID         HResult = 0x80040201
	MAPI_E_MISSING_REQUIRED_COLUMN HResult = 0x80040202

	MAPI_E_BAD_VALUE       HResult = 0x80040301
	MAPI_E_INVALID_TYPE    HResult = 0x80040302
	MAPI_E_TYPE_NO_SUPPORT HResult = 0x80040303
	MAPI_E_UNEXPECTED_TYPE HResult = 0x80040304
	MAPI_E_TOO_BIG         HResult = 0x80040305
	MAPI_E_DECLINE_COPY    HResult = 0x80040306
	MAPI_E_UNEXPECTED_ID   HResult = 0x80040307

	MAPI_E_UNABLE_TO_COMPLETE HResult = 0x80040400
	MAPI_E_TIMEOUT            HResult = 0x80040401
	MAPI_E_TABLE_EMPTY        HResult = 0x80040402
	MAPI_E_TABLE_TOO_BIG      HResult = 0x80040403
	MAPI_E_INVALID_BOOKMARK   HResult = 0x80040405

	MAPI_E_WAIT   HResult = 0x80040500
	MAPI_E_CANCEL HResult = 0x80040501
	MAPI_E_NOT_ME HResult = 0x80040502

	MAPI_E_CORRUPT_STORE   HResult = 0x80040600
	MAPI_E_NOT_IN_QUEUE    HResult = 0x80040601
	MAPI_E_NO_SUPPRESS     HResult = 0x80040602
	MAPI_E_COLLISION       HResult = 0x80040604
	MAPI_E_NOT_INITIALIZED HResult = 0x80040605
	MAPI_E_NON_STANDARD    HResult = 0x80040606
	MAPI_E_NO_RECIPIENTS   HResult = 0x80040607
	MAPI_E_SUBMITTED       HResult = 0x80040608
	MAPI_E_HAS_FOLDERS     HResult = 0x80040609
	MAPI_E_HAS_MESSAGES    HResult = 0x8004060A
	MAPI_E_FOLDER_CYCLE    HResult = 0x8004060B

	MAPI_E_AMBIGUOUS_RECIP HResult = 0x80040700

	MAPI_E_NAMED_PROP_QUOTA_EXCEEDED HResult = 0x80040900
)

// MAPI warning codes: success severity, nonzero code.
const (
	MAPI_W_ERRORS_RETURNED    HResult = 0x00040380
	MAPI_W_POSITION_CHANGED   HResult = 0x00040481
	MAPI_W_APPROX_COUNT       HResult = 0x00040482
	MAPI_W_CANCEL_MESSAGE     HResult = 0x00040580
	MAPI_W_PARTIAL_COMPLETION HResult = 0x00040680
)

// Failed reports whether the severity bit is set.
func (hr HResult) Failed() bool {
	return hr&hresultSeverityMask != 0
}

// Succeeded is the inverse of Failed; warnings count as success.
func (hr HResult) Succeeded() bool {
	return !hr.Failed()
}

// Facility extracts the HRESULT facility field.
func (hr HResult) Facility() uint16 {
	return uint16((hr & hresultFacilityMask) >> 16)
}

// Code extracts the HRESULT code field.
func (hr HResult) Code() uint16 {
	return uint16(hr & hresultCodeMask)
}

// Signed returns the two's-complement 32-bit view of the HRESULT.
func (hr HResult) Signed() int32 {
	return int32(hr)
}

// Name returns the canonical constant name, or "" for unknown values.
func (hr HResult) Name() string {
	return hresultNames[hr]
}

// Error implements the error interface so HRESULT failures flow through
// normal Go error handling. Success values stringify too, but only failures
// should be returned as errors.
func (hr HResult) Error() string {
	if name := hr.Name(); name != "" {
		return fmt.Sprintf("%s (0x%08X)", name, uint32(hr))
	}
	return fmt.Sprintf("hresult 0x%08X", uint32(hr))
}

func (hr HResult) String() string {
	return hr.Error()
}

var hresultNames = map[HResult]string{
	S_OK:           "S_OK",
	S_FALSE:        "S_FALSE",
	E_FAIL:         "MAPI_E_CALL_FAILED",
	E_NOINTERFACE:  "MAPI_E_INTERFACE_NOT_SUPPORTED",
	E_POINTER:      "E_POINTER",
	E_ABORT:        "E_ABORT",
	E_UNEXPECTED:   "E_UNEXPECTED",
	E_OUTOFMEMORY:  "MAPI_E_NOT_ENOUGH_MEMORY",
	E_INVALIDARG:   "MAPI_E_INVALID_PARAMETER",
	E_ACCESSDENIED: "MAPI_E_NO_ACCESS",

	MAPI_E_NO_SUPPORT:           "MAPI_E_NO_SUPPORT",
	MAPI_E_BAD_CHARWIDTH:        "MAPI_E_BAD_CHARWIDTH",
	MAPI_E_STRING_TOO_LONG:      "MAPI_E_STRING_TOO_LONG",
	MAPI_E_UNKNOWN_FLAGS:        "MAPI_E_UNKNOWN_FLAGS",
	MAPI_E_INVALID_ENTRYID:      "MAPI_E_INVALID_ENTRYID",
	MAPI_E_INVALID_OBJECT:       "MAPI_E_INVALID_OBJECT",
	MAPI_E_OBJECT_CHANGED:       "MAPI_E_OBJECT_CHANGED",
	MAPI_E_OBJECT_DELETED:       "MAPI_E_OBJECT_DELETED",
	MAPI_E_BUSY:                 "MAPI_E_BUSY",
	MAPI_E_NOT_ENOUGH_DISK:      "MAPI_E_NOT_ENOUGH_DISK",
	MAPI_E_NOT_ENOUGH_RESOURCES: "MAPI_E_NOT_ENOUGH_RESOURCES",
	MAPI_E_NOT_FOUND:            "MAPI_E_NOT_FOUND",
	MAPI_E_VERSION:              "MAPI_E_VERSION",
	MAPI_E_LOGON_FAILED:         "MAPI_E_LOGON_FAILED",
	MAPI_E_SESSION_LIMIT:        "MAPI_E_SESSION_LIMIT",
	MAPI_E_USER_CANCEL:          "MAPI_E_USER_CANCEL",
	MAPI_E_UNABLE_TO_ABORT:      "MAPI_E_UNABLE_TO_ABORT",
	MAPI_E_NETWORK_ERROR:        "MAPI_E_NETWORK_ERROR",
	MAPI_E_DISK_ERROR:           "MAPI_E_DISK_ERROR",
	MAPI_E_TOO_COMPLEX:          "MAPI_E_TOO_COMPLEX",
	MAPI_E_BAD_COLUMN:           "MAPI_E_BAD_COLUMN",
	MAPI_E_EXTENDED_ERROR:       "MAPI_E_EXTENDED_ERROR",
	MAPI_E_COMPUTED:             "MAPI_E_COMPUTED",
	MAPI_E_CORRUPT_DATA:         "MAPI_E_CORRUPT_DATA",
	MAPI_E_UNCONFIGURED:         "MAPI_E_UNCONFIGURED",

	MAPI_E_END_OF_SESSION:          "MAPI_E_END_OF_SESSION",
	MAPI_E_UNKNOWN_ENTRYID:         "MAPI_E_UNKNOWN_ENTRYID",
	MAPI_E_MISSING_REQUIRED_COLUMN: "MAPI_E_MISSING_REQUIRED_COLUMN",

	MAPI_E_BAD_VALUE:       "MAPI_E_BAD_VALUE",
	MAPI_E_INVALID_TYPE:    "MAPI_E_INVALID_TYPE",
	MAPI_E_TYPE_NO_SUPPORT: "MAPI_E_TYPE_NO_SUPPORT",
	MAPI_E_UNEXPECTED_TYPE: "MAPI_E_UNEXPECTED_TYPE",
	MAPI_E_TOO_BIG:         "MAPI_E_TOO_BIG",
	MAPI_E_DECLINE_COPY:    "MAPI_E_DECLINE_COPY",
	MAPI_E_UNEXPECTED_ID:   "MAPI_E_UNEXPECTED_ID",

	MAPI_E_UNABLE_TO_COMPLETE: "MAPI_E_UNABLE_TO_COMPLETE",
	MAPI_E_TIMEOUT:            "MAPI_E_TIMEOUT",
	MAPI_E_TABLE_EMPTY:        "MAPI_E_TABLE_EMPTY",
	MAPI_E_TABLE_TOO_BIG:      "MAPI_E_TABLE_TOO_BIG",
	MAPI_E_INVALID_BOOKMARK:   "MAPI_E_INVALID_BOOKMARK",

	MAPI_E_WAIT:   "MAPI_E_WAIT",
	MAPI_E_CANCEL: "MAPI_E_CANCEL",
	MAPI_E_NOT_ME: "MAPI_E_NOT_ME",

	MAPI_E_CORRUPT_STORE:   "MAPI_E_CORRUPT_STORE",
	MAPI_E_NOT_IN_QUEUE:    "MAPI_E_NOT_IN_QUEUE",
	MAPI_E_NO_SUPPRESS:     "MAPI_E_NO_SUPPRESS",
	MAPI_E_COLLISION:       "MAPI_E_COLLISION",
	MAPI_E_NOT_INITIALIZED: "MAPI_E_NOT_INITIALIZED",
	MAPI_E_NON_STANDARD:    "MAPI_E_NON_STANDARD",
	MAPI_E_NO_RECIPIENTS:   "MAPI_E_NO_RECIPIENTS",
	MAPI_E_SUBMITTED:       "MAPI_E_SUBMITTED",
	MAPI_E_HAS_FOLDERS:     "MAPI_E_HAS_FOLDERS",
	MAPI_E_HAS_MESSAGES:    "MAPI_E_HAS_MESSAGES",
	MAPI_E_FOLDER_CYCLE:    "MAPI_E_FOLDER_CYCLE",

	MAPI_E_AMBIGUOUS_RECIP: "MAPI_E_AMBIGUOUS_RECIP",

	MAPI_E_NAMED_PROP_QUOTA_EXCEEDED: "MAPI_E_NAMED_PROP_QUOTA_EXCEEDED",

	MAPI_W_ERRORS_RETURNED:    "MAPI_W_ERRORS_RETURNED",
	MAPI_W_POSITION_CHANGED:   "MAPI_W_POSITION_CHANGED",
	MAPI_W_APPROX_COUNT:       "MAPI_W_APPROX_COUNT",
	MAPI_W_CANCEL_MESSAGE:     "MAPI_W_CANCEL_MESSAGE",
	MAPI_W_PARTIAL_COMPLETION: "MAPI_W_PARTIAL_COMPLETION",
}

var _ error = HResult(0)
