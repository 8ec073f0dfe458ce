// SPDX-License-Identifier: MIT

package mapi

// Build-time pins for the constants the wire formats and table semantics
// depend on. Each pair of zero-length array declarations asserts one
// equality; if the constant drifts from its documented value, one side of
// the pair gets a negative length and the package no longer compiles.

// MAPI_E_NOT_FOUND is the HRESULT 0x8004010F.
var (
	_ [MAPI_E_NOT_FOUND - 0x8004010F]struct{}
	_ [0x8004010F - MAPI_E_NOT_FOUND]struct{}
)

// PT_MV_BINARY is 0x1102 (MV_FLAG | PT_BINARY).
var (
	_ [PT_MV_BINARY - 0x1102]struct{}
	_ [0x1102 - PT_MV_BINARY]struct{}
)

// PR_CONVERSATION_TOPIC_A is PROP_TAG(PT_STRING8, 0x0070) = 0x0070001E.
var (
	_ [PR_CONVERSATION_TOPIC_A - 0x0070001E]struct{}
	_ [0x0070001E - PR_CONVERSATION_TOPIC_A]struct{}
)

// BOOKMARK_BEGINNING is 0.
var (
	_ [BOOKMARK_BEGINNING - 0]struct{}
	_ [0 - BOOKMARK_BEGINNING]struct{}
)

// TABLE_SORT_CATEG_MAX is 4.
var (
	_ [TABLE_SORT_CATEG_MAX - 4]struct{}
	_ [4 - TABLE_SORT_CATEG_MAX]struct{}
)

// PRIO_NONURGENT is -1 as a signed 32-bit value.
var (
	_ [PRIO_NONURGENT + 1]struct{}
	_ [-1 - PRIO_NONURGENT]struct{}
)
