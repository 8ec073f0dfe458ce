// SPDX-License-Identifier: MIT

package mapi

import "github.com/google/uuid"

// Table bookmarks. User bookmarks issued by a table start above BOOKMARK_END.
const (
	BOOKMARK_BEGINNING uint32 = 0
	BOOKMARK_CURRENT   uint32 = 1
	BOOKMARK_END       uint32 = 2
)

// Sort directions for SSortOrder and the category ceiling for a sort order
// set.
const (
	TABLE_SORT_ASCEND  uint32 = 0
	TABLE_SORT_DESCEND uint32 = 1
	TABLE_SORT_COMBINE uint32 = 2

	TABLE_SORT_CATEG_MAX uint32 = 4
)

// PR_PRIORITY values. Signed: PRIO_NONURGENT is -1 on the wire.
const (
	PRIO_URGENT    int32 = 1
	PRIO_NORMAL    int32 = 0
	PRIO_NONURGENT int32 = -1
)

// PR_IMPORTANCE values.
const (
	IMPORTANCE_LOW    int32 = 0
	IMPORTANCE_NORMAL int32 = 1
	IMPORTANCE_HIGH   int32 = 2
)

// Object types reported in PR_OBJECT_TYPE.
const (
	MAPI_STORE    uint32 = 0x1
	MAPI_ADDRBOOK uint32 = 0x2
	MAPI_FOLDER   uint32 = 0x3
	MAPI_ABCONT   uint32 = 0x4
	MAPI_MESSAGE  uint32 = 0x5
	MAPI_MAILUSER uint32 = 0x6
	MAPI_ATTACH   uint32 = 0x7
	MAPI_DISTLIST uint32 = 0x8
	MAPI_PROFSECT uint32 = 0x9
	MAPI_STATUS   uint32 = 0xA
	MAPI_SESSION  uint32 = 0xB
	MAPI_FORMINFO uint32 = 0xC
)

// MAPIInitialize flags.
const (
	MAPI_MULTITHREAD_NOTIFICATIONS uint32 = 0x00000001
	MAPI_NO_COINIT                 uint32 = 0x00000008
	MAPI_NT_SERVICE                uint32 = 0x00000010
)

// MAPILogonEx flags.
const (
	MAPI_LOGON_UI          uint32 = 0x00000001
	MAPI_NEW_SESSION       uint32 = 0x00000002
	MAPI_ALLOW_OTHERS      uint32 = 0x00000008
	MAPI_EXPLICIT_PROFILE  uint32 = 0x00000010
	MAPI_EXTENDED          uint32 = 0x00000020
	MAPI_USE_DEFAULT       uint32 = 0x00000040
	MAPI_FORCE_DOWNLOAD    uint32 = 0x00001000
	MAPI_SERVICE_UI_ALWAYS uint32 = 0x00002000
	MAPI_NO_MAIL           uint32 = 0x00008000
	MAPI_PASSWORD_UI       uint32 = 0x00020000
	MAPI_TIMEOUT_SHORT     uint32 = 0x00100000
	MAPI_BG_SESSION        uint32 = 0x00200000
)

// MAPI_UNICODE selects PT_UNICODE strings on calls that accept either width.
const MAPI_UNICODE uint32 = 0x80000000

// Object open flags.
const (
	MAPI_MODIFY          uint32 = 0x00000001
	MAPI_DEFERRED_ERRORS uint32 = 0x00000008
	MAPI_BEST_ACCESS     uint32 = 0x00000010
)

// Message store open flags.
const (
	MDB_NO_DIALOG uint32 = 0x00000001
	MDB_WRITE     uint32 = 0x00000004
	MDB_TEMPORARY uint32 = 0x00000020
	MDB_NO_MAIL   uint32 = 0x00000080
	MDB_ONLINE    uint32 = 0x00000100
)

// Named property name kinds and the GetIDsFromNames create flag.
const (
	MNID_ID     uint32 = 0
	MNID_STRING uint32 = 1

	MAPI_CREATE uint32 = 2
)

// NamedPropIDFirst and NamedPropIDLast bound the property ID range handed
// out to named properties. IDs below the range belong to the fixed tag
// space; 0xFFFF is PROP_ID_INVALID and is never assigned.
const (
	NamedPropIDFirst uint16 = 0x8000
	NamedPropIDLast  uint16 = 0xFFFE

	PROP_ID_INVALID uint16 = 0xFFFF
)

// Well-known property set GUIDs.
var (
	PS_MAPI           = uuid.MustParse("00020328-0000-0000-c000-000000000046")
	PS_PUBLIC_STRINGS = uuid.MustParse("00020329-0000-0000-c000-000000000046")
)

// Restriction node types.
const (
	RES_AND            uint32 = 0
	RES_OR             uint32 = 1
	RES_NOT            uint32 = 2
	RES_CONTENT        uint32 = 3
	RES_PROPERTY       uint32 = 4
	RES_COMPAREPROPS   uint32 = 5
	RES_BITMASK        uint32 = 6
	RES_SIZE           uint32 = 7
	RES_EXIST          uint32 = 8
	RES_SUBRESTRICTION uint32 = 9
	RES_COMMENT        uint32 = 10
)

// Relational operators for property restrictions.
const (
	RELOP_LT uint32 = 0
	RELOP_LE uint32 = 1
	RELOP_GT uint32 = 2
	RELOP_GE uint32 = 3
	RELOP_EQ uint32 = 4
	RELOP_NE uint32 = 5
	RELOP_RE uint32 = 6
)

// Fuzzy level for content restrictions. The low word picks the match kind,
// the high word carries modifier flags.
const (
	FL_FULLSTRING uint32 = 0x00000000
	FL_SUBSTRING  uint32 = 0x00000001
	FL_PREFIX     uint32 = 0x00000002

	FL_IGNORECASE     uint32 = 0x00010000
	FL_IGNORENONSPACE uint32 = 0x00020000
	FL_LOOSE          uint32 = 0x00040000
)
