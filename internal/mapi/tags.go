// SPDX-License-Identifier: MIT

package mapi

// Well-known property tags, composed as PROP_TAG(type, id). The _A/_W pairs
// differ only in string type (PT_STRING8 vs PT_UNICODE).
const (
	PR_NULL PropTag = PropTag(PT_NULL)

	PR_IMPORTANCE         PropTag = 0x0017<<16 | PropTag(PT_LONG)
	PR_MESSAGE_CLASS_A    PropTag = 0x001A<<16 | PropTag(PT_STRING8)
	PR_MESSAGE_CLASS_W    PropTag = 0x001A<<16 | PropTag(PT_UNICODE)
	PR_PRIORITY           PropTag = 0x0026<<16 | PropTag(PT_LONG)
	PR_SUBJECT_A          PropTag = 0x0037<<16 | PropTag(PT_STRING8)
	PR_SUBJECT_W          PropTag = 0x0037<<16 | PropTag(PT_UNICODE)
	PR_CLIENT_SUBMIT_TIME PropTag = 0x0039<<16 | PropTag(PT_SYSTIME)

	PR_CONVERSATION_TOPIC_A PropTag = 0x0070<<16 | PropTag(PT_STRING8)
	PR_CONVERSATION_TOPIC_W PropTag = 0x0070<<16 | PropTag(PT_UNICODE)
	PR_CONVERSATION_INDEX   PropTag = 0x0071<<16 | PropTag(PT_BINARY)

	PR_SENDER_NAME_A PropTag = 0x0C1A<<16 | PropTag(PT_STRING8)
	PR_SENDER_NAME_W PropTag = 0x0C1A<<16 | PropTag(PT_UNICODE)

	PR_MESSAGE_FLAGS PropTag = 0x0E07<<16 | PropTag(PT_LONG)
	PR_MESSAGE_SIZE  PropTag = 0x0E08<<16 | PropTag(PT_LONG)

	PR_BODY_A PropTag = 0x1000<<16 | PropTag(PT_STRING8)
	PR_BODY_W PropTag = 0x1000<<16 | PropTag(PT_UNICODE)

	PR_INSTANCE_KEY PropTag = 0x0FF6<<16 | PropTag(PT_BINARY)
	PR_RECORD_KEY   PropTag = 0x0FF9<<16 | PropTag(PT_BINARY)
	PR_OBJECT_TYPE  PropTag = 0x0FFE<<16 | PropTag(PT_LONG)
	PR_ENTRYID      PropTag = 0x0FFF<<16 | PropTag(PT_BINARY)

	PR_ROWID           PropTag = 0x3000<<16 | PropTag(PT_LONG)
	PR_DISPLAY_NAME_A  PropTag = 0x3001<<16 | PropTag(PT_STRING8)
	PR_DISPLAY_NAME_W  PropTag = 0x3001<<16 | PropTag(PT_UNICODE)
	PR_EMAIL_ADDRESS_A PropTag = 0x3003<<16 | PropTag(PT_STRING8)
	PR_EMAIL_ADDRESS_W PropTag = 0x3003<<16 | PropTag(PT_UNICODE)
	PR_SEARCH_KEY      PropTag = 0x300B<<16 | PropTag(PT_BINARY)

	PR_DEFAULT_STORE      PropTag = 0x3400<<16 | PropTag(PT_BOOLEAN)
	PR_STORE_SUPPORT_MASK PropTag = 0x340D<<16 | PropTag(PT_LONG)
)
