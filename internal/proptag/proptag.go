// SPDX-License-Identifier: MIT

// Package proptag resolves property tags to their canonical PR_* names and
// back, and renders tag metadata for diagnostics and the HTTP API.
package proptag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/olmapi/olmapi/internal/mapi"
)

var tagNames = map[mapi.PropTag]string{
	mapi.PR_NULL:                 "PR_NULL",
	mapi.PR_IMPORTANCE:           "PR_IMPORTANCE",
	mapi.PR_MESSAGE_CLASS_A:      "PR_MESSAGE_CLASS_A",
	mapi.PR_MESSAGE_CLASS_W:      "PR_MESSAGE_CLASS_W",
	mapi.PR_PRIORITY:             "PR_PRIORITY",
	mapi.PR_SUBJECT_A:            "PR_SUBJECT_A",
	mapi.PR_SUBJECT_W:            "PR_SUBJECT_W",
	mapi.PR_CLIENT_SUBMIT_TIME:   "PR_CLIENT_SUBMIT_TIME",
	mapi.PR_CONVERSATION_TOPIC_A: "PR_CONVERSATION_TOPIC_A",
	mapi.PR_CONVERSATION_TOPIC_W: "PR_CONVERSATION_TOPIC_W",
	mapi.PR_CONVERSATION_INDEX:   "PR_CONVERSATION_INDEX",
	mapi.PR_SENDER_NAME_A:        "PR_SENDER_NAME_A",
	mapi.PR_SENDER_NAME_W:        "PR_SENDER_NAME_W",
	mapi.PR_MESSAGE_FLAGS:        "PR_MESSAGE_FLAGS",
	mapi.PR_MESSAGE_SIZE:         "PR_MESSAGE_SIZE",
	mapi.PR_BODY_A:               "PR_BODY_A",
	mapi.PR_BODY_W:               "PR_BODY_W",
	mapi.PR_INSTANCE_KEY:         "PR_INSTANCE_KEY",
	mapi.PR_RECORD_KEY:           "PR_RECORD_KEY",
	mapi.PR_OBJECT_TYPE:          "PR_OBJECT_TYPE",
	mapi.PR_ENTRYID:              "PR_ENTRYID",
	mapi.PR_ROWID:                "PR_ROWID",
	mapi.PR_DISPLAY_NAME_A:       "PR_DISPLAY_NAME_A",
	mapi.PR_DISPLAY_NAME_W:       "PR_DISPLAY_NAME_W",
	mapi.PR_EMAIL_ADDRESS_A:      "PR_EMAIL_ADDRESS_A",
	mapi.PR_EMAIL_ADDRESS_W:      "PR_EMAIL_ADDRESS_W",
	mapi.PR_SEARCH_KEY:           "PR_SEARCH_KEY",
	mapi.PR_DEFAULT_STORE:        "PR_DEFAULT_STORE",
	mapi.PR_STORE_SUPPORT_MASK:   "PR_STORE_SUPPORT_MASK",
}

var nameTags = make(map[string]mapi.PropTag, len(tagNames))

func init() {
	for tag, name := range tagNames {
		nameTags[name] = tag
	}
}

// Name returns the canonical PR_* name, or "" when the tag is not in the
// registry.
func Name(tag mapi.PropTag) string {
	return tagNames[tag]
}

// Format renders a tag as its canonical name, falling back to the 8-digit
// hex form.
func Format(tag mapi.PropTag) string {
	if name := tagNames[tag]; name != "" {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(tag))
}

// Parse resolves a canonical PR_* name or a hex tag literal such as
// "0x0070001E".
func Parse(s string) (mapi.PropTag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("proptag: empty tag")
	}
	if tag, ok := nameTags[s]; ok {
		return tag, nil
	}
	if strings.HasPrefix(s, "PR_") {
		return 0, fmt.Errorf("proptag: unknown property name %q", s)
	}
	hexs := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(hexs, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("proptag: %q is neither a PR_* name nor a hex tag", s)
	}
	return mapi.PropTag(v), nil
}

// Info describes a property tag for diagnostics and API responses.
type Info struct {
	Tag         mapi.PropTag  `json:"tag"`
	Hex         string        `json:"hex"`
	ID          uint16        `json:"id"`
	Type        mapi.PropType `json:"type"`
	TypeName    string        `json:"typeName"`
	Name        string        `json:"name,omitempty"`
	MultiValued bool          `json:"multiValued"`
	Named       bool          `json:"named"`
}

// Describe collects the tag's metadata.
func Describe(tag mapi.PropTag) Info {
	return Info{
		Tag:         tag,
		Hex:         fmt.Sprintf("0x%08X", uint32(tag)),
		ID:          tag.ID(),
		Type:        tag.Type(),
		TypeName:    tag.Type().String(),
		Name:        Name(tag),
		MultiValued: tag.IsMultiValued(),
		Named:       tag.IsNamed(),
	}
}

// ByType lists the registered tags carrying the given property type, sorted
// by numeric value.
func ByType(pt mapi.PropType) []mapi.PropTag {
	var tags []mapi.PropTag
	for tag := range tagNames {
		if tag.Type() == pt {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// All lists every registered tag, sorted by numeric value.
func All() []mapi.PropTag {
	tags := make([]mapi.PropTag, 0, len(tagNames))
	for tag := range tagNames {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
