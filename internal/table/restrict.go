// SPDX-License-Identifier: MIT

package table

import (
	"bytes"
	"strings"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/propval"
)

// Restriction is one node of a MAPI restriction tree. Op selects the RES_*
// kind; the remaining fields are read per kind.
type Restriction struct {
	Op         uint32
	Subs       []Restriction
	Tag        mapi.PropTag
	Relop      uint32
	FuzzyLevel uint32
	Value      propval.Value
}

// And combines restrictions; all must match.
func And(subs ...Restriction) Restriction {
	return Restriction{Op: mapi.RES_AND, Subs: subs}
}

// Or combines restrictions; at least one must match.
func Or(subs ...Restriction) Restriction {
	return Restriction{Op: mapi.RES_OR, Subs: subs}
}

// Not inverts a restriction.
func Not(sub Restriction) Restriction {
	return Restriction{Op: mapi.RES_NOT, Subs: []Restriction{sub}}
}

// Content matches string or binary content under an FL_* fuzzy level.
func Content(fuzzyLevel uint32, v propval.Value) Restriction {
	return Restriction{Op: mapi.RES_CONTENT, Tag: v.Tag(), FuzzyLevel: fuzzyLevel, Value: v}
}

// Property compares a row value against v under a RELOP_* operator.
func Property(relop uint32, v propval.Value) Restriction {
	return Restriction{Op: mapi.RES_PROPERTY, Tag: v.Tag(), Relop: relop, Value: v}
}

// Exist matches rows that carry the tag at all.
func Exist(tag mapi.PropTag) Restriction {
	return Restriction{Op: mapi.RES_EXIST, Tag: tag}
}

// match evaluates the restriction against a row. Unsupported nodes fail with
// MAPI_E_TOO_COMPLEX.
func (r Restriction) match(row Row) (bool, error) {
	switch r.Op {
	case mapi.RES_AND:
		for _, sub := range r.Subs {
			ok, err := sub.match(row)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case mapi.RES_OR:
		for _, sub := range r.Subs {
			ok, err := sub.match(row)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case mapi.RES_NOT:
		if len(r.Subs) != 1 {
			return false, mapi.MAPI_E_INVALID_PARAMETER
		}
		ok, err := r.Subs[0].match(row)
		return !ok, err
	case mapi.RES_EXIST:
		_, ok := row.Get(r.Tag)
		return ok, nil
	case mapi.RES_CONTENT:
		return r.matchContent(row)
	case mapi.RES_PROPERTY:
		return r.matchProperty(row)
	default:
		return false, mapi.MAPI_E_TOO_COMPLEX
	}
}

func (r Restriction) matchContent(row Row) (bool, error) {
	have, ok := row.Get(r.Tag)
	if !ok {
		return false, nil
	}
	if s, isText := r.Value.Text(); isText {
		hs, isText := have.Text()
		if !isText {
			return false, nil
		}
		if r.FuzzyLevel&mapi.FL_IGNORECASE != 0 {
			hs = strings.ToLower(hs)
			s = strings.ToLower(s)
		}
		switch r.FuzzyLevel & 0xFFFF {
		case mapi.FL_FULLSTRING:
			return hs == s, nil
		case mapi.FL_SUBSTRING:
			return strings.Contains(hs, s), nil
		case mapi.FL_PREFIX:
			return strings.HasPrefix(hs, s), nil
		default:
			return false, mapi.MAPI_E_TOO_COMPLEX
		}
	}
	if b, isBin := r.Value.Binary(); isBin {
		hb, isBin := have.Binary()
		if !isBin {
			return false, nil
		}
		switch r.FuzzyLevel & 0xFFFF {
		case mapi.FL_FULLSTRING:
			return bytes.Equal(hb, b), nil
		case mapi.FL_SUBSTRING:
			return bytes.Contains(hb, b), nil
		case mapi.FL_PREFIX:
			return bytes.HasPrefix(hb, b), nil
		default:
			return false, mapi.MAPI_E_TOO_COMPLEX
		}
	}
	// Content restrictions are defined for strings and binaries only.
	return false, mapi.MAPI_E_TOO_COMPLEX
}

func (r Restriction) matchProperty(row Row) (bool, error) {
	have, ok := row.Get(r.Tag)
	if !ok {
		return false, nil
	}
	if r.Relop == mapi.RELOP_RE {
		return false, mapi.MAPI_E_TOO_COMPLEX
	}
	c := propval.Compare(have, r.Value)
	switch r.Relop {
	case mapi.RELOP_LT:
		return c < 0, nil
	case mapi.RELOP_LE:
		return c <= 0, nil
	case mapi.RELOP_GT:
		return c > 0, nil
	case mapi.RELOP_GE:
		return c >= 0, nil
	case mapi.RELOP_EQ:
		return c == 0, nil
	case mapi.RELOP_NE:
		return c != 0, nil
	default:
		return false, mapi.MAPI_E_INVALID_PARAMETER
	}
}
