// SPDX-License-Identifier: MIT

// Package table implements MAPI contents-table semantics over in-memory
// rows: column projection, category-aware sorting, bookmarks, seeking,
// paging and restrictions.
package table

import (
	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/propval"
)

// Row is one table row: an unordered bag of property values.
type Row struct {
	Values []propval.Value
}

// NewRow builds a row from property values.
func NewRow(values ...propval.Value) Row {
	return Row{Values: values}
}

// Get finds the value for a tag. A column tag with type PT_UNSPECIFIED
// matches on property ID alone, the convention for tags coming out of
// GetIDsFromNames.
func (r Row) Get(tag mapi.PropTag) (propval.Value, bool) {
	for _, v := range r.Values {
		if v.Tag() == tag {
			return v, true
		}
		if tag.Type() == mapi.PT_UNSPECIFIED && v.Tag().ID() == tag.ID() {
			return v, true
		}
	}
	return propval.Value{}, false
}

// project shapes the row to the column set. Missing columns yield PT_ERROR
// cells carrying MAPI_E_NOT_FOUND, as MAPI tables do.
func (r Row) project(columns []mapi.PropTag) Row {
	cells := make([]propval.Value, len(columns))
	for i, col := range columns {
		if v, ok := r.Get(col); ok {
			cells[i] = v
			continue
		}
		cells[i] = propval.Err(col, mapi.MAPI_E_NOT_FOUND)
	}
	return Row{Values: cells}
}

// RowSet is an ordered batch of rows as returned by QueryRows.
type RowSet []Row
