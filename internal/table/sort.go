// SPDX-License-Identifier: MIT

package table

import (
	"sort"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/propval"
)

// SortOrder pairs a column with a direction (TABLE_SORT_*).
type SortOrder struct {
	Tag       mapi.PropTag
	Direction uint32
}

// SortOrderSet mirrors SSortOrderSet: the sort columns plus the number of
// leading orders that act as category levels, and how many of those start
// expanded.
type SortOrderSet struct {
	Orders     []SortOrder
	Categories uint32
	Expanded   uint32
}

// Validate enforces the SSortOrderSet constraints.
func (s SortOrderSet) Validate() error {
	if s.Categories > mapi.TABLE_SORT_CATEG_MAX {
		return mapi.MAPI_E_TOO_COMPLEX
	}
	if s.Categories > uint32(len(s.Orders)) {
		return mapi.MAPI_E_TOO_COMPLEX
	}
	if s.Expanded > s.Categories {
		return mapi.MAPI_E_TOO_COMPLEX
	}
	for _, o := range s.Orders {
		switch o.Direction {
		case mapi.TABLE_SORT_ASCEND, mapi.TABLE_SORT_DESCEND, mapi.TABLE_SORT_COMBINE:
		default:
			return mapi.MAPI_E_INVALID_PARAMETER
		}
	}
	return nil
}

// less orders two rows under the sort order set. Missing values sort before
// present ones in ascending order.
func (s SortOrderSet) less(a, b Row) bool {
	for _, o := range s.Orders {
		av, aok := a.Get(o.Tag)
		bv, bok := b.Get(o.Tag)
		var c int
		switch {
		case !aok && !bok:
			c = 0
		case !aok:
			c = -1
		case !bok:
			c = 1
		default:
			c = propval.Compare(av, bv)
		}
		if c == 0 {
			continue
		}
		if o.Direction == mapi.TABLE_SORT_DESCEND {
			return c > 0
		}
		return c < 0
	}
	return false
}

// apply stably sorts the view indexes.
func (s SortOrderSet) apply(rows []Row, view []int) {
	if len(s.Orders) == 0 {
		return
	}
	sort.SliceStable(view, func(i, j int) bool {
		return s.less(rows[view[i]], rows[view[j]])
	})
}
