// SPDX-License-Identifier: MIT

package table

import (
	"sync"

	"github.com/olmapi/olmapi/internal/mapi"
)

// QueryAllRows fetches in batches of this size.
const queryAllBatchSize = 50

// Table is a contents table: a master row list, an active view (after
// restriction), a cursor and live bookmarks. All methods are safe for
// concurrent use.
type Table struct {
	mu        sync.Mutex
	columns   []mapi.PropTag
	rows      []Row
	view      []int
	cursor    int
	bookmarks map[uint32]int
	nextMark  uint32
}

// New builds an empty table with the given column set.
func New(columns ...mapi.PropTag) *Table {
	return &Table{
		columns:   columns,
		bookmarks: make(map[uint32]int),
		nextMark:  mapi.BOOKMARK_END + 1,
	}
}

// SetColumns replaces the column set used by QueryRows projections.
func (t *Table) SetColumns(columns []mapi.PropTag) error {
	if len(columns) == 0 {
		return mapi.MAPI_E_INVALID_PARAMETER
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.columns = append([]mapi.PropTag(nil), columns...)
	return nil
}

// Columns returns the current column set.
func (t *Table) Columns() []mapi.PropTag {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]mapi.PropTag(nil), t.columns...)
}

// AddRow appends a row to the master list and the active view.
func (t *Table) AddRow(row Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
	t.view = append(t.view, len(t.rows)-1)
}

// RowCount reports the number of rows in the active view.
func (t *Table) RowCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.view)
}

// SortTable re-orders the view. Sorting moves the cursor to the beginning
// and invalidates user bookmarks.
func (t *Table) SortTable(s SortOrderSet) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s.apply(t.rows, t.view)
	t.cursor = 0
	clear(t.bookmarks)
	return nil
}

// Restrict filters the view to rows matching the restriction. A nil
// restriction clears the filter. The cursor moves to the beginning and user
// bookmarks are invalidated.
func (t *Table) Restrict(r *Restriction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := make([]int, 0, len(t.rows))
	for i, row := range t.rows {
		if r != nil {
			ok, err := r.match(row)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		view = append(view, i)
	}
	t.view = view
	t.cursor = 0
	clear(t.bookmarks)
	return nil
}

// SeekRow positions the cursor offset rows from a bookmark and reports how
// many rows it actually moved.
func (t *Table) SeekRow(bookmark uint32, offset int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	origin, err := t.resolveBookmark(bookmark)
	if err != nil {
		return 0, err
	}
	target := origin + offset
	if target < 0 {
		target = 0
	}
	if target > len(t.view) {
		target = len(t.view)
	}
	t.cursor = target
	return target - origin, nil
}

// QueryRows returns up to n projected rows from the cursor and advances it.
// An exhausted table yields an empty set.
func (t *Table) QueryRows(n int) (RowSet, error) {
	if n <= 0 {
		return nil, mapi.MAPI_E_INVALID_PARAMETER
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	remaining := len(t.view) - t.cursor
	if remaining <= 0 {
		return RowSet{}, nil
	}
	if n > remaining {
		n = remaining
	}
	out := make(RowSet, 0, n)
	for _, idx := range t.view[t.cursor : t.cursor+n] {
		out = append(out, t.rows[idx].project(t.columns))
	}
	t.cursor += n
	return out, nil
}

// QueryAllRows rewinds to the beginning and drains the view in batches.
func (t *Table) QueryAllRows() (RowSet, error) {
	if _, err := t.SeekRow(mapi.BOOKMARK_BEGINNING, 0); err != nil {
		return nil, err
	}
	var all RowSet
	for {
		batch, err := t.QueryRows(queryAllBatchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return all, nil
		}
		all = append(all, batch...)
	}
}

// QueryPosition reports the cursor's position within the view and the view
// size.
func (t *Table) QueryPosition() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor, len(t.view)
}

// First returns the first row of the view without moving the cursor.
func (t *Table) First() (Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.view) == 0 {
		return Row{}, mapi.MAPI_E_TABLE_EMPTY
	}
	return t.rows[t.view[0]].project(t.columns), nil
}

// CreateBookmark captures the cursor position.
func (t *Table) CreateBookmark() (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextMark
	t.nextMark++
	t.bookmarks[id] = t.cursor
	return id, nil
}

// FreeBookmark releases a user bookmark. The predefined bookmarks cannot be
// freed.
func (t *Table) FreeBookmark(bookmark uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if bookmark <= mapi.BOOKMARK_END {
		return mapi.MAPI_E_INVALID_BOOKMARK
	}
	if _, ok := t.bookmarks[bookmark]; !ok {
		return mapi.MAPI_E_INVALID_BOOKMARK
	}
	delete(t.bookmarks, bookmark)
	return nil
}

// resolveBookmark maps a bookmark to a view position. Caller holds the lock.
func (t *Table) resolveBookmark(bookmark uint32) (int, error) {
	switch bookmark {
	case mapi.BOOKMARK_BEGINNING:
		return 0, nil
	case mapi.BOOKMARK_CURRENT:
		return t.cursor, nil
	case mapi.BOOKMARK_END:
		return len(t.view), nil
	}
	pos, ok := t.bookmarks[bookmark]
	if !ok {
		return 0, mapi.MAPI_E_INVALID_BOOKMARK
	}
	if pos > len(t.view) {
		pos = len(t.view)
	}
	return pos, nil
}
