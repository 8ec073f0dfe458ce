// SPDX-License-Identifier: MIT

package api

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/table"
)

// Paging bounds for GET /api/stores.
const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// storeEntry is one message store row rendered as JSON.
type storeEntry struct {
	EntryID     string `json:"entryId"`
	DisplayName string `json:"displayName"`
	Default     bool   `json:"default"`
	ObjectType  int32  `json:"objectType"`
	SupportMask uint32 `json:"supportMask"`
}

// storesResponse pages through the session's store table. NextBookmark is a
// single-use token for the following page; absent on the last page.
type storesResponse struct {
	Stores       []storeEntry `json:"stores"`
	Total        int          `json:"total"`
	NextBookmark string       `json:"nextBookmark,omitempty"`
}

// encodeBookmark renders a table bookmark as an opaque URL-safe token.
func encodeBookmark(id uint32) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], id)
	return base64.RawURLEncoding.EncodeToString(buf[:])
}

// decodeBookmark reverses encodeBookmark. Anything unusable is an invalid
// bookmark; predefined bookmark values never appear in tokens.
func decodeBookmark(token string) (uint32, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != 4 {
		return 0, fmt.Errorf("malformed bookmark token: %w", mapi.MAPI_E_INVALID_BOOKMARK)
	}
	id := binary.BigEndian.Uint32(raw)
	if id <= mapi.BOOKMARK_END {
		return 0, fmt.Errorf("reserved bookmark value %d: %w", id, mapi.MAPI_E_INVALID_BOOKMARK)
	}
	return id, nil
}

// handleStores lists the session's message stores with bookmark paging.
// Bookmark tokens are single-use: consuming a page frees its token, and
// replaying one gets 410.
func (s *Server) handleStores(w http.ResponseWriter, r *http.Request) {
	count := defaultPageSize
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeInvalid(w, r, "count %q must be a positive integer", raw)
			return
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		count = n
	}

	bookmark := mapi.BOOKMARK_BEGINNING
	fromToken := false
	if token := r.URL.Query().Get("bookmark"); token != "" {
		id, err := decodeBookmark(token)
		if err != nil {
			writeError(w, r, err)
			return
		}
		bookmark = id
		fromToken = true
	}

	// Seek, query and re-bookmark as one unit so concurrent pagers cannot
	// interleave on the shared cursor.
	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	if _, err := s.stores.SeekRow(bookmark, 0); err != nil {
		writeError(w, r, err)
		return
	}
	// The token is spent once the seek lands, whatever the page read does.
	if fromToken {
		_ = s.stores.FreeBookmark(bookmark)
	}
	rows, err := s.stores.QueryRows(count)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := storesResponse{
		Stores: make([]storeEntry, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Stores = append(resp.Stores, storeRow(row))
	}

	pos, total := s.stores.QueryPosition()
	resp.Total = total
	if pos < total {
		next, err := s.stores.CreateBookmark()
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.NextBookmark = encodeBookmark(next)
	}

	writeJSON(w, http.StatusOK, resp)
}

// storeRow flattens a projected table row into the JSON shape. The display
// name matches by property ID so both the Unicode and the String8 column
// render.
func storeRow(row table.Row) storeEntry {
	var e storeEntry
	if v, ok := row.Get(mapi.PR_ENTRYID); ok {
		if b, ok := v.Binary(); ok {
			e.EntryID = hex.EncodeToString(b)
		}
	}
	nameByID := mapi.NewTag(mapi.PT_UNSPECIFIED, mapi.PR_DISPLAY_NAME_W.ID())
	if v, ok := row.Get(nameByID); ok {
		if s, ok := v.Text(); ok {
			e.DisplayName = s
		}
	}
	if v, ok := row.Get(mapi.PR_DEFAULT_STORE); ok {
		if b, ok := v.Bool(); ok {
			e.Default = b
		}
	}
	if v, ok := row.Get(mapi.PR_OBJECT_TYPE); ok {
		if n, ok := v.Int32(); ok {
			e.ObjectType = n
		}
	}
	if v, ok := row.Get(mapi.PR_STORE_SUPPORT_MASK); ok {
		if n, ok := v.Int32(); ok {
			e.SupportMask = uint32(n)
		}
	}
	return e
}
