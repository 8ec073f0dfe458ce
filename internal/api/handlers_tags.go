// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/proptag"
)

// tagListResponse wraps the tag listing.
type tagListResponse struct {
	Tags  []proptag.Info `json:"tags"`
	Count int            `json:"count"`
}

// handleDescribeTag explains a single property tag. The path segment accepts
// a canonical PR_* name or a hex literal such as 0x0070001E.
func (s *Server) handleDescribeTag(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "tag")
	tag, err := proptag.Parse(raw)
	if err != nil {
		writeInvalid(w, r, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, proptag.Describe(tag))
}

// handleListTags lists the known tags, optionally filtered with
// ?type=PT_UNICODE style property type names.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	var tags []mapi.PropTag
	if typeName := r.URL.Query().Get("type"); typeName != "" {
		pt, ok := mapi.ParsePropType(typeName)
		if !ok {
			writeError(w, r, fmt.Errorf("unknown property type %q: %w", typeName, mapi.MAPI_E_INVALID_TYPE))
			return
		}
		tags = proptag.ByType(pt)
	} else {
		tags = proptag.All()
	}

	infos := make([]proptag.Info, 0, len(tags))
	for _, tag := range tags {
		infos = append(infos, proptag.Describe(tag))
	}
	writeJSON(w, http.StatusOK, tagListResponse{Tags: infos, Count: len(infos)})
}
