// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/namedprop"
)

// Request body caps. A MAPI GetIDsFromNames call carries a bounded count;
// the HTTP surface keeps the same discipline.
const (
	maxRequestBody = 1 << 20
	maxBatchSize   = 1024
)

// resolveRequest is the POST /api/names/resolve body.
type resolveRequest struct {
	Names  []namedprop.Name `json:"names"`
	Create bool             `json:"create"`
}

// resolvedTag is one entry of the resolve response. Ok is false for names
// that did not resolve; their Tag carries PT_ERROR.
type resolvedTag struct {
	Tag    mapi.PropTag `json:"tag"`
	Hex    string       `json:"hex"`
	PropID uint16       `json:"propId"`
	Ok     bool         `json:"ok"`
}

// resolveResponse reports per-name outcomes plus the overall HRESULT, so
// partial success (MAPI_W_ERRORS_RETURNED) is visible without a non-200
// status.
type resolveResponse struct {
	Tags   []resolvedTag `json:"tags"`
	Result string        `json:"result"`
}

// reverseRequest is the POST /api/names/reverse body.
type reverseRequest struct {
	IDs []uint16 `json:"ids"`
}

// reverseResponse mirrors resolveResponse; unknown IDs yield null entries.
type reverseResponse struct {
	Names  []*namedprop.Name `json:"names"`
	Result string            `json:"result"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %v: %w", err, mapi.MAPI_E_INVALID_PARAMETER)
	}
	return nil
}

// handleResolveNames maps names to property IDs, allocating new mappings
// when create is set.
func (s *Server) handleResolveNames(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Names) == 0 {
		writeInvalid(w, r, "names must not be empty")
		return
	}
	if len(req.Names) > maxBatchSize {
		writeInvalid(w, r, "too many names: %d > %d", len(req.Names), maxBatchSize)
		return
	}

	var flags uint32
	if req.Create {
		flags = mapi.MAPI_CREATE
	}

	tags, hr, err := s.registry.GetIDs(r.Context(), req.Names, flags)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := resolveResponse{
		Tags:   make([]resolvedTag, len(tags)),
		Result: hr.Name(),
	}
	for i, tag := range tags {
		ok := tag.Type() != mapi.PT_ERROR
		entry := resolvedTag{
			Tag: tag,
			Hex: fmt.Sprintf("0x%08X", uint32(tag)),
			Ok:  ok,
		}
		if ok {
			entry.PropID = tag.ID()
		}
		resp.Tags[i] = entry
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleReverseNames maps property IDs back to the names they were
// allocated for.
func (s *Server) handleReverseNames(w http.ResponseWriter, r *http.Request) {
	var req reverseRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.IDs) == 0 {
		writeInvalid(w, r, "ids must not be empty")
		return
	}
	if len(req.IDs) > maxBatchSize {
		writeInvalid(w, r, "too many ids: %d > %d", len(req.IDs), maxBatchSize)
		return
	}

	names, hr, err := s.registry.GetNames(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reverseResponse{Names: names, Result: hr.Name()})
}
