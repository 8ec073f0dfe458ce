// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/olmapi/olmapi/internal/log"
	"github.com/olmapi/olmapi/internal/mapi"
)

// errorBody is the single error shape every endpoint renders.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; all that is left is the log line.
		logger := log.WithComponent("api")
		logger.Error().Err(err).Int("status", code).
			Msg("failed to encode JSON response")
	}
}

// statusFromHResult maps MAPI failure codes onto HTTP statuses.
func statusFromHResult(hr mapi.HResult) int {
	switch hr {
	case mapi.MAPI_E_NOT_FOUND:
		return http.StatusNotFound
	case mapi.MAPI_E_INVALID_PARAMETER, mapi.MAPI_E_UNKNOWN_FLAGS, mapi.MAPI_E_INVALID_TYPE:
		return http.StatusBadRequest
	case mapi.MAPI_E_INVALID_BOOKMARK:
		return http.StatusGone
	case mapi.MAPI_E_NAMED_PROP_QUOTA_EXCEEDED:
		return http.StatusInsufficientStorage
	case mapi.MAPI_E_TOO_COMPLEX:
		return http.StatusUnprocessableEntity
	case mapi.MAPI_E_NO_ACCESS:
		return http.StatusForbidden
	case mapi.MAPI_E_BUSY:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. MAPI failures anywhere in the chain pick their
// status from statusFromHResult and carry the HRESULT code and name;
// everything else is a plain 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	var hr mapi.HResult
	if errors.As(err, &hr) {
		status := statusFromHResult(hr)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("hresult", hr.Name()).Msg("request failed")
		} else {
			logger.Debug().Err(err).Str("hresult", hr.Name()).Msg("request rejected")
		}
		writeJSON(w, status, errorBody{
			Error:  http.StatusText(status),
			Detail: err.Error(),
			Code:   fmt.Sprintf("0x%08X", uint32(hr)),
			Name:   hr.Name(),
		})
		return
	}

	logger.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:  http.StatusText(http.StatusInternalServerError),
		Detail: err.Error(),
	})
}

// writeInvalid rejects a malformed request with MAPI_E_INVALID_PARAMETER
// semantics and the supplied detail.
func writeInvalid(w http.ResponseWriter, r *http.Request, format string, args ...any) {
	args = append(args, mapi.MAPI_E_INVALID_PARAMETER)
	writeError(w, r, fmt.Errorf(format+": %w", args...))
}
