// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/mapi"
)

func TestStatusFromHResult(t *testing.T) {
	tests := []struct {
		hr   mapi.HResult
		want int
	}{
		{mapi.MAPI_E_NOT_FOUND, http.StatusNotFound},
		{mapi.MAPI_E_INVALID_PARAMETER, http.StatusBadRequest},
		{mapi.MAPI_E_UNKNOWN_FLAGS, http.StatusBadRequest},
		{mapi.MAPI_E_INVALID_TYPE, http.StatusBadRequest},
		{mapi.MAPI_E_INVALID_BOOKMARK, http.StatusGone},
		{mapi.MAPI_E_NAMED_PROP_QUOTA_EXCEEDED, http.StatusInsufficientStorage},
		{mapi.MAPI_E_TOO_COMPLEX, http.StatusUnprocessableEntity},
		{mapi.MAPI_E_NO_ACCESS, http.StatusForbidden},
		{mapi.MAPI_E_BUSY, http.StatusTooManyRequests},
		{mapi.MAPI_E_CALL_FAILED, http.StatusInternalServerError},
		{mapi.MAPI_E_NO_SUPPORT, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.hr.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromHResult(tt.hr))
		})
	}
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWriteError_WrappedHResult(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(w, r, fmt.Errorf("looking up mapping: %w", mapi.MAPI_E_NOT_FOUND))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decodeErrorBody(t, w)
	assert.Equal(t, "Not Found", body.Error)
	assert.Contains(t, body.Detail, "looking up mapping")
	assert.Equal(t, "0x8004010F", body.Code)
	assert.Equal(t, "MAPI_E_NOT_FOUND", body.Name)
}

func TestWriteError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(w, r, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeErrorBody(t, w)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Equal(t, "boom", body.Detail)
	assert.Empty(t, body.Code)
	assert.Empty(t, body.Name)
}

func TestWriteError_BareHResult(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(w, r, mapi.MAPI_E_NO_ACCESS)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "MAPI_E_NO_ACCESS", decodeErrorBody(t, w).Name)
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()

	// NaN has no JSON representation; the encoder fails after the header
	// is written and the handler can only log it.
	writeJSON(w, http.StatusOK, map[string]float64{"value": math.NaN()})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestWriteInvalid(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	writeInvalid(w, r, "count %q must be a positive integer", "banana")

	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeErrorBody(t, w)
	assert.Equal(t, "MAPI_E_INVALID_PARAMETER", body.Name)
	assert.Contains(t, body.Detail, `count "banana" must be a positive integer`)
}
