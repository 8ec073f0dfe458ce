// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resolveBody = `{"names":[{"set":"00020329-0000-0000-c000-000000000046","kind":1,"name":"Keywords"}],"create":true}`

func resolveWith(t *testing.T, srv *Server, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/names/resolve", strings.NewReader(resolveBody))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return doJSON(t, srv, r, nil)
}

func TestAuth_OpenWhenNoTokenConfigured(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := resolveWith(t, srv, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RequiredWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.APIToken = "sekret"
	srv := newTestServer(t, cfg)

	w := resolveWith(t, srv, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = resolveWith(t, srv, "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = resolveWith(t, srv, "sekret")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RejectsNonBearerScheme(t *testing.T) {
	cfg := testConfig()
	cfg.APIToken = "sekret"
	srv := newTestServer(t, cfg)

	r := httptest.NewRequest(http.MethodPost, "/api/names/resolve", strings.NewReader(resolveBody))
	r.Header.Set("Authorization", "Basic c2VrcmV0")
	w := doJSON(t, srv, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ReadEndpointsStayOpen(t *testing.T) {
	cfg := testConfig()
	cfg.APIToken = "sekret"
	srv := newTestServer(t, cfg)

	for _, path := range []string{"/api/tags", "/api/stores", "/healthz"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		w := doJSON(t, srv, r, nil)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestAuth_TokenRotation(t *testing.T) {
	cfg := testConfig()
	cfg.APIToken = "old"
	srv := newTestServer(t, cfg)

	require.Equal(t, http.StatusOK, resolveWith(t, srv, "old").Code)

	next := cfg
	next.APIToken = "new"
	srv.ApplyConfig(next)

	assert.Equal(t, http.StatusUnauthorized, resolveWith(t, srv, "old").Code)
	assert.Equal(t, http.StatusOK, resolveWith(t, srv, "new").Code)
}
