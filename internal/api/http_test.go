// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/api/middleware"
	"github.com/olmapi/olmapi/internal/health"
)

func TestNew_RequiresDeps(t *testing.T) {
	full := func(t *testing.T) Deps {
		t.Helper()
		srv := newTestServer(t, testConfig())
		return Deps{
			Config:   srv.currentConfig(),
			Registry: srv.registry,
			Session:  srv.session,
			Health:   srv.health,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Deps)
	}{
		{"registry", func(d *Deps) { d.Registry = nil }},
		{"session", func(d *Deps) { d.Session = nil }},
		{"health", func(d *Deps) { d.Health = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := full(t)
			tt.mutate(&deps)
			_, err := New(deps)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestRoutes_Healthz(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp health.HealthResponse
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := doJSON(t, srv, r, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, health.StatusHealthy, resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestRoutes_HealthzVerbose(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp health.HealthResponse
	r := httptest.NewRequest(http.MethodGet, "/healthz?verbose=true", nil)
	w := doJSON(t, srv, r, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, resp.Checks, "store")
	assert.Equal(t, health.StatusHealthy, resp.Checks["store"].Status)
}

func TestRoutes_Readyz(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp health.ReadinessResponse
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := doJSON(t, srv, r, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Ready)
}

func TestRoutes_ReadyzFailsWithDeadStore(t *testing.T) {
	srv := newTestServer(t, testConfig())
	srv.health.RegisterChecker(health.NewStoreChecker("dead", func(context.Context) error {
		return errors.New("store down")
	}))

	var resp health.ReadinessResponse
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := doJSON(t, srv, r, &resp)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, resp.Ready)
}

func TestRoutes_Livez(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp map[string]string
	r := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := doJSON(t, srv, r, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestRoutes_Version(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp map[string]string
	r := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := doJSON(t, srv, r, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["version"])
	assert.Contains(t, resp, "commit")
}

func TestRoutes_MetricsExposed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	// Drive one request through the stack so the HTTP metrics have samples.
	doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags", nil), nil)

	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "olmapi_"),
		"metrics exposition should carry olmapi series")
}

func TestRoutes_RequestIDHeader(t *testing.T) {
	srv := newTestServer(t, testConfig())

	r := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := doJSON(t, srv, r, nil)

	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestRoutes_UnknownPath(t *testing.T) {
	srv := newTestServer(t, testConfig())

	r := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
