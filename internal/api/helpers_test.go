// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/config"
	"github.com/olmapi/olmapi/internal/health"
	"github.com/olmapi/olmapi/internal/namedprop"
	"github.com/olmapi/olmapi/internal/session"
)

// testConfig disables the rate limiter so request loops in tests never trip
// it; the limiter has its own tests in the middleware package.
func testConfig() config.AppConfig {
	cfg := config.Defaults()
	cfg.Version = "test"
	cfg.HTTPRateLimit = 0
	return cfg
}

func newTestServer(t *testing.T, cfg config.AppConfig) *Server {
	t.Helper()
	return newTestServerWithStore(t, cfg, namedprop.NewMemoryStore(0))
}

func newTestServerWithStore(t *testing.T, cfg config.AppConfig, store namedprop.Store) *Server {
	t.Helper()

	reg := namedprop.NewRegistry(store, namedprop.RegistryConfig{Logger: zerolog.Nop()})

	rt := session.NewRuntime(reg, zerolog.Nop())
	rt.Initialize(session.InitFlags{})
	t.Cleanup(rt.Uninitialize)

	profile := session.NewProfile("outlook",
		session.StoreInfo{DisplayName: "Personal Folders", Default: true, SupportMask: 0x0010},
		session.StoreInfo{DisplayName: "Archive", SupportMask: 0x0010},
		session.StoreInfo{DisplayName: "Shared Mailbox", SupportMask: 0x0010},
	)
	sess, err := rt.Logon(profile, session.LogonFlags{Unicode: true})
	require.NoError(t, err)
	t.Cleanup(sess.Logoff)

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewStoreChecker("memory", store.Ping))

	srv, err := New(Deps{Config: cfg, Registry: reg, Session: sess, Health: hm})
	require.NoError(t, err)
	return srv
}

// doJSON runs one request against the server and decodes the JSON response
// into out (skipped when out is nil).
func doJSON(t *testing.T, srv *Server, req *http.Request, out any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out),
			"response body: %s", w.Body.String())
	}
	return w
}
