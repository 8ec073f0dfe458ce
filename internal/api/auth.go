// SPDX-License-Identifier: MIT

package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/olmapi/olmapi/internal/log"
)

// extractBearer pulls the token out of an Authorization: Bearer header.
func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// authorizeToken compares tokens in constant time. Empty tokens never
// authorize.
func authorizeToken(got, expected string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

// requireAuth enforces bearer-token authentication when a token is
// configured. Without a configured token the endpoints stay open; the
// deployment decides whether mutation needs protecting.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.currentConfig().APIToken
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		logger := log.WithComponentFromContext(r.Context(), "auth")

		got := extractBearer(r)
		if got == "" {
			logger.Warn().Str("event", "auth.missing_header").Msg("authorization header missing")
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
			return
		}
		if !authorizeToken(got, token) {
			logger.Warn().Str("event", "auth.invalid_token").Msg("invalid api token")
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
