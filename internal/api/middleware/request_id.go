// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/olmapi/olmapi/internal/log"
)

// HeaderRequestID carries the per-request ID, echoed on the response.
const HeaderRequestID = "X-Request-ID"

// HeaderCorrelationID carries a caller-supplied ID that spans several
// requests. It is never generated here, only propagated.
const HeaderCorrelationID = "X-Correlation-ID"

// RequestID adds a unique ID to every request. An ID supplied by the client
// is kept so upstream proxies can correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, reqID)

		ctx := log.ContextWithRequestID(r.Context(), reqID)
		if cid := r.Header.Get(HeaderCorrelationID); cid != "" {
			ctx = log.ContextWithCorrelationID(ctx, cid)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
