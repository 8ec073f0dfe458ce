// SPDX-License-Identifier: MIT

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/olmapi/olmapi/internal/mapi"
)

// APIRateLimit caps traffic at perMinute requests per client IP using
// httprate's sliding window counter. Rejected requests get the same error
// body shape the API handlers produce, carrying the MAPI busy code so
// clients can treat a 429 like any other MAPI failure.
func APIRateLimit(perMinute int) func(http.Handler) http.Handler {
	body := fmt.Sprintf(
		`{"error":"Too Many Requests","detail":"request rate limit exceeded, retry later","code":"0x%08X","name":%q}`,
		uint32(mapi.MAPI_E_BUSY), mapi.MAPI_E_BUSY.Name(),
	)

	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(body))
		}),
	)
}
