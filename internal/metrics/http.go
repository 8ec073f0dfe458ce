// SPDX-License-Identifier: MIT

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "olmapi_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "olmapi_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "olmapi_http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "olmapi_http_response_size_bytes",
		Help:    "HTTP response body size by method and route pattern.",
		Buckets: prometheus.ExponentialBuckets(100, 10, 8),
	}, []string{"method", "path"})
)

// RecordHTTPRequest records one served request. path must be the route
// pattern, not the raw URL, to keep cardinality bounded.
func RecordHTTPRequest(method, path string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordHTTPResponseSize records the body size of one served response.
func RecordHTTPResponseSize(method, path string, bytes float64) {
	httpResponseSize.WithLabelValues(method, path).Observe(bytes)
}

// IncHTTPInFlight bumps the in-flight gauge at request start.
func IncHTTPInFlight() { httpRequestsInFlight.Inc() }

// DecHTTPInFlight drops the in-flight gauge at request end.
func DecHTTPInFlight() { httpRequestsInFlight.Dec() }

// GetHTTPInFlight returns the current in-flight gauge value (for testing).
func GetHTTPInFlight() float64 {
	var m dto.Metric
	if err := httpRequestsInFlight.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}
