// SPDX-License-Identifier: MIT

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olmapi/olmapi/internal/metrics"
)

func TestPromhttpExposure(t *testing.T) {
	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	if _, err := srv.Client().Get(srv.URL); err != nil {
		t.Fatal(err)
	}
}

func TestRecordNameResolution(t *testing.T) {
	outcomes := []string{"cache_hit", "store_hit", "miss", "created", "throttled", "error"}
	for _, outcome := range outcomes {
		metrics.RecordNameResolution(outcome)
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	promhttp.Handler().ServeHTTP(recorder, req)

	body := recorder.Body.String()

	if !strings.Contains(body, "olmapi_names_resolved_total") {
		t.Error("expected olmapi_names_resolved_total metric to be present")
	}
	for _, outcome := range outcomes {
		label := `outcome="` + outcome + `"`
		if !strings.Contains(body, label) {
			t.Errorf("expected label %q to be present in metrics output", label)
		}
	}
}

func TestNamedPropsAllocatedGauge(t *testing.T) {
	metrics.SetNamedPropsAllocated(7)
	if got := metrics.GetNamedPropsAllocated(); got != 7 {
		t.Fatalf("gauge = %v, want 7", got)
	}

	metrics.IncNamedPropsAllocated()
	if got := metrics.GetNamedPropsAllocated(); got != 8 {
		t.Fatalf("gauge after Inc = %v, want 8", got)
	}
}

func TestHTTPInFlightGauge(t *testing.T) {
	before := metrics.GetHTTPInFlight()

	metrics.IncHTTPInFlight()
	if got := metrics.GetHTTPInFlight(); got != before+1 {
		t.Fatalf("in-flight = %v, want %v", got, before+1)
	}

	metrics.DecHTTPInFlight()
	if got := metrics.GetHTTPInFlight(); got != before {
		t.Fatalf("in-flight after Dec = %v, want %v", got, before)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	metrics.RecordHTTPRequest(http.MethodGet, "/api/tags/{tag}", http.StatusOK, 0.01)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	promhttp.Handler().ServeHTTP(recorder, req)

	body := recorder.Body.String()

	if !strings.Contains(body, "olmapi_http_requests_total") {
		t.Error("expected olmapi_http_requests_total metric to be present")
	}
	if !strings.Contains(body, `path="/api/tags/{tag}"`) {
		t.Error("expected route pattern label in metrics output")
	}
}
