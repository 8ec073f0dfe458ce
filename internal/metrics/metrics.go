// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for the olmapi daemon.
// Labels stay low-cardinality: outcomes and backends, never names or IDs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

var (
	// namesResolvedTotal counts name resolution attempts by outcome.
	namesResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "olmapi_names_resolved_total",
		Help: "Name resolution attempts by outcome.",
	}, []string{"outcome"}) // outcome=cache_hit|store_hit|miss|created|throttled|error

	// namedPropsAllocated tracks the number of allocated named property IDs.
	namedPropsAllocated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "olmapi_named_props_allocated",
		Help: "Number of named property IDs allocated in the mapping store.",
	})

	// storeErrorsTotal counts mapping store failures by operation.
	storeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "olmapi_store_errors_total",
		Help: "Mapping store failures by operation.",
	}, []string{"op"}) // op=lookup|reverse|allocate|list|ping

	// exportTotal counts mapping snapshot exports by outcome.
	exportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "olmapi_export_total",
		Help: "Mapping snapshot exports by outcome.",
	}, []string{"outcome"}) // outcome=success|failure
)

// RecordNameResolution increments the resolution counter for an outcome.
func RecordNameResolution(outcome string) {
	namesResolvedTotal.WithLabelValues(outcome).Inc()
}

// SetNamedPropsAllocated sets the allocated-mappings gauge.
func SetNamedPropsAllocated(count float64) {
	namedPropsAllocated.Set(count)
}

// IncNamedPropsAllocated bumps the allocated-mappings gauge after a create.
func IncNamedPropsAllocated() {
	namedPropsAllocated.Inc()
}

// IncStoreError increments the store failure counter for an operation.
func IncStoreError(op string) {
	storeErrorsTotal.WithLabelValues(op).Inc()
}

// RecordExport increments the export counter.
func RecordExport(outcome string) {
	exportTotal.WithLabelValues(outcome).Inc()
}

// GetNamedPropsAllocated returns the current gauge value (for testing).
func GetNamedPropsAllocated() float64 {
	var m dto.Metric
	if err := namedPropsAllocated.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}
