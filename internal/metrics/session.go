// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "olmapi_active_sessions",
		Help: "Current number of logged-on sessions.",
	})

	storeOpensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "olmapi_store_opens_total",
		Help: "Message store open attempts by outcome.",
	}, []string{"outcome"}) // outcome=success|not_found|bad_flags
)

// IncActiveSessions bumps the session gauge on logon.
func IncActiveSessions() { activeSessions.Inc() }

// DecActiveSessions drops the session gauge on logoff.
func DecActiveSessions() { activeSessions.Dec() }

// RecordStoreOpen increments the store-open counter.
func RecordStoreOpen(outcome string) {
	storeOpensTotal.WithLabelValues(outcome).Inc()
}
