// Package metrics exposes Prometheus instrumentation for the list backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MutationsTotal counts committed list mutations by operation.
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "list_mutations_total",
		Help: "Number of committed list mutations, by operation.",
	}, []string{"operation"})

	// BroadcastsTotal counts listUpdated broadcasts handed to the registry.
	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "list_broadcasts_total",
		Help: "Number of listUpdated broadcasts sent to list rooms.",
	})

	// SubscribersActive tracks currently connected websocket subscribers.
	SubscribersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "list_subscribers_active",
		Help: "Number of websocket connections currently open.",
	})
)

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
