// Package observability holds the Prometheus instrumentation for the
// resolution pipeline and its upstream clients.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters and histograms for the resolver.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec // labels: source={ndbc,nws,coops}, outcome={success,error}
	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss}

	ResolutionDuration prometheus.Histogram
	FamilyOutcomes     *prometheus.CounterVec // labels: family={waves,wind,tides}, outcome={resolved,unavailable}
	GateRejections     prometheus.Counter
}

// NewMetrics creates and registers all resolver metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.CacheLookups,
		m.ResolutionDuration,
		m.FamilyOutcomes,
		m.GateRejections,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct resolvers repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "buoyant",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by source and outcome.",
		}, []string{"source", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "buoyant",
			Name:      "cache_lookups_total",
			Help:      "Payload cache lookups by result.",
		}, []string{"result"}),
		ResolutionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "buoyant",
			Name:      "resolution_duration_seconds",
			Help:      "End-to-end duration of one sea state resolution.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FamilyOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "buoyant",
			Name:      "family_outcomes_total",
			Help:      "Measurement family resolutions by family and outcome.",
		}, []string{"family", "outcome"}),
		GateRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "buoyant",
			Name:      "gate_rejections_total",
			Help:      "Requests rejected by the coastal gate.",
		}),
	}
}

// Serve exposes /metrics on addr. Blocks; run it in its own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
