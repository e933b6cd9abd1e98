// Package metrics exposes the planner's operational counters via a
// dedicated prometheus registry, so tests can create isolated sets.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Set struct {
	registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	ItemWrites     prometheus.Counter
	DecodeFailures prometheus.Counter
	ImportRejected prometheus.Counter
}

// NewSet creates the planner's counter set on a fresh registry.
func NewSet() *Set {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	return &Set{
		registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aarshjul_http_requests_total",
			Help: "HTTP requests served, by path and status class.",
		}, []string{"path", "status"}),
		ItemWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "aarshjul_item_writes_total",
			Help: "Item collection writes persisted to the store.",
		}),
		DecodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "aarshjul_snapshot_decode_failures_total",
			Help: "Share-link tokens that failed to decode and fell back to the store.",
		}),
		ImportRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "aarshjul_import_rejected_total",
			Help: "Import payloads rejected for not being a JSON array.",
		}),
	}
}

// Handler returns the /metrics endpoint for this set.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
