// Package metrics exposes the service's Prometheus counters.
//
// Every Metrics value owns its own registry so tests can construct as many
// as they like without duplicate-registration panics. A nil *Metrics is valid
// and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters recorded by the subscription workflow and the
// storage guard.
type Metrics struct {
	registry      *prometheus.Registry
	outcomes      *prometheus.CounterVec
	storageErrors *prometheus.CounterVec
}

// New creates a Metrics with a fresh registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter",
			Name:      "subscription_outcomes_total",
			Help:      "Subscription requests by terminal outcome.",
		}, []string{"outcome"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsletter",
			Name:      "storage_errors_total",
			Help:      "Storage backend errors swallowed by the fail-closed store guard.",
		}, []string{"backend", "operation"}),
	}
	reg.MustRegister(
		m.outcomes,
		m.storageErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOutcome counts one finished subscription request.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}

// ObserveStorageError counts one backend error.
func (m *Metrics) ObserveStorageError(backend, operation string) {
	if m == nil {
		return
	}
	m.storageErrors.WithLabelValues(backend, operation).Inc()
}

// Outcomes returns the outcome counter vector.
func (m *Metrics) Outcomes() *prometheus.CounterVec { return m.outcomes }

// StorageErrors returns the storage error counter vector.
func (m *Metrics) StorageErrors() *prometheus.CounterVec { return m.storageErrors }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
