// Registers:
//
//	#dopc_quotes_total{outcome,reason}
//	#dopc_venue_fetch_duration_seconds{endpoint}
//	#go_* and process_* system metrics
//
// Served by Handler on the API router.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry      *prometheus.Registry
	quotes        *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		quotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dopc_quotes_total",
				Help: "Number of quote computations by outcome",
			},
			[]string{"outcome", "reason"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dopc_venue_fetch_duration_seconds",
				Help:    "Latency of venue data fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
	m.registry.MustRegister(
		m.quotes,
		m.fetchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// QuoteOutcome counts one finished quote. An empty reason is recorded as "none".
func (m *Metrics) QuoteOutcome(outcome, reason string) {
	if reason == "" {
		reason = "none"
	}
	m.quotes.WithLabelValues(outcome, reason).Inc()
}

func (m *Metrics) FetchDuration(endpoint string, d time.Duration) {
	m.fetchDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
