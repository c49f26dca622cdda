package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "candyledger"

// Flush results
const (
	FlushOK     = "ok"
	FlushFailed = "failed"
)

// Metrics holds the ledger's prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	Flushes       *prometheus.CounterVec // by result
	FlushDuration prometheus.Histogram
	Operations    *prometheus.CounterVec // by operation and outcome
	Minted        *prometheus.CounterVec // currency created, by source
	PendingOpen   prometheus.Gauge
	RaidWindows   prometheus.Counter
	HTTPRequests  *prometheus.CounterVec // by route and status
	HTTPDuration  *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Snapshot flushes by result.",
		}, []string{"result"}),
		FlushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flush_duration_seconds",
			Help:      "Time spent writing a snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Minted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candy_minted_total",
			Help:      "Currency created by the ledger, by source.",
		}, []string{"source"}),
		PendingOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_decisions",
			Help:      "Pending decisions awaiting a choice.",
		}),
		RaidWindows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "raid_windows_total",
			Help:      "Chat raid windows opened.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by route template and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(
		m.Flushes,
		m.FlushDuration,
		m.Operations,
		m.Minted,
		m.PendingOpen,
		m.RaidWindows,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe counts one operation outcome. An error outcome is labelled "error".
func (m *Metrics) Observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// Mint records currency created from nothing
func (m *Metrics) Mint(source string, amount int64) {
	if amount > 0 {
		m.Minted.WithLabelValues(source).Add(float64(amount))
	}
}

// ObserveHTTP records one served API request
func (m *Metrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
