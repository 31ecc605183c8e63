// Package metrics exposes Prometheus collectors for the omen service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/narrative"
)

const namespace = "omens"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	omens      *prometheus.CounterVec
	repetition prometheus.Counter
	degenerate *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "status"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	m.omens = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "omens_selected_total",
		Help:      "Omens selected, by whether a signal or a general template drove the pick",
	}, []string{"path"})
	m.repetition = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repetition_fallbacks_total",
		Help:      "Selections where every candidate was recent and history was ignored",
	})
	m.degenerate = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "degenerate_positions_total",
		Help:      "Non-finite longitudes replaced by the default sign",
	}, []string{"body"})

	m.registry.MustRegister(
		m.requests, m.duration, m.omens, m.repetition, m.degenerate,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}

// OmenSelected records how an omen was chosen.
func (m *Metrics) OmenSelected(p narrative.Provenance) {
	path := "signal"
	if p.Fallback {
		path = "general"
	}
	m.omens.WithLabelValues(path).Inc()
	if p.RepetitionIgnored {
		m.repetition.Inc()
	}
}

// DegeneratePosition records a body whose longitude was not finite.
func (m *Metrics) DegeneratePosition(body ephemeris.Body) {
	m.degenerate.WithLabelValues(string(body)).Inc()
}

// TrackCacheSize exports size as the ephemeris cache entry gauge.
func (m *Metrics) TrackCacheSize(size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ephemeris_cache_entries",
		Help:      "Entries held by the ephemeris position cache",
	}, func() float64 { return float64(size()) }))
}
