package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Engagement metrics
	ViewsCounted          *prometheus.CounterVec
	CacheErrors           *prometheus.CounterVec
	CounterUpdateFailures prometheus.Counter

	// Content metrics
	CommentsCreated prometheus.Counter

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
}

// New creates Metrics registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ViewsCounted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_views_counted_total",
				Help: "Post counter increments applied, by kind (pv or uv)",
			},
			[]string{"kind"},
		),

		CacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_window_cache_errors_total",
				Help: "Engagement window cache failures treated as misses",
			},
			[]string{"kind"},
		),

		CounterUpdateFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blog_counter_update_failures_total",
				Help: "Persisted pv/uv increments that failed",
			},
		),

		CommentsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blog_comments_created_total",
				Help: "Comments accepted from visitors",
			},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blog_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
