package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "recipes").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is where the metrics are registered.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Gatherer is what Handler serves. It defaults to Registry when that is
	// a *prometheus.Registry, else prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithGatherer sets what Handler serves.
func WithGatherer(g prometheus.Gatherer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Gatherer = g
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "recipes",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of one server.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	dispatches     *prometheus.CounterVec
	urlSyncs       *prometheus.CounterVec
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	wsErrors       *prometheus.CounterVec
}

// NewMetrics registers the collectors. Registering twice on the same
// registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Gatherer == nil {
		if g, ok := config.Registry.(prometheus.Gatherer); ok {
			config.Gatherer = g
		} else {
			config.Gatherer = prometheus.DefaultGatherer
		}
	}

	factory := promauto.With(config.Registry)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string, labels ...string) *prometheus.HistogramVec {
		return factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, labels)
	}

	return &Metrics{
		gatherer: config.Gatherer,

		httpRequests: counter("http_requests_total",
			"Total HTTP requests by route, method and status code", "route", "method", "code"),
		httpDuration: histogram("http_request_duration_seconds",
			"HTTP request duration in seconds", "route"),
		dispatches: counter("dispatches_total",
			"Total dispatched actions by slice, kind and whether the slice changed", "slice", "kind", "changed"),
		urlSyncs: counter("url_syncs_total",
			"Total address bar writes by mode", "mode"),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_total",
			Help:        "Total WebSocket sessions opened",
			ConstLabels: config.ConstLabels,
		}),
		fetches: counter("fetches_total",
			"Total search API calls by op and outcome", "op", "outcome"),
		fetchDuration: histogram("fetch_duration_seconds",
			"Search API call duration in seconds", "op"),
		wsErrors: counter("websocket_errors_total",
			"Total WebSocket errors by type", "type"),
	}
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// HTTP is chi-compatible middleware that counts and times requests. The
// route label is the chi route pattern, so /recipes/{id} stays one series.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

// DispatchHook returns a container hook that counts dispatches.
func (m *Metrics) DispatchHook() recipes.Hook {
	return func(a recipes.Action, changed bool) {
		m.dispatches.WithLabelValues(a.Slice().String(), strings.ToLower(a.Kind().String()), strconv.FormatBool(changed)).Inc()
	}
}

// RecordURLSync records one address bar write.
func (m *Metrics) RecordURLSync(mode urlparam.URLMode) {
	m.urlSyncs.WithLabelValues(mode.String()).Inc()
}

// RecordSessionOpen records a new session.
func (m *Metrics) RecordSessionOpen() {
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

// RecordSessionClose records a session ending.
func (m *Metrics) RecordSessionClose() {
	m.activeSessions.Dec()
}

// RecordFetch records one search API call. The outcome label is "ok" or
// the error code.
func (m *Metrics) RecordFetch(op string, d time.Duration, err error) {
	m.fetchDuration.WithLabelValues(op).Observe(d.Seconds())
	m.fetches.WithLabelValues(op, outcome(err)).Inc()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}

// outcome keeps label cardinality bounded: error codes, never messages.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
