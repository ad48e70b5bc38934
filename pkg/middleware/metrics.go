package middleware

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dailycontents").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for op duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "dailycontents",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for the host. A nil *Metrics is a
// valid no-op recorder and middleware.
type Metrics struct {
	opsTotal        *prometheus.CounterVec
	opDuration      *prometheus.HistogramVec
	opErrors        *prometheus.CounterVec
	activations     *prometheus.CounterVec
	liveConnections prometheus.Gauge
	wsErrors        *prometheus.CounterVec
}

// Prometheus registers the metrics with the configured registry and returns
// them. Registering twice with the same registry panics, as with promauto.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ops_total",
			Help:        "Total number of page renders and activations processed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "page", "status"}),

		opDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "op_duration_seconds",
			Help:        "Page render and activation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind", "page"}),

		opErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "op_errors_total",
			Help:        "Total number of failed ops by error type",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "page", "error_type"}),

		activations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "activations_total",
			Help:        "Total number of activations by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "outcome"}),

		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_connections",
			Help:        "Number of open live WebSocket connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Handle implements Middleware.
func (m *Metrics) Handle(op *Op, next func() error) error {
	if m == nil {
		return next()
	}

	page := op.Page
	if page == "" {
		page = "/"
	}
	kind := string(op.Kind)

	start := time.Now()
	err := next()
	m.opDuration.WithLabelValues(kind, page).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
		m.opErrors.WithLabelValues(kind, page, categorizeError(err)).Inc()
	}
	m.opsTotal.WithLabelValues(kind, page, status).Inc()

	if op.Kind == OpActivate && err == nil {
		outcome := op.Outcome
		if outcome == "" {
			outcome = OutcomeNone
		}
		m.activations.WithLabelValues(page, outcome).Inc()
	}
	return err
}

// categorizeError keeps error labels low-cardinality.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "canceled"):
		return "canceled"
	case strings.Contains(msg, "not found"), strings.Contains(msg, "unknown page"):
		return "not_found"
	case strings.Contains(msg, "websocket"):
		return "websocket"
	default:
		return "internal"
	}
}

// ConnOpened records a new live connection.
func (m *Metrics) ConnOpened() {
	if m != nil {
		m.liveConnections.Inc()
	}
}

// ConnClosed records a live connection closing.
func (m *Metrics) ConnClosed() {
	if m != nil {
		m.liveConnections.Dec()
	}
}

// WebSocketError records a WebSocket error of the given type
// (e.g. "upgrade", "read", "write").
func (m *Metrics) WebSocketError(errorType string) {
	if m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}
