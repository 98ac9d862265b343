package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for the ODRL engine: one counter
// vector over evaluation decisions, a histogram of evaluation latency, and
// a counter vector over sliding-window outcomes.
type Metrics struct {
	config MetricsConfig

	decisionsTotal     *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	windowEventsTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	buckets := cfg.DefaultHistogramBuckets
	if len(buckets) == 0 {
		buckets = evaluationBuckets
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Total number of policy evaluation decisions, by outcome.",
			},
			[]string{"decision"},
		),
		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of a single Evaluate call in seconds.",
				Buckets:   buckets,
			},
			[]string{"decision"},
		),
		windowEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "window_events_total",
				Help:      "Total number of sliding-window events recorded, by outcome (permitted/denied).",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(m.decisionsTotal, m.evaluationDuration, m.windowEventsTotal)
	return m, nil
}

// RecordDecision records one completed evaluation with its outcome and wall
// time.
func (m *Metrics) RecordDecision(decision string, duration time.Duration) {
	if m.decisionsTotal == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(decision).Inc()
	m.evaluationDuration.WithLabelValues(decision).Observe(duration.Seconds())
}

// RecordWindowEvent records whether a timeWindow constraint's sliding
// window permitted or denied the event that just evaluated it.
func (m *Metrics) RecordWindowEvent(permitted bool) {
	if m.windowEventsTotal == nil {
		return
	}
	outcome := "denied"
	if permitted {
		outcome = "permitted"
	}
	m.windowEventsTotal.WithLabelValues(outcome).Inc()
}

// Timer provides a convenient way to time operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// StartMetricsServer starts an HTTP server to expose metrics, mirroring the
// teacher's Metrics.StartMetricsServer.
func (m *Metrics) StartMetricsServer() error {
	if !m.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		_ = server.ListenAndServe()
	}()

	return nil
}
