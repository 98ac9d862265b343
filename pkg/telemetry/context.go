package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Telemetry bundles logging, tracing, and metrics behind one handle, the
// same aggregation the teacher's Telemetry struct provides, minus the event
// bus (see DESIGN.md).
type Telemetry struct {
	Logger  *Logger
	Tracer  *Tracer
	Metrics *Metrics
	Config  *Config
}

// telemetryContextKey is the context key for telemetry instances.
type telemetryContextKey struct{}

// NewTelemetry creates a new telemetry instance from configuration.
func NewTelemetry(cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	tracer, err := NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, err
	}
	metrics, err := NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	return &Telemetry{Logger: logger, Tracer: tracer, Metrics: metrics, Config: cfg}, nil
}

// WithContext adds the telemetry instance to the context.
func (t *Telemetry) WithContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, telemetryContextKey{}, t)
	return t.Logger.WithContext(ctx)
}

// FromTelemetryContext retrieves the telemetry instance from the context,
// or nil if none was stored.
func FromTelemetryContext(ctx context.Context) *Telemetry {
	if t, ok := ctx.Value(telemetryContextKey{}).(*Telemetry); ok {
		return t
	}
	return nil
}

// Shutdown gracefully shuts down all telemetry components.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.Tracer.Shutdown(ctx)
}

// Flush forces all pending telemetry data to be exported.
func (t *Telemetry) Flush(ctx context.Context) error {
	return t.Tracer.ForceFlush(ctx)
}

// StartMetricsServer starts the metrics HTTP server if metrics are enabled.
func (t *Telemetry) StartMetricsServer() error {
	return t.Metrics.StartMetricsServer()
}

// EvaluateSpan instruments one evaluator.Evaluate call: it opens the
// "odrl.evaluate" span, and returns an End func the caller defers,
// which records the decision on both the span and the decisions/duration
// metrics (spec.md §4.5, Ambient/Domain Stack: Tracer wraps Evaluate).
func EvaluateSpan(ctx context.Context, policyUID, action string) (context.Context, func(decision string, matchedRules int)) {
	tel := FromTelemetryContext(ctx)
	if tel == nil {
		return ctx, func(string, int) {}
	}

	spanCtx, span := tel.Tracer.StartEvaluateSpan(ctx, policyUID, action)
	timer := NewTimer()

	return spanCtx, func(decision string, matchedRules int) {
		RecordDecision(span, decision, matchedRules)
		span.End()
		tel.Metrics.RecordDecision(decision, timer.Duration())
	}
}

// SpanFromEvaluateContext is a thin re-export so callers instrumenting
// nested work inside an Evaluate span don't need to import go.opentelemetry
// directly.
func SpanFromEvaluateContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
