package telemetry

import "fmt"

// Config is the telemetry configuration for the ODRL engine: logging,
// tracing, and metrics. There is no Events section here (see DESIGN.md for
// why the teacher's run/plan-unit event bus was dropped rather than
// adapted) — decision observability is covered by Logger and Metrics.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	Logging LoggingConfig
	Tracing TracingConfig
	Metrics MetricsConfig
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level sets the minimum log level (trace, debug, info, warn, error, fatal).
	Level string

	// Format specifies the log format (console, json).
	Format string

	// Output specifies where logs are written (stdout, stderr, file path).
	Output string

	// EnableCaller adds file:line caller information to logs.
	EnableCaller bool

	// TimeFormat specifies the timestamp format (unix, rfc3339, etc.).
	TimeFormat string
}

// TracingConfig configures distributed tracing. Only the stdout exporter is
// supported: the teacher's OTLP/gRPC collector path is not carried forward,
// since nothing in this repo runs as a long-lived service behind a
// collector (see DESIGN.md).
type TracingConfig struct {
	Enabled      bool
	SamplingRate float64
}

// MetricsConfig configures the Prometheus registry exposed by pkg/telemetry.
type MetricsConfig struct {
	Enabled                 bool
	ListenAddress           string
	Path                    string
	Namespace               string
	DefaultHistogramBuckets []float64
}

// DefaultConfig returns a default telemetry configuration suitable for an
// interactive odrlctl invocation.
func DefaultConfig() *Config {
	return &Config{
		ServiceName:    "odrlengine",
		ServiceVersion: "dev",
		Environment:    "development",
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			Output:       "stdout",
			EnableCaller: false,
			TimeFormat:   "rfc3339",
		},
		Tracing: TracingConfig{
			Enabled:      true,
			SamplingRate: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:       true,
			ListenAddress: ":9090",
			Path:          "/metrics",
			Namespace:     "odrl",
			DefaultHistogramBuckets: []float64{
				0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0,
			},
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'console' or 'json')", c.Logging.Format)
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0 and 1, got: %f", c.Tracing.SamplingRate)
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddress == "" {
		return fmt.Errorf("metrics listen address is required when metrics are enabled")
	}
	return nil
}

// evaluationBuckets is the default histogram bucket set for
// odrl_evaluation_duration_seconds when none is configured; evaluation is a
// pure in-memory walk of the Policy AST, so the range is tuned much lower
// than the teacher's provider-call buckets.
var evaluationBuckets = []float64{
	0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1,
}
