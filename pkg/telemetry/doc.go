// Package telemetry provides observability for the ODRL engine: structured
// logging (zerolog), tracing (OpenTelemetry, stdout exporter), and
// Prometheus metrics over evaluation decisions.
//
// # Usage
//
//	cfg := telemetry.DefaultConfig()
//	tel, err := telemetry.NewTelemetry(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(context.Background())
//
//	ctx = tel.WithContext(ctx)
//	ctx, end := telemetry.EvaluateSpan(ctx, policy.UID, req.Action)
//	decision, err := ev.Evaluate(ctx, policy, world, req)
//	end(decision.String(), matchedRules)
//
// # Logging
//
// Component loggers are created with NewComponentLogger and enriched with
// WithPolicy/WithDecision/WithAction rather than generic key/value pairs,
// matching how the teacher's Logger adds domain-specific fields.
//
// # Metrics
//
// decisions_total{decision} and evaluation_duration_seconds{decision} are
// exposed at /metrics (default :9090), alongside window_events_total for
// sliding-window constraint outcomes.
package telemetry
