// Package config loads the small set of process-wide knobs odrlctl accepts:
// a verbosity flag and the logging sink/format/level/timeFormat fields
// consumed by pkg/telemetry. Configuration is plain YAML
// (gopkg.in/yaml.v3) with no schema language and no environment-variable
// layer.
//
// # Usage
//
//	cfg, err := config.Load("odrlctl.yaml")
//	if err != nil {
//	    cfg = config.Default()
//	}
//	logCfg := telemetry.LoggingConfig{
//	    Output:     cfg.Output,
//	    Format:     cfg.Format,
//	    Level:      cfg.EffectiveLevel(),
//	    TimeFormat: cfg.TimeFormat,
//	}
package config
