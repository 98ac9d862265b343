package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the process-wide knobs spec.md §6 allows: a single
// verbosity flag plus the logging sink/format fields telemetry.LoggingConfig
// already defines. There is no environment-variable layer and no schema
// language here (see DESIGN.md for why the teacher's CUE/Starlark stack was
// not carried forward).
type Config struct {
	// Verbose sets the logger to debug level when true.
	Verbose bool `yaml:"verbose"`

	// Output is where logs are written: stdout, stderr, or a file path.
	Output string `yaml:"output"`

	// Format is the log format: console or json.
	Format string `yaml:"format"`

	// Level is the minimum log level when Verbose is false.
	Level string `yaml:"level"`

	// TimeFormat is the timestamp format used by the logger.
	TimeFormat string `yaml:"timeFormat"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Verbose:    false,
		Output:     "stderr",
		Format:     "console",
		Level:      "info",
		TimeFormat: "rfc3339",
	}
}

// Load reads a YAML config file from path and overlays it on Default.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration holds acceptable values.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
	if c.Format != "console" && c.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'console' or 'json')", c.Format)
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	return nil
}

// EffectiveLevel returns Level, or "debug" when Verbose overrides it.
func (c *Config) EffectiveLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.Level
}
