package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odrlcore/odrlengine/pkg/config"
	"github.com/odrlcore/odrlengine/pkg/telemetry"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "odrlctl",
		Short: "odrlctl - ODRL 2.2 policy evaluation engine",
		Long: `odrlctl evaluates ODRL 2.2 policy documents against access requests.

Features:
  - JSON-LD ingestion into a typed Policy AST
  - Closed-world evaluation with prohibition dominance and conflict strategies
  - Constraint evaluation, including sliding-window counters
  - Directory watching with debounced reload`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newEvaluateCommand())
	rootCmd.AddCommand(newValidateCommand())

	return rootCmd
}

// loadTelemetry builds a Telemetry instance from the --config/--verbose
// flags, mirroring the teacher's per-command config resolution.
func loadTelemetry() (*telemetry.Telemetry, error) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}
	if verbose {
		cfg.Verbose = true
	}

	telCfg := telemetry.DefaultConfig()
	telCfg.Logging.Output = cfg.Output
	telCfg.Logging.Format = cfg.Format
	telCfg.Logging.Level = cfg.EffectiveLevel()
	telCfg.Logging.TimeFormat = cfg.TimeFormat
	telCfg.Tracing.Enabled = false
	telCfg.Metrics.Enabled = false

	return telemetry.NewTelemetry(telCfg)
}
