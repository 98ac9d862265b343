package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/odrlcore/odrlengine/pkg/odrl/evaluator"
	"github.com/odrlcore/odrlengine/pkg/odrl/ingest"
	"github.com/odrlcore/odrlengine/pkg/odrl/world"
	"github.com/odrlcore/odrlengine/pkg/telemetry"
)

func newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <policy.json> <action> <assignee> <assigner> <target>",
		Short: "Evaluate an access request against an ODRL policy",
		Long: `Evaluate ingests an ODRL 2.2 policy document, builds a fresh evaluation
world, and resolves the given request against it, printing the resulting
decision (permit, deny, or indeterminate).`,
		Example: `  odrlctl evaluate policy.json http://www.w3.org/ns/odrl/2/use \
    http://example.com/assignee http://example.com/assigner http://example.com/asset`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			tel, err := loadTelemetry()
			if err != nil {
				return fmt.Errorf("loading telemetry: %w", err)
			}
			defer func() { _ = tel.Shutdown(cmd.Context()) }()

			loader := ingest.NewLoader(tel.Logger.Zerolog())
			policies, err := loader.LoadFromPaths([]string{args[0]})
			if err != nil {
				return fmt.Errorf("loading policy: %w", err)
			}
			if len(policies) != 1 {
				return fmt.Errorf("expected exactly one policy document at %s, got %d", args[0], len(policies))
			}

			req := evaluator.Request{
				Action:   args[1],
				Assignee: args[2],
				Assigner: args[3],
				Target:   args[4],
			}

			w := world.New(nil)
			ev := evaluator.New(tel.Logger.Zerolog().With().Str("trace_id", uuid.NewString()).Logger())

			ctx := tel.WithContext(cmd.Context())
			ctx, end := telemetry.EvaluateSpan(ctx, policies[0].UID, req.Action)
			decision, err := ev.Evaluate(ctx, policies[0], w, req)
			end(decision.String(), len(policies[0].AllRules()))
			if err != nil {
				return fmt.Errorf("evaluating request: %w", err)
			}

			fmt.Fprintln(os.Stdout, decision.String())
			return nil
		},
	}

	return cmd
}
