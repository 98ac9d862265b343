package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odrlcore/odrlengine/pkg/odrl/ingest"
	"github.com/odrlcore/odrlengine/pkg/odrl/policy"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <policy.json>",
		Short: "Validate an ODRL policy document",
		Long: `Validate runs ingestion and structural validation on an ODRL 2.2 policy
document without evaluating any request against it: JSON-LD decoding,
ModelFactory dispatch, normalization, and the variant-specific checks
(every Agreement rule needs an assigner, an assignee, and a target; every
Offer rule needs a target and an assigner, but no assignee).`,
		Example: `  odrlctl validate policy.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tel, err := loadTelemetry()
			if err != nil {
				return fmt.Errorf("loading telemetry: %w", err)
			}
			defer func() { _ = tel.Shutdown(cmd.Context()) }()

			loader := ingest.NewLoader(tel.Logger.Zerolog())
			policies, err := loader.LoadFromPaths([]string{args[0]})
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
				os.Exit(1)
			}

			for _, p := range policies {
				if err := validateVariant(p); err != nil {
					fmt.Fprintf(os.Stderr, "invalid: %s: %v\n", p.UID, err)
					os.Exit(1)
				}
			}

			fmt.Fprintf(os.Stdout, "valid: %d polic%s\n", len(policies), plural(len(policies)))
			return nil
		},
	}

	return cmd
}

func validateVariant(p *policy.Policy) error {
	if err := policy.Validate(p); err != nil {
		return err
	}
	switch p.Variant {
	case policy.VariantAgreement:
		return policy.ValidateAgreement(p)
	case policy.VariantOffer:
		return policy.ValidateOffer(p)
	default:
		return nil
	}
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
