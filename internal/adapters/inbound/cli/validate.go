package cli

import (
	"fmt"

	"github.com/arbiterhq/arbiter/internal/adapters/outbound/docio"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/schema"
	"github.com/arbiterhq/arbiter/internal/application"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a decision document against the published schema",
		Long:  "Validate a JSON or YAML decision document against the input schema without evaluating it. Prints one instance-path error per violation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewEvaluateService(docio.NewReader(), schema.New(), nil)

			errs, err := svc.CheckDocument(args[0])
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(cmd.OutOrStdout(), e)
				}
				return fmt.Errorf("document is invalid: %d schema violation(s)", len(errs))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "document is valid")
			return nil
		},
	}
}
