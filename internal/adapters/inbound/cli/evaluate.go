package cli

import (
	"encoding/json"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/adapters/outbound/docio"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/gitinfo"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/report"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/schema"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/tui"
	"github.com/arbiterhq/arbiter/internal/application"
	"github.com/arbiterhq/arbiter/internal/domain"
	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	var (
		profileName       string
		outputPath        string
		jsonOutputPath    string
		jsonStdout        bool
		allowUnconfirmed  bool
		allowSingleOption bool
		noSchema          bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <document>",
		Short: "Score and rank alternatives from a decision document",
		Long:  "Evaluate a JSON or YAML decision document: normalize criteria and blend weights, score every alternative per platform, rank deterministically, and classify one recommended action.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := domain.ParseProfile(profileName)
			if err != nil {
				return err
			}

			svc := application.NewEvaluateService(
				docio.NewReader(),
				schema.New(),
				gitinfo.New(),
			)

			result, err := svc.Evaluate(args[0], application.RunOptions{
				Profile:           profile,
				AllowUnconfirmed:  allowUnconfirmed,
				AllowSingleOption: allowSingleOption,
				SkipSchema:        noSchema,
			})
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			if outputPath != "" {
				md := report.NewMarkdown().Render(result)
				if err := docio.WriteReport(outputPath, md); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}
			if jsonOutputPath != "" {
				if err := docio.WriteResult(jsonOutputPath, result); err != nil {
					return fmt.Errorf("writing result: %w", err)
				}
			}

			if jsonStdout {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			if outputPath == "" && jsonOutputPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "guardrailed", "Engine profile: simple, review, or guardrailed")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path to write the markdown report")
	cmd.Flags().StringVar(&jsonOutputPath, "json-output", "", "Path to write the result JSON")
	cmd.Flags().BoolVar(&jsonStdout, "json", false, "Print result JSON to stdout")
	cmd.Flags().BoolVar(&allowUnconfirmed, "allow-unconfirmed", false, "Allow scoring when criteria_confirmed is false (simulation only)")
	cmd.Flags().BoolVar(&allowSingleOption, "allow-single-option", false, "Allow scoring a single alternative (simulation only)")
	cmd.Flags().BoolVar(&noSchema, "no-schema", false, "Skip JSON-schema validation of the input document")

	return cmd
}
