package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arbiter",
		Short:         "Deterministic build-vs-buy-vs-extend decisions",
		Long:          "Arbiter evaluates competing options against weighted criteria across reference platforms and produces a ranked list plus one categorical recommendation. Identical input always yields identical output.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newEvaluateCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
