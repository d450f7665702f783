package cli

import (
	"fmt"

	"github.com/arbiterhq/arbiter/internal/adapters/inbound/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the evaluator over MCP (stdio)",
		Long:  "Expose evaluate, validate, and rules as MCP tools over stdio so agent clients can run decision analyses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcp.NewServer()
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
