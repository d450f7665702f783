package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with the Arbiter tools registered.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		"arbiter",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	registerTools(s)
	return s
}
