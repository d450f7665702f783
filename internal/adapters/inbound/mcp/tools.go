package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arbiterhq/arbiter/internal/adapters/outbound/docio"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/gitinfo"
	"github.com/arbiterhq/arbiter/internal/adapters/outbound/schema"
	"github.com/arbiterhq/arbiter/internal/application"
	"github.com/arbiterhq/arbiter/internal/domain"
)

// registerTools registers all Arbiter MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. arbiter_evaluate
	s.AddTool(
		mcplib.NewTool("arbiter_evaluate",
			mcplib.WithDescription("Evaluate a decision document and return the ranked alternatives and recommendation as JSON"),
			mcplib.WithString("document",
				mcplib.Required(),
				mcplib.Description("Path to the decision document (JSON or YAML)"),
			),
			mcplib.WithString("profile", mcplib.Description("Engine profile: simple, review, or guardrailed (default: guardrailed)")),
			mcplib.WithBoolean("allow_unconfirmed", mcplib.Description("Allow scoring when criteria_confirmed is false (simulation only)")),
			mcplib.WithBoolean("allow_single_option", mcplib.Description("Allow scoring a single alternative (simulation only)")),
		),
		handleEvaluate(),
	)

	// 2. arbiter_validate
	s.AddTool(
		mcplib.NewTool("arbiter_validate",
			mcplib.WithDescription("Check a decision document against the published input schema"),
			mcplib.WithString("document",
				mcplib.Required(),
				mcplib.Description("Path to the decision document (JSON or YAML)"),
			),
		),
		handleValidate(),
	)

	// 3. arbiter_rules
	s.AddTool(
		mcplib.NewTool("arbiter_rules",
			mcplib.WithDescription("Returns the default reference platforms, blend weights, and recommendation thresholds"),
		),
		handleRules(),
	)
}

func newService() *application.EvaluateService {
	return application.NewEvaluateService(docio.NewReader(), schema.New(), gitinfo.New())
}

func handleEvaluate() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("document")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		profileName, _ := args["profile"].(string)
		profile, err := domain.ParseProfile(profileName)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		allowUnconfirmed, _ := args["allow_unconfirmed"].(bool)
		allowSingleOption, _ := args["allow_single_option"].(bool)

		result, err := newService().Evaluate(path, application.RunOptions{
			Profile:           profile,
			AllowUnconfirmed:  allowUnconfirmed,
			AllowSingleOption: allowSingleOption,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("evaluation failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleValidate() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("document")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		errs, err := newService().CheckDocument(path)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		if len(errs) > 0 {
			return errorResult("document is invalid:\n" + strings.Join(errs, "\n")), nil
		}
		return textResult("document is valid"), nil
	}
}

func handleRules() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		defaults := struct {
			MajorPlatforms []string     `json:"major_platforms"`
			Blend          domain.Blend `json:"blend"`
			Rules          domain.Rules `json:"rules"`
		}{
			MajorPlatforms: domain.DefaultMajorPlatforms,
			Blend:          domain.DefaultBlend,
			Rules:          domain.DefaultRules,
		}
		return jsonResult(defaults)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
