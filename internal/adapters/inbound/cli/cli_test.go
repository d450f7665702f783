package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arbiterhq/arbiter/internal/adapters/inbound/cli"
	"github.com/arbiterhq/arbiter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand_JSONToStdout(t *testing.T) {
	out, err := runCLI(t, "evaluate", filepath.Join("testdata", "decision.json"), "--json")
	require.NoError(t, err)

	var result domain.EvaluationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "run-cli-1", result.RunID)
	assert.Equal(t, "notegen", result.RankedAlternatives[0].ID)
	assert.Equal(t, domain.ActionSelect, result.Recommendation.Action)
}

func TestEvaluateCommand_DefaultTerminalOutput(t *testing.T) {
	out, err := runCLI(t, "evaluate", filepath.Join("testdata", "decision.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "NoteGen")
	assert.Contains(t, out, "SELECT")
}

func TestEvaluateCommand_WritesReportAndResult(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.md")
	resultPath := filepath.Join(dir, "result.json")

	out, err := runCLI(t, "evaluate", filepath.Join("testdata", "decision.json"),
		"--output", reportPath, "--json-output", resultPath)
	require.NoError(t, err)
	assert.Empty(t, out, "file outputs suppress the terminal rendering")

	md, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Decision Analysis: Choose a release notes generator")

	data, err := os.ReadFile(resultPath)
	require.NoError(t, err)
	var result domain.EvaluationResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "run-cli-1", result.RunID)
}

func TestEvaluateCommand_ProfileFlag(t *testing.T) {
	out, err := runCLI(t, "evaluate", filepath.Join("testdata", "decision.json"),
		"--profile", "simple", "--json")
	require.NoError(t, err)

	var result domain.EvaluationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "simple", result.Profile)

	_, err = runCLI(t, "evaluate", filepath.Join("testdata", "decision.json"),
		"--profile", "strict")
	assert.ErrorContains(t, err, "unknown profile")
}

func TestEvaluateCommand_InvalidDocument(t *testing.T) {
	_, err := runCLI(t, "evaluate", filepath.Join("testdata", "invalid.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "evaluation failed")
	assert.ErrorContains(t, err, "does not match schema")
}

func TestValidateCommand(t *testing.T) {
	out, err := runCLI(t, "validate", filepath.Join("testdata", "decision.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "document is valid")

	out, err = runCLI(t, "validate", filepath.Join("testdata", "invalid.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "document is invalid")
	assert.Contains(t, out, "current_platform")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "arbiter")
}
