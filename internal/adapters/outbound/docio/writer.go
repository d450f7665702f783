package docio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbiterhq/arbiter/internal/domain"
)

// WriteReport writes a rendered markdown report, creating parent directories.
func WriteReport(path, report string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	return os.WriteFile(path, []byte(report), 0o644)
}

// WriteResult writes the evaluation result as indented JSON, creating parent
// directories.
func WriteResult(path string, result *domain.EvaluationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating result directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
