package application

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arbiterhq/arbiter/internal/domain"
)

// EvaluateService orchestrates a run:
// read document → schema validate → evaluate → attach provenance.
type EvaluateService struct {
	reader    domain.DocumentReader
	validator domain.SchemaValidator
	gitInfo   domain.GitInfo
}

func NewEvaluateService(
	reader domain.DocumentReader,
	validator domain.SchemaValidator,
	gitInfo domain.GitInfo,
) *EvaluateService {
	return &EvaluateService{
		reader:    reader,
		validator: validator,
		gitInfo:   gitInfo,
	}
}

// RunOptions controls a single evaluation.
type RunOptions struct {
	Profile           domain.Profile
	AllowUnconfirmed  bool
	AllowSingleOption bool
	SkipSchema        bool
}

// Evaluate runs the full pipeline for the document at path. Schema errors and
// engine validation errors are both surfaced verbatim; there is no partial
// result.
func (s *EvaluateService) Evaluate(path string, opts RunOptions) (*domain.EvaluationResult, error) {
	doc, instance, err := s.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	if !opts.SkipSchema {
		if errs := s.validator.ValidateDocument(instance); len(errs) > 0 {
			return nil, fmt.Errorf("document does not match schema:\n  %s", strings.Join(errs, "\n  "))
		}
	}

	result, err := domain.Evaluate(doc, domain.Options{
		Profile:           opts.Profile,
		AllowUnconfirmed:  opts.AllowUnconfirmed,
		AllowSingleOption: opts.AllowSingleOption,
	})
	if err != nil {
		return nil, err
	}

	// Best-effort provenance: absent when the document is not in a git repo.
	if s.gitInfo != nil {
		if hash, err := s.gitInfo.CommitHash(filepath.Dir(path)); err == nil {
			result.CommitHash = hash
		}
	}

	return result, nil
}

// CheckDocument runs schema validation only, without evaluating.
func (s *EvaluateService) CheckDocument(path string) ([]string, error) {
	_, instance, err := s.reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return s.validator.ValidateDocument(instance), nil
}

// CheckResult verifies that a produced result validates against the declared
// output schema. The engine must never emit a record that fails this.
func (s *EvaluateService) CheckResult(result *domain.EvaluationResult) []string {
	data, err := json.Marshal(result)
	if err != nil {
		return []string{fmt.Sprintf("marshaling result: %v", err)}
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return []string{fmt.Sprintf("decoding result: %v", err)}
	}
	return s.validator.ValidateResult(instance)
}
