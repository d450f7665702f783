package domain

// DocumentReader loads a decision document from disk. The generic instance is
// the JSON-compatible form of the same bytes, used for schema validation.
type DocumentReader interface {
	Read(path string) (Document, any, error)
}

// SchemaValidator checks documents and results against the published schemas.
// A nil/empty slice means the instance is valid.
type SchemaValidator interface {
	ValidateDocument(instance any) []string
	ValidateResult(instance any) []string
}

// GitInfo reports version-control provenance for the directory holding the
// input document.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// ReportRenderer turns an evaluation result into a human-readable report.
type ReportRenderer interface {
	Render(result *EvaluationResult) string
}
