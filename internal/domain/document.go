package domain

// Document is the immutable input to a single evaluation run. It is decoded
// once from JSON or YAML and never mutated; scoring produces fresh derived
// records instead of annotating the input.
type Document struct {
	Decision            string             `json:"decision,omitempty"`
	RunID               string             `json:"run_id,omitempty"`
	CriteriaConfirmed   bool               `json:"criteria_confirmed,omitempty"`
	ScoreScale          string             `json:"score_scale,omitempty"`
	CurrentPlatform     string             `json:"current_platform"`
	MajorPlatforms      []string           `json:"major_platforms,omitempty"`
	Criteria            []Criterion        `json:"criteria"`
	Weights             *Blend             `json:"weights,omitempty"`
	RecommendationRules map[string]float64 `json:"recommendation_rules,omitempty"`
	Alternatives        []Alternative      `json:"alternatives"`
	Discovery           *Discovery         `json:"discovery,omitempty"`
}

// Criterion is a named, weighted dimension of comparison. After normalization
// weights are fractions summing to 1. Metric, DataSource and ScoringRule are
// required only when the profile enforces guardrails.
type Criterion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Weight      float64 `json:"weight"`
	Metric      string  `json:"metric,omitempty"`
	DataSource  string  `json:"data_source,omitempty"`
	ScoringRule string  `json:"scoring_rule,omitempty"`
}

// Blend is the two-term weighting between reference-platform performance and
// current-platform performance, normalized to sum to 1.
type Blend struct {
	MajorPlatformAverage float64 `json:"major_platform_average"`
	CurrentPlatform      float64 `json:"current_platform"`
}

// Alternative is one candidate option under evaluation. Scores is sparse:
// platform -> criterion id -> raw value, where an absent entry (or an explicit
// null) counts as missing data. Feasible defaults to true when unset.
type Alternative struct {
	ID            string                         `json:"id"`
	Name          string                         `json:"name,omitempty"`
	Type          string                         `json:"type,omitempty"`
	Effort        string                         `json:"effort,omitempty"`
	Risk          string                         `json:"risk,omitempty"`
	Feasible      *bool                          `json:"feasible,omitempty"`
	Justification string                         `json:"justification,omitempty"`
	Scores        map[string]map[string]*float64 `json:"scores,omitempty"`
	Evidence      []Evidence                     `json:"evidence,omitempty"`
	Notes         string                         `json:"notes,omitempty"`
}

// IsFeasible resolves the Feasible pointer, defaulting to true.
func (a Alternative) IsFeasible() bool {
	return a.Feasible == nil || *a.Feasible
}

// Evidence is one citation backing an external alternative.
type Evidence struct {
	SourceURL        string `json:"source_url"`
	SourceDate       string `json:"source_date"`
	EvidenceStrength string `json:"evidence_strength"`
}

// Discovery confirms that a search for external options either completed or
// was explicitly and justifiably skipped. Exactly one of Done or Blocked
// (with a non-empty reason) must hold.
type Discovery struct {
	ExternalDiscoveryDone    bool   `json:"external_discovery_done"`
	ExternalDiscoveryBlocked bool   `json:"external_discovery_blocked"`
	BlockReason              string `json:"block_reason,omitempty"`
}
