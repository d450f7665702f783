package domain

import "math"

// Rules holds the normalized recommendation thresholds. Immutable once
// produced by NormalizeRules.
type Rules struct {
	SelectMin     float64 `json:"select_min"`
	SelectMargin  float64 `json:"select_margin"`
	ComposeMin    float64 `json:"compose_min"`
	ComposeMargin float64 `json:"compose_margin"`
	ImproveMin    float64 `json:"improve_min"`
	ExtendGap     float64 `json:"extend_gap"`
	MinCoverage   float64 `json:"min_coverage"`
}

// ScoredAlternative is the derived record produced for one alternative.
// Coverage is the covered weight fraction averaged over platforms under
// exclude-renormalize, or the populated slot fraction under zero-fill.
// CountCoverage is always the slot fraction; MinCoverage gates compare
// against Coverage, not CountCoverage.
type ScoredAlternative struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	Type                 string             `json:"type,omitempty"`
	Effort               string             `json:"effort,omitempty"`
	Risk                 string             `json:"risk,omitempty"`
	EffortRank           int                `json:"effort_rank"`
	RiskRank             int                `json:"risk_rank"`
	Feasible             bool               `json:"feasible"`
	Justification        string             `json:"justification,omitempty"`
	PlatformScores       map[string]float64 `json:"platform_scores"`
	MajorPlatformAverage float64            `json:"major_platform_average"`
	CurrentPlatformScore float64            `json:"current_platform_score"`
	OverallSuccessScore  float64            `json:"overall_success_score"`
	Coverage             float64            `json:"coverage"`
	CountCoverage        float64            `json:"count_coverage"`
	MissingValues        int                `json:"missing_values"`
	Rank                 int                `json:"rank"`
	Notes                string             `json:"notes,omitempty"`
}

// Recommendation actions, in the priority order of the decision procedure.
const (
	ActionSelect   = "select"
	ActionCompose  = "compose"
	ActionExtend   = "extend"
	ActionImprove  = "improve"
	ActionBuildNew = "build-new"
	ActionNoGo     = "no-go"
)

// Recommendation maps the ranked list into one discrete recommended action.
type Recommendation struct {
	Action              string   `json:"action"`
	ChosenOptionIDs     []string `json:"chosen_option_ids"`
	TopOptionID         string   `json:"top_option_id"`
	ScoreMarginVsSecond float64  `json:"score_margin_vs_second"`
	Reason              string   `json:"reason"`
	Rules               Rules    `json:"rules"`
}

// DecisionStatus collapses an action into proceed / no-go / defer.
func DecisionStatus(action string) string {
	switch action {
	case ActionSelect, ActionCompose, ActionExtend:
		return "proceed"
	case ActionNoGo:
		return "no-go"
	}
	return "defer"
}

// EvaluationResult is the terminal artifact of a run. It echoes normalized
// configuration, the ranked records, and one recommendation. Produced fresh
// per run; never merged with a prior result.
type EvaluationResult struct {
	RunID              string              `json:"run_id"`
	ScorerVersion      string              `json:"scorer_version"`
	RulesVersion       string              `json:"rules_version"`
	EvaluatedAt        string              `json:"evaluated_at"`
	CommitHash         string              `json:"commit_hash,omitempty"`
	Decision           string              `json:"decision"`
	DecisionStatus     string              `json:"decision_status"`
	CriteriaConfirmed  bool                `json:"criteria_confirmed"`
	Profile            string              `json:"profile"`
	ScoreScale         string              `json:"score_scale"`
	CurrentPlatform    string              `json:"current_platform"`
	MajorPlatforms     []string            `json:"major_platforms"`
	Criteria           []Criterion         `json:"criteria"`
	Weights            Blend               `json:"weights"`
	RankedAlternatives []ScoredAlternative `json:"ranked_alternatives"`
	Recommendation     Recommendation      `json:"recommendation"`
}

// round2 and round3 are display precision only. Ranking and the recommender
// always compare full-precision values so near-ties cannot flip ranks.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
