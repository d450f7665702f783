package domain

import (
	"fmt"
	"strings"
	"time"
)

// Options are the per-run escape hatches and the profile selection. Now is
// injectable so tests can pin run_id and evaluated_at; nil means wall clock.
type Options struct {
	Profile           Profile
	AllowUnconfirmed  bool
	AllowSingleOption bool
	Now               func() time.Time
}

// Evaluate runs the full pipeline: gates and normalization, per-platform
// scoring, aggregation, ranking, recommendation. It is a pure function of the
// document and options — no I/O, no shared state, and it either fully
// succeeds or fails validation before any scoring occurs.
func Evaluate(doc Document, opts Options) (*EvaluationResult, error) {
	p := opts.Profile
	if p.Name == "" {
		p = ProfileGuardrailed()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if p.RequireConfirmation && !opts.AllowUnconfirmed && !doc.CriteriaConfirmed {
		return nil, fmt.Errorf("criteria_confirmed must be true before scoring")
	}

	currentPlatform := strings.TrimSpace(doc.CurrentPlatform)
	if currentPlatform == "" {
		return nil, fmt.Errorf("current_platform is required")
	}
	majorPlatforms, err := normalizeMajorPlatforms(doc.MajorPlatforms)
	if err != nil {
		return nil, err
	}

	scale, err := NormalizeScoreScale(doc.ScoreScale)
	if err != nil {
		return nil, err
	}
	criteria, err := NormalizeCriteria(doc.Criteria, p.Guardrails)
	if err != nil {
		return nil, err
	}
	alternatives, err := ValidateAlternatives(doc.Alternatives, p, opts.AllowSingleOption)
	if err != nil {
		return nil, err
	}
	if p.Guardrails {
		if err := ValidateDiscovery(doc.Discovery, alternatives); err != nil {
			return nil, err
		}
	}
	blend, err := NormalizeBlend(doc.Weights)
	if err != nil {
		return nil, err
	}
	rules, err := NormalizeRules(doc.RecommendationRules)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredAlternative, 0, len(alternatives))
	for _, alt := range alternatives {
		record, err := scoreAlternative(alt, criteria, currentPlatform, majorPlatforms, blend, scale, p.MissingValues)
		if err != nil {
			return nil, err
		}
		scored = append(scored, record)
	}

	ranked := rankAlternatives(scored, p.Guardrails)
	recommendation := recommend(ranked, rules, p)
	roundForDisplay(ranked)

	evaluatedAt := now().UTC()
	runID := strings.TrimSpace(doc.RunID)
	if runID == "" {
		runID = "run-" + evaluatedAt.Format("20060102T150405Z")
	}
	decision := strings.TrimSpace(doc.Decision)
	if decision == "" {
		decision = "Decision analysis"
	}

	return &EvaluationResult{
		RunID:              runID,
		ScorerVersion:      ScorerVersion,
		RulesVersion:       RulesVersion,
		EvaluatedAt:        evaluatedAt.Format(time.RFC3339),
		Decision:           decision,
		DecisionStatus:     DecisionStatus(recommendation.Action),
		CriteriaConfirmed:  doc.CriteriaConfirmed,
		Profile:            p.Name,
		ScoreScale:         scale,
		CurrentPlatform:    currentPlatform,
		MajorPlatforms:     majorPlatforms,
		Criteria:           criteria,
		Weights:            blend,
		RankedAlternatives: ranked,
		Recommendation:     recommendation,
	}, nil
}

func normalizeMajorPlatforms(platforms []string) ([]string, error) {
	if len(platforms) == 0 {
		return append([]string(nil), DefaultMajorPlatforms...), nil
	}
	cleaned := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("major_platforms must include at least one non-empty platform name")
	}
	return cleaned, nil
}

// roundForDisplay applies output precision in place: scores to 2 decimals,
// coverage to 3. It runs after ranking and recommendation so comparisons
// never see rounded values.
func roundForDisplay(ranked []ScoredAlternative) {
	for i := range ranked {
		item := &ranked[i]
		for platform, score := range item.PlatformScores {
			item.PlatformScores[platform] = round2(score)
		}
		item.MajorPlatformAverage = round2(item.MajorPlatformAverage)
		item.CurrentPlatformScore = round2(item.CurrentPlatformScore)
		item.OverallSuccessScore = round2(item.OverallSuccessScore)
		item.Coverage = round3(item.Coverage)
		item.CountCoverage = round3(item.CountCoverage)
	}
}
