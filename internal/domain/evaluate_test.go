package domain_test

import (
	"testing"
	"time"

	"github.com/arbiterhq/arbiter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func fixedClock() time.Time {
	return time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
}

// baseDoc is a minimal guardrailed document: one reference platform, two
// equally weighted criteria, discovery explicitly blocked.
func baseDoc() domain.Document {
	return domain.Document{
		Decision:          "Evaluate code review assistant",
		CriteriaConfirmed: true,
		CurrentPlatform:   "chatgpt",
		MajorPlatforms:    []string{"chatgpt"},
		Criteria: []domain.Criterion{
			{ID: "fit", Name: "Capability fit", Weight: 1, Metric: "percent of required features available", DataSource: "vendor docs", ScoringRule: "feature checklist coverage"},
			{ID: "risk", Name: "Adoption risk", Weight: 1, Metric: "count of blocking issues", DataSource: "pilot notes", ScoringRule: "inverse of open blockers"},
		},
		Discovery: &domain.Discovery{
			ExternalDiscoveryBlocked: true,
			BlockReason:              "procurement window closed for this quarter",
		},
	}
}

func internalAlt(id string, scores map[string]*float64) domain.Alternative {
	return domain.Alternative{
		ID:            id,
		Name:          id,
		Type:          "internal",
		Effort:        "M",
		Risk:          "Med",
		Justification: "existing tool already deployed to the team",
		Scores:        map[string]map[string]*float64{"chatgpt": scores},
	}
}

func TestEvaluate_MissingScoresExcludedNotZeroed(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(100), "risk": nil}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)
	require.Len(t, result.RankedAlternatives, 2)

	a := result.RankedAlternatives[0]
	assert.Equal(t, "a", a.ID, "excluded missing value keeps a at 100, above b at 80")
	assert.Equal(t, 1, a.Rank)
	assert.InDelta(t, 100.0, a.CurrentPlatformScore, 1e-9)
	assert.InDelta(t, 100.0, a.OverallSuccessScore, 1e-9)
	assert.InDelta(t, 0.5, a.Coverage, 1e-9)
	assert.InDelta(t, 0.5, a.CountCoverage, 1e-9)
	assert.Equal(t, 1, a.MissingValues)

	b := result.RankedAlternatives[1]
	assert.InDelta(t, 80.0, b.OverallSuccessScore, 1e-9)
	assert.InDelta(t, 1.0, b.Coverage, 1e-9)
	assert.Equal(t, 0, b.MissingValues)
}

func TestEvaluate_ZeroFillProfileHalvesMissingScore(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		{ID: "a", Scores: map[string]map[string]*float64{"chatgpt": {"fit": fp(100)}}},
		{ID: "b", Scores: map[string]map[string]*float64{"chatgpt": {"fit": fp(80), "risk": fp(80)}}},
	}

	result, err := domain.Evaluate(doc, domain.Options{Profile: domain.ProfileSimple(), Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, "b", result.RankedAlternatives[0].ID, "zero-filled a drops to 50, below b at 80")
	a := result.RankedAlternatives[1]
	assert.Equal(t, "a", a.ID)
	assert.InDelta(t, 50.0, a.OverallSuccessScore, 1e-9)
	assert.InDelta(t, 0.5, a.Coverage, 1e-9)
	assert.InDelta(t, 0.5, a.CountCoverage, 1e-9)
}

func TestEvaluate_SingleOptionRequiresEscapeHatch(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("only", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
	}

	_, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.ErrorContains(t, err, "--allow-single-option")

	result, err := domain.Evaluate(doc, domain.Options{AllowSingleOption: true, Now: fixedClock})
	require.NoError(t, err)
	assert.NotEqual(t, domain.ActionSelect, result.Recommendation.Action,
		"a single option must never win by margin")
	assert.Equal(t, domain.ActionImprove, result.Recommendation.Action)
	assert.Equal(t, 0.0, result.Recommendation.ScoreMarginVsSecond)
	assert.Contains(t, result.Recommendation.Reason, "discovery")
}

func TestEvaluate_TieBreakByEffortThenRisk(t *testing.T) {
	doc := baseDoc()
	fast := internalAlt("fast", map[string]*float64{"fit": fp(90), "risk": fp(90)})
	fast.Effort = "S"
	fast.Risk = "Low"
	slow := internalAlt("slow", map[string]*float64{"fit": fp(90), "risk": fp(90)})
	slow.Effort = "L"
	slow.Risk = "High"
	doc.Alternatives = []domain.Alternative{slow, fast}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, "fast", result.RankedAlternatives[0].ID)
	assert.Equal(t, "slow", result.RankedAlternatives[1].ID)
	assert.Equal(t, 0, result.RankedAlternatives[0].EffortRank)
	assert.Equal(t, 2, result.RankedAlternatives[1].RiskRank)
}

func TestEvaluate_NameBreaksFullTies(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("zeta", map[string]*float64{"fit": fp(70), "risk": fp(70)}),
		internalAlt("Alpha", map[string]*float64{"fit": fp(70), "risk": fp(70)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", result.RankedAlternatives[0].ID, "name comparison is case-insensitive")
}

func TestEvaluate_SelectBlockedWhenCoverageBelowGate(t *testing.T) {
	doc := baseDoc()
	doc.RecommendationRules = map[string]float64{"select_margin": 1.0, "min_coverage": 0.9}
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(100), "risk": nil}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	rec := result.Recommendation
	assert.NotEqual(t, domain.ActionSelect, rec.Action, "coverage 0.5 is below the 0.9 gate")
	assert.Equal(t, domain.ActionImprove, rec.Action)
	assert.Contains(t, rec.Reason, "coverage")
	assert.Equal(t, "a", rec.TopOptionID)
}

func TestEvaluate_NoGoWhenAllBelowViability(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(20), "risk": fp(20)}),
		internalAlt("b", map[string]*float64{"fit": fp(10), "risk": fp(10)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, domain.ActionNoGo, result.Recommendation.Action)
	assert.Empty(t, result.Recommendation.ChosenOptionIDs)
	assert.Equal(t, "no-go", result.DecisionStatus)
}

func TestEvaluate_DiscoveryDoneRequiresExternalAlternative(t *testing.T) {
	doc := baseDoc()
	doc.Discovery = &domain.Discovery{ExternalDiscoveryDone: true}
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	_, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	assert.ErrorContains(t, err, "no alternative with type 'external'")
}

func TestEvaluate_ExternalAlternativeRequiresEvidence(t *testing.T) {
	doc := baseDoc()
	doc.Discovery = &domain.Discovery{ExternalDiscoveryDone: true}
	vendor := internalAlt("vendor", map[string]*float64{"fit": fp(90), "risk": fp(90)})
	vendor.Type = "external"
	doc.Alternatives = []domain.Alternative{
		vendor,
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	_, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.ErrorContains(t, err, "must include evidence")

	vendor.Evidence = []domain.Evidence{{
		SourceURL:        "https://vendor.example.com/docs",
		SourceDate:       "2026-01-05",
		EvidenceStrength: "medium",
	}}
	doc.Alternatives[0] = vendor
	_, err = domain.Evaluate(doc, domain.Options{Now: fixedClock})
	assert.NoError(t, err)
}

func TestEvaluate_AuditMetadata(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, "run-20260110T120000Z", result.RunID)
	assert.Equal(t, domain.ScorerVersion, result.ScorerVersion)
	assert.Equal(t, domain.RulesVersion, result.RulesVersion)
	assert.Equal(t, "2026-01-10T12:00:00Z", result.EvaluatedAt)
	assert.Equal(t, "guardrailed", result.Profile)
	assert.Equal(t, "proceed", result.DecisionStatus)
}

func TestEvaluate_ExplicitRunIDPreserved(t *testing.T) {
	doc := baseDoc()
	doc.RunID = "run-pilot-7"
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)
	assert.Equal(t, "run-pilot-7", result.RunID)
}

func TestEvaluate_ConfirmationGate(t *testing.T) {
	doc := baseDoc()
	doc.CriteriaConfirmed = false
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	_, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.ErrorContains(t, err, "criteria_confirmed")

	_, err = domain.Evaluate(doc, domain.Options{Profile: domain.ProfileReview(), Now: fixedClock})
	require.ErrorContains(t, err, "criteria_confirmed")

	result, err := domain.Evaluate(doc, domain.Options{AllowUnconfirmed: true, Now: fixedClock})
	require.NoError(t, err)
	assert.False(t, result.CriteriaConfirmed)

	_, err = domain.Evaluate(doc, domain.Options{Profile: domain.ProfileSimple(), Now: fixedClock})
	assert.NoError(t, err, "simple profile never gates on confirmation")
}

func TestEvaluate_InfeasibleRankedLastAndNeverChosen(t *testing.T) {
	doc := baseDoc()
	no := false
	strong := internalAlt("strong", map[string]*float64{"fit": fp(100), "risk": fp(100)})
	strong.Feasible = &no
	weak := internalAlt("weak", map[string]*float64{"fit": fp(60), "risk": fp(60)})
	doc.Alternatives = []domain.Alternative{strong, weak}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, "weak", result.RankedAlternatives[0].ID, "feasible options outrank higher-scoring infeasible ones")
	assert.Equal(t, "weak", result.Recommendation.TopOptionID)
	assert.NotContains(t, result.Recommendation.ChosenOptionIDs, "strong")
}

func TestEvaluate_AllInfeasibleIsNoGo(t *testing.T) {
	doc := baseDoc()
	no := false
	a := internalAlt("a", map[string]*float64{"fit": fp(100), "risk": fp(100)})
	a.Feasible = &no
	b := internalAlt("b", map[string]*float64{"fit": fp(90), "risk": fp(90)})
	b.Feasible = &no
	doc.Alternatives = []domain.Alternative{a, b}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, domain.ActionNoGo, result.Recommendation.Action)
	assert.Contains(t, result.Recommendation.Reason, "infeasible")
	assert.Equal(t, "no-go", result.DecisionStatus)
}

func TestEvaluate_RanksAreADensePermutation(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("c", map[string]*float64{"fit": fp(40), "risk": fp(50)}),
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(85)}),
		internalAlt("b", map[string]*float64{"fit": fp(70), "risk": fp(65)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)
	require.Len(t, result.RankedAlternatives, 3)

	seen := map[string]bool{}
	for i, item := range result.RankedAlternatives {
		assert.Equal(t, i+1, item.Rank)
		seen[item.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestEvaluate_OneToFiveScaleRescales(t *testing.T) {
	doc := baseDoc()
	doc.ScoreScale = "1-5"
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(5), "risk": fp(5)}),
		internalAlt("b", map[string]*float64{"fit": fp(3), "risk": fp(3)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.RankedAlternatives[0].OverallSuccessScore, 1e-9)
	assert.InDelta(t, 60.0, result.RankedAlternatives[1].OverallSuccessScore, 1e-9)
}

func TestEvaluate_OutOfRangeScoresClamped(t *testing.T) {
	doc := baseDoc()
	doc.Alternatives = []domain.Alternative{
		internalAlt("hot", map[string]*float64{"fit": fp(140), "risk": fp(120)}),
		internalAlt("cold", map[string]*float64{"fit": fp(-30), "risk": fp(-5)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.RankedAlternatives[0].OverallSuccessScore, 1e-9)
	assert.InDelta(t, 0.0, result.RankedAlternatives[1].OverallSuccessScore, 1e-9)
}

func TestEvaluate_BlendAppliedAcrossPlatforms(t *testing.T) {
	doc := baseDoc()
	doc.CurrentPlatform = "chatgpt"
	doc.MajorPlatforms = []string{"gemini"}
	doc.Alternatives = []domain.Alternative{
		{
			ID: "a", Name: "a", Type: "internal", Effort: "S", Risk: "Low",
			Justification: "team already uses it",
			Scores: map[string]map[string]*float64{
				"gemini":  {"fit": fp(80), "risk": fp(80)},
				"chatgpt": {"fit": fp(60), "risk": fp(60)},
			},
		},
		internalAlt("b", map[string]*float64{"fit": fp(20), "risk": fp(20)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	a := result.RankedAlternatives[0]
	require.Equal(t, "a", a.ID)
	assert.InDelta(t, 80.0, a.MajorPlatformAverage, 1e-9)
	assert.InDelta(t, 60.0, a.CurrentPlatformScore, 1e-9)
	assert.InDelta(t, 0.6*80+0.4*60, a.OverallSuccessScore, 1e-9)
	assert.InDelta(t, 1.0, result.Weights.MajorPlatformAverage+result.Weights.CurrentPlatform, 1e-9)
}

func TestEvaluate_CurrentPlatformRequired(t *testing.T) {
	doc := baseDoc()
	doc.CurrentPlatform = "  "
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	_, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	assert.ErrorContains(t, err, "current_platform is required")
}

func TestEvaluate_DefaultMajorPlatformsWhenUnset(t *testing.T) {
	doc := baseDoc()
	doc.MajorPlatforms = nil
	doc.Alternatives = []domain.Alternative{
		internalAlt("a", map[string]*float64{"fit": fp(90), "risk": fp(90)}),
		internalAlt("b", map[string]*float64{"fit": fp(80), "risk": fp(80)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMajorPlatforms, result.MajorPlatforms)
}

func TestEvaluate_DisplayRoundingAfterRanking(t *testing.T) {
	doc := baseDoc()
	// Both round to 70.00; sorting rounded values would keep input order.
	doc.Alternatives = []domain.Alternative{
		internalAlt("lo", map[string]*float64{"fit": fp(70.001), "risk": fp(70.002)}),
		internalAlt("hi", map[string]*float64{"fit": fp(70.003), "risk": fp(70.004)}),
	}

	result, err := domain.Evaluate(doc, domain.Options{Now: fixedClock})
	require.NoError(t, err)

	assert.Equal(t, "hi", result.RankedAlternatives[0].ID, "full-precision comparison decides the order")
	assert.Equal(t, 70.0, result.RankedAlternatives[0].OverallSuccessScore, "output carries two decimals")
	assert.Equal(t, 70.0, result.RankedAlternatives[1].OverallSuccessScore)
}
