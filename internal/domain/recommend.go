package domain

import "fmt"

// recommend maps the ranked list into one discrete action. Branches are
// evaluated in fixed priority order; the first match wins.
func recommend(ranked []ScoredAlternative, rules Rules, p Profile) Recommendation {
	if p.Guardrails {
		return recommendGuardrailed(ranked, rules)
	}
	return recommendOpen(ranked, rules)
}

// recommendOpen is the classifier without feasibility or coverage gates. With
// no second alternative the margin is the best score itself, so a lone strong
// option can still be selected outright.
func recommendOpen(ranked []ScoredAlternative, rules Rules) Recommendation {
	best := ranked[0]
	var second *ScoredAlternative
	if len(ranked) > 1 {
		second = &ranked[1]
	}
	margin := best.OverallSuccessScore
	if second != nil {
		margin = best.OverallSuccessScore - second.OverallSuccessScore
	}

	rec := Recommendation{
		TopOptionID:         best.ID,
		ScoreMarginVsSecond: round2(margin),
		Rules:               rules,
	}

	switch {
	case best.OverallSuccessScore >= rules.SelectMin && margin >= rules.SelectMargin:
		rec.Action = ActionSelect
		rec.ChosenOptionIDs = []string{best.ID}
		rec.Reason = fmt.Sprintf("Top option exceeds select threshold (%g) with margin %.2f.", rules.SelectMin, margin)

	case second != nil && best.OverallSuccessScore >= rules.ComposeMin && margin < rules.ComposeMargin:
		rec.Action = ActionCompose
		rec.ChosenOptionIDs = []string{best.ID, second.ID}
		rec.Reason = fmt.Sprintf("Top two options are strong and close (margin %.2f < %g).", margin, rules.ComposeMargin)

	case best.OverallSuccessScore >= rules.ImproveMin:
		rec.ChosenOptionIDs = []string{best.ID}
		if best.MajorPlatformAverage-best.CurrentPlatformScore >= rules.ExtendGap {
			rec.Action = ActionExtend
			rec.Reason = "Top option performs better across major platforms than on current platform; targeted extension is the fastest path."
		} else {
			rec.Action = ActionImprove
			rec.Reason = "Top option is viable but below direct-select threshold; improve focused gaps."
		}

	default:
		rec.Action = ActionBuildNew
		rec.ChosenOptionIDs = []string{}
		rec.Reason = "No option meets minimum viability threshold."
	}

	return rec
}

// recommendGuardrailed adds the feasibility, single-option, and coverage
// gates. Infeasible records never become chosen options regardless of score.
func recommendGuardrailed(ranked []ScoredAlternative, rules Rules) Recommendation {
	var feasible []ScoredAlternative
	for _, item := range ranked {
		if item.Feasible {
			feasible = append(feasible, item)
		}
	}

	if len(feasible) == 0 {
		return Recommendation{
			Action:          ActionNoGo,
			ChosenOptionIDs: []string{},
			TopOptionID:     ranked[0].ID,
			Reason:          "All discovered alternatives are infeasible; discover additional options or build new.",
			Rules:           rules,
		}
	}

	best := feasible[0]
	var second *ScoredAlternative
	if len(feasible) > 1 {
		second = &feasible[1]
	}

	if second == nil {
		// Margin-based select must not apply to a single option.
		rec := Recommendation{
			TopOptionID: best.ID,
			Rules:       rules,
		}
		if best.OverallSuccessScore >= rules.ImproveMin {
			rec.Action = ActionImprove
			rec.ChosenOptionIDs = []string{best.ID}
			rec.Reason = "Only one feasible alternative remains; do not use margin-based select. Run additional discovery."
		} else {
			rec.Action = ActionNoGo
			rec.ChosenOptionIDs = []string{}
			rec.Reason = "Single feasible option is below viability threshold."
		}
		return rec
	}

	margin := best.OverallSuccessScore - second.OverallSuccessScore
	bestCoverageOK := best.Coverage >= rules.MinCoverage
	secondCoverageOK := second.Coverage >= rules.MinCoverage

	rec := Recommendation{
		TopOptionID:         best.ID,
		ScoreMarginVsSecond: round2(margin),
		Rules:               rules,
	}

	switch {
	case best.OverallSuccessScore >= rules.SelectMin && margin >= rules.SelectMargin && bestCoverageOK:
		rec.Action = ActionSelect
		rec.ChosenOptionIDs = []string{best.ID}
		rec.Reason = fmt.Sprintf("Top feasible option exceeds select threshold (%g) and margin (%.2f) with sufficient coverage.", rules.SelectMin, margin)

	case best.OverallSuccessScore >= rules.ComposeMin && margin < rules.ComposeMargin && bestCoverageOK && secondCoverageOK:
		rec.Action = ActionCompose
		rec.ChosenOptionIDs = []string{best.ID, second.ID}
		rec.Reason = fmt.Sprintf("Top two feasible options are strong, close (margin %.2f < %g), and both satisfy the coverage gate.", margin, rules.ComposeMargin)

	case best.OverallSuccessScore >= rules.ImproveMin:
		switch {
		case !bestCoverageOK:
			rec.Action = ActionImprove
			rec.ChosenOptionIDs = []string{best.ID}
			rec.Reason = fmt.Sprintf("Top feasible option is viable but coverage %.3f is below gate %g; improve evidence first.", best.Coverage, rules.MinCoverage)
		case best.MajorPlatformAverage-best.CurrentPlatformScore >= rules.ExtendGap:
			rec.Action = ActionExtend
			rec.ChosenOptionIDs = []string{best.ID}
			rec.Reason = "Top feasible option performs better across major platforms than current platform; extend current-platform support."
		default:
			rec.Action = ActionImprove
			rec.ChosenOptionIDs = []string{best.ID}
			rec.Reason = "Top feasible option is viable but below direct-select threshold."
		}

	default:
		rec.Action = ActionNoGo
		rec.ChosenOptionIDs = []string{}
		rec.Reason = "No feasible option meets minimum viability threshold."
	}

	return rec
}
