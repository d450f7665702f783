package domain

import (
	"fmt"
	"sort"
)

// platformResult is the outcome of scoring one alternative on one platform.
type platformResult struct {
	score         float64
	missing       int
	coveredWeight float64
}

// toPercent converts a raw criterion value to a percent score: 1-5 values are
// rescaled by ×20, then the result is clamped to [0,100].
func toPercent(raw float64, scale string, field string) (float64, error) {
	score, err := finite(raw, field)
	if err != nil {
		return 0, err
	}
	if scale == "1-5" {
		score *= 20.0
	}
	if score < 0 {
		return 0, nil
	}
	if score > 100 {
		return 100, nil
	}
	return score, nil
}

// scorePlatform computes the coverage-weighted average for one alternative on
// one platform. Under zero-fill a missing value contributes 0 at full weight;
// under exclude-renormalize the average runs only over the covered weight.
func scorePlatform(alt Alternative, platform string, criteria []Criterion, scale string, policy MissingValuePolicy) (platformResult, error) {
	platformScores := alt.Scores[platform]

	var numerator, coveredWeight float64
	missing := 0
	for _, criterion := range criteria {
		raw, ok := platformScores[criterion.ID]
		if !ok || raw == nil {
			missing++
			continue
		}
		score, err := toPercent(*raw, scale,
			fmt.Sprintf("alternatives[%s].scores.%s.%s", alt.ID, platform, criterion.ID))
		if err != nil {
			return platformResult{}, err
		}
		numerator += criterion.Weight * score
		coveredWeight += criterion.Weight
	}

	res := platformResult{missing: missing, coveredWeight: coveredWeight}
	if policy == ZeroFill {
		// Normalized weights sum to 1, so the weighted sum is already the
		// zero-filled average.
		res.score = numerator
		res.coveredWeight = 1
		if len(criteria) > 0 {
			res.coveredWeight = 1 - float64(missing)/float64(len(criteria))
		}
	} else if coveredWeight > 0 {
		res.score = numerator / coveredWeight
	}
	return res, nil
}

// scoreAlternative aggregates per-platform results into one derived record.
// All float fields stay at full precision here; rounding happens after ranks
// are assigned.
func scoreAlternative(alt Alternative, criteria []Criterion, currentPlatform string, majorPlatforms []string, blend Blend, scale string, policy MissingValuePolicy) (ScoredAlternative, error) {
	platforms := requiredPlatforms(majorPlatforms, currentPlatform)

	perPlatform := make(map[string]platformResult, len(platforms))
	for _, platform := range platforms {
		res, err := scorePlatform(alt, platform, criteria, scale, policy)
		if err != nil {
			return ScoredAlternative{}, err
		}
		perPlatform[platform] = res
	}

	var majorSum float64
	for _, platform := range majorPlatforms {
		majorSum += perPlatform[platform].score
	}
	majorAverage := majorSum / float64(len(majorPlatforms))
	currentScore := perPlatform[currentPlatform].score
	overall := blend.MajorPlatformAverage*majorAverage + blend.CurrentPlatform*currentScore

	var missingValues int
	var coveredSum float64
	for _, res := range perPlatform {
		missingValues += res.missing
		coveredSum += res.coveredWeight
	}
	coverage := clamp01(coveredSum / float64(len(platforms)))

	expectedValues := len(criteria) * len(platforms)
	countCoverage := 1.0
	if expectedValues > 0 {
		countCoverage = clamp01(1.0 - float64(missingValues)/float64(expectedValues))
	}

	platformScores := make(map[string]float64, len(platforms))
	for _, platform := range platforms {
		platformScores[platform] = perPlatform[platform].score
	}

	return ScoredAlternative{
		ID:                   alt.ID,
		Name:                 alt.Name,
		Type:                 alt.Type,
		Effort:               alt.Effort,
		Risk:                 alt.Risk,
		EffortRank:           EffortRank(alt.Effort),
		RiskRank:             RiskRank(alt.Risk),
		Feasible:             alt.IsFeasible(),
		Justification:        alt.Justification,
		PlatformScores:       platformScores,
		MajorPlatformAverage: majorAverage,
		CurrentPlatformScore: currentScore,
		OverallSuccessScore:  overall,
		Coverage:             coverage,
		CountCoverage:        countCoverage,
		MissingValues:        missingValues,
		Notes:                alt.Notes,
	}, nil
}

// requiredPlatforms is the sorted union of the major platforms and the
// current platform.
func requiredPlatforms(majorPlatforms []string, currentPlatform string) []string {
	set := make(map[string]bool, len(majorPlatforms)+1)
	for _, p := range majorPlatforms {
		set[p] = true
	}
	set[currentPlatform] = true

	platforms := make([]string, 0, len(set))
	for p := range set {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}
