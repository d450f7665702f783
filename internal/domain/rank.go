package domain

import (
	"sort"
	"strings"
)

// rankAlternatives orders the scored records by the deterministic multi-key
// comparator and assigns ranks 1..N with no gaps. The case-insensitive name
// comparison at the end guarantees a total order even when every numeric
// field ties exactly.
func rankAlternatives(scored []ScoredAlternative, feasibleFirst bool) []ScoredAlternative {
	ranked := make([]ScoredAlternative, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if feasibleFirst && a.Feasible != b.Feasible {
			return a.Feasible
		}
		if a.OverallSuccessScore != b.OverallSuccessScore {
			return a.OverallSuccessScore > b.OverallSuccessScore
		}
		if a.CurrentPlatformScore != b.CurrentPlatformScore {
			return a.CurrentPlatformScore > b.CurrentPlatformScore
		}
		if a.MajorPlatformAverage != b.MajorPlatformAverage {
			return a.MajorPlatformAverage > b.MajorPlatformAverage
		}
		if a.EffortRank != b.EffortRank {
			return a.EffortRank < b.EffortRank
		}
		if a.RiskRank != b.RiskRank {
			return a.RiskRank < b.RiskRank
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
