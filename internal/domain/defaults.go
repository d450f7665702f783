package domain

// Versions stamped into every evaluation result so a stored record can be
// traced back to the rule set that produced it.
const (
	ScorerVersion = "1.2.0"
	RulesVersion  = "2026-02-20"
)

// DefaultMajorPlatforms is used when the document does not name its own
// reference platforms.
var DefaultMajorPlatforms = []string{"chatgpt", "claude", "gemini", "copilot"}

// DefaultBlend weights the major-platform average against the platform
// actually in use.
var DefaultBlend = Blend{MajorPlatformAverage: 0.6, CurrentPlatform: 0.4}

// DefaultRules are the built-in recommendation thresholds, overridable
// key-by-key per run.
var DefaultRules = Rules{
	SelectMin:     80.0,
	SelectMargin:  7.0,
	ComposeMin:    70.0,
	ComposeMargin: 7.0,
	ImproveMin:    55.0,
	ExtendGap:     10.0,
	MinCoverage:   0.8,
}

var effortOrder = map[string]int{"s": 0, "m": 1, "l": 2}

var riskOrder = map[string]int{"low": 0, "med": 1, "medium": 1, "high": 2}

const unknownRank = 9

// EffortRank maps S/M/L to a sortable rank; unrecognized values rank last.
func EffortRank(value string) int {
	return lookupRank(effortOrder, value)
}

// RiskRank maps Low/Med/High to a sortable rank; unrecognized values rank last.
func RiskRank(value string) int {
	return lookupRank(riskOrder, value)
}

func lookupRank(order map[string]int, value string) int {
	if r, ok := order[normalizeToken(value)]; ok {
		return r
	}
	return unknownRank
}
