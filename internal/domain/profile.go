package domain

import "fmt"

// MissingValuePolicy selects how a missing criterion score contributes to a
// platform's weighted average.
type MissingValuePolicy string

const (
	// ZeroFill counts a missing score as 0 at its full weight, penalizing
	// missing data implicitly through the weighted average.
	ZeroFill MissingValuePolicy = "zero-fill"
	// ExcludeRenormalize drops missing scores from the average and reports
	// the covered weight fraction separately as coverage.
	ExcludeRenormalize MissingValuePolicy = "exclude-renormalize"
)

// Profile parameterizes the engine. The three named profiles correspond to
// increasingly strict policy layers over the same algorithm.
type Profile struct {
	Name                string             `json:"name"`
	MissingValues       MissingValuePolicy `json:"missing_values"`
	Guardrails          bool               `json:"guardrails"`
	RequireConfirmation bool               `json:"require_confirmation"`
}

// ProfileSimple scores with zero-fill and no policy gates.
func ProfileSimple() Profile {
	return Profile{Name: "simple", MissingValues: ZeroFill}
}

// ProfileReview adds the human criteria sign-off gate on top of simple.
func ProfileReview() Profile {
	return Profile{Name: "review", MissingValues: ZeroFill, RequireConfirmation: true}
}

// ProfileGuardrailed is the default: coverage-aware scoring plus feasibility,
// evidence, and discovery gates.
func ProfileGuardrailed() Profile {
	return Profile{
		Name:                "guardrailed",
		MissingValues:       ExcludeRenormalize,
		Guardrails:          true,
		RequireConfirmation: true,
	}
}

// ParseProfile resolves a profile by name. An empty name selects guardrailed.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "", "guardrailed":
		return ProfileGuardrailed(), nil
	case "review":
		return ProfileReview(), nil
	case "simple":
		return ProfileSimple(), nil
	}
	return Profile{}, fmt.Errorf("unknown profile %q (valid: simple, review, guardrailed)", name)
}
