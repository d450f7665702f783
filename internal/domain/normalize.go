package domain

import (
	"fmt"
	"math"
	"strings"
)

// finite rejects NaN and infinities, naming the offending field.
func finite(value float64, field string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid numeric value for '%s': %v", field, value)
	}
	return value, nil
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeScoreScale validates the declared raw score scale. An empty value
// defaults to 0-100.
func NormalizeScoreScale(value string) (string, error) {
	scale := normalizeToken(value)
	if scale == "" {
		scale = "0-100"
	}
	if scale != "0-100" && scale != "1-5" {
		return "", fmt.Errorf("score_scale must be '0-100' or '1-5'")
	}
	return scale, nil
}

// NormalizeCriteria validates the criteria list and rescales weights to
// fractions summing to 1, preserving input order. Under guardrails each
// criterion must also declare how it is measured, where the data comes from,
// and how raw values map to a score.
func NormalizeCriteria(criteria []Criterion, guardrails bool) ([]Criterion, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("at least one criterion is required")
	}

	normalized := make([]Criterion, 0, len(criteria))
	seen := make(map[string]bool, len(criteria))
	totalWeight := 0.0

	for i, c := range criteria {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("criteria[%d].id is required", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate criterion id '%s'", id)
		}
		seen[id] = true

		name := strings.TrimSpace(c.Name)
		if name == "" {
			if guardrails {
				return nil, fmt.Errorf("criteria[%d].name is required", i)
			}
			name = id
		}

		metric := strings.TrimSpace(c.Metric)
		dataSource := strings.TrimSpace(c.DataSource)
		scoringRule := strings.TrimSpace(c.ScoringRule)
		if guardrails {
			if metric == "" {
				return nil, fmt.Errorf("criteria[%d].metric is required", i)
			}
			if dataSource == "" {
				return nil, fmt.Errorf("criteria[%d].data_source is required", i)
			}
			if scoringRule == "" {
				return nil, fmt.Errorf("criteria[%d].scoring_rule is required", i)
			}
		}

		weight, err := finite(c.Weight, fmt.Sprintf("criteria[%d].weight", i))
		if err != nil {
			return nil, err
		}
		if weight < 0 {
			return nil, fmt.Errorf("criteria[%d].weight must be non-negative", i)
		}
		totalWeight += weight

		normalized = append(normalized, Criterion{
			ID:          id,
			Name:        name,
			Weight:      weight,
			Metric:      metric,
			DataSource:  dataSource,
			ScoringRule: scoringRule,
		})
	}

	if totalWeight <= 0 {
		return nil, fmt.Errorf("sum of criterion weights must be greater than zero")
	}
	for i := range normalized {
		normalized[i].Weight /= totalWeight
	}
	return normalized, nil
}

// NormalizeBlend merges an optional override over the default blend and
// rescales the two components to sum to 1.
func NormalizeBlend(override *Blend) (Blend, error) {
	blend := DefaultBlend
	if override != nil {
		blend = *override
	}

	major, err := finite(blend.MajorPlatformAverage, "weights.major_platform_average")
	if err != nil {
		return Blend{}, err
	}
	current, err := finite(blend.CurrentPlatform, "weights.current_platform")
	if err != nil {
		return Blend{}, err
	}
	if major < 0 || current < 0 {
		return Blend{}, fmt.Errorf("blend weights must be non-negative")
	}
	total := major + current
	if total <= 0 {
		return Blend{}, fmt.Errorf("blend weights must sum to a positive value")
	}
	return Blend{
		MajorPlatformAverage: major / total,
		CurrentPlatform:      current / total,
	}, nil
}

// NormalizeRules merges user overrides key-by-key over the built-in defaults.
// Unknown keys are rejected to catch typos before they silently change a
// decision.
func NormalizeRules(overrides map[string]float64) (Rules, error) {
	rules := DefaultRules
	targets := map[string]*float64{
		"select_min":     &rules.SelectMin,
		"select_margin":  &rules.SelectMargin,
		"compose_min":    &rules.ComposeMin,
		"compose_margin": &rules.ComposeMargin,
		"improve_min":    &rules.ImproveMin,
		"extend_gap":     &rules.ExtendGap,
		"min_coverage":   &rules.MinCoverage,
	}

	for key, value := range overrides {
		target, ok := targets[key]
		if !ok {
			return Rules{}, fmt.Errorf("unknown key '%s' in recommendation_rules", key)
		}
		v, err := finite(value, "recommendation_rules."+key)
		if err != nil {
			return Rules{}, err
		}
		*target = v
	}

	if rules.MinCoverage < 0 || rules.MinCoverage > 1 {
		return Rules{}, fmt.Errorf("recommendation_rules.min_coverage must be between 0 and 1")
	}
	return rules, nil
}
