package domain

import (
	"fmt"
	"strings"
)

var validTypes = map[string]bool{
	"internal": true, "compose": true, "external": true, "build-new": true,
}

var validEfforts = map[string]bool{"S": true, "M": true, "L": true}

var validRisks = map[string]bool{"Low": true, "Med": true, "High": true}

var validStrengths = map[string]bool{"low": true, "medium": true, "high": true}

// ValidateAlternatives checks structural shape, uniqueness, and — under
// guardrails — enumerations and evidence requirements. It returns a cleaned
// copy; the input slice is never mutated.
func ValidateAlternatives(alternatives []Alternative, p Profile, allowSingleOption bool) ([]Alternative, error) {
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("alternatives must be a non-empty array")
	}
	if len(alternatives) < 2 && !allowSingleOption {
		return nil, fmt.Errorf("at least two alternatives are required for scoring; run discovery first or use --allow-single-option for simulation only")
	}

	seen := make(map[string]bool, len(alternatives))
	cleaned := make([]Alternative, 0, len(alternatives))

	for i, alt := range alternatives {
		id := strings.TrimSpace(alt.ID)
		if id == "" {
			return nil, fmt.Errorf("alternatives[%d].id is required", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate alternative id '%s'", id)
		}
		seen[id] = true

		name := strings.TrimSpace(alt.Name)
		if name == "" {
			name = id
		}

		altType := strings.TrimSpace(alt.Type)
		effort := strings.TrimSpace(alt.Effort)
		risk := strings.TrimSpace(alt.Risk)
		justification := strings.TrimSpace(alt.Justification)

		if p.Guardrails {
			if !validTypes[altType] {
				return nil, fmt.Errorf("alternatives[%d].type must be one of internal|compose|external|build-new", i)
			}
			if !validEfforts[effort] {
				return nil, fmt.Errorf("alternatives[%d].effort must be S, M, or L", i)
			}
			if !validRisks[risk] {
				return nil, fmt.Errorf("alternatives[%d].risk must be Low, Med, or High", i)
			}
			if justification == "" {
				return nil, fmt.Errorf("alternatives[%d].justification is required", i)
			}
			if altType == "external" {
				if err := validateEvidence(alt.Evidence, i); err != nil {
					return nil, err
				}
			}
		}

		out := alt
		out.ID = id
		out.Name = name
		out.Type = altType
		out.Effort = effort
		out.Risk = risk
		out.Justification = justification
		cleaned = append(cleaned, out)
	}

	return cleaned, nil
}

func validateEvidence(evidence []Evidence, index int) error {
	if len(evidence) == 0 {
		return fmt.Errorf("alternatives[%d] with type 'external' must include evidence entries", index)
	}
	for j, ev := range evidence {
		if strings.TrimSpace(ev.SourceURL) == "" {
			return fmt.Errorf("alternatives[%d].evidence[%d].source_url is required", index, j)
		}
		if strings.TrimSpace(ev.SourceDate) == "" {
			return fmt.Errorf("alternatives[%d].evidence[%d].source_date is required", index, j)
		}
		if !validStrengths[normalizeToken(ev.EvidenceStrength)] {
			return fmt.Errorf("alternatives[%d].evidence[%d].evidence_strength must be low|medium|high", index, j)
		}
	}
	return nil
}

// ValidateDiscovery enforces the external-research gate: discovery either
// completed or was explicitly blocked with a reason, and a completed
// discovery must be backed by at least one external alternative. The gate
// exists to stop rubber-stamping research that never happened.
func ValidateDiscovery(discovery *Discovery, alternatives []Alternative) error {
	if discovery == nil {
		return fmt.Errorf("discovery object is required")
	}
	if !discovery.ExternalDiscoveryDone && !discovery.ExternalDiscoveryBlocked {
		return fmt.Errorf("discovery must either complete external discovery or explicitly block it with reason")
	}
	if discovery.ExternalDiscoveryBlocked && strings.TrimSpace(discovery.BlockReason) == "" {
		return fmt.Errorf("discovery.block_reason is required when external discovery is blocked")
	}
	if discovery.ExternalDiscoveryDone {
		for _, alt := range alternatives {
			if alt.Type == "external" {
				return nil
			}
		}
		return fmt.Errorf("external discovery was marked complete but no alternative with type 'external' was provided")
	}
	return nil
}
