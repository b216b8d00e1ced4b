package matching

import (
	"fmt"
	"time"
)

// CertificationScore scores a worker's certifications against the shift's required certifications.
//
// Any unmet must-have (missing, invalid, or expired at asOf) fails fast with a score of 0 and
// one warning per unmet must-have. Otherwise the preferred and optional coverage ratios are
// weighted and added to a fixed bonus for satisfying every must-have, then normalised by the
// weights of the tiers that actually had requirements.
//
// Returns 1.0 with no warnings when nothing is required.
func CertificationScore(tables ScoringTables, held []Certification, required []Requirement, asOf time.Time) (float64, []string) {
	if len(required) == 0 {
		return 1.0, []string{}
	}

	warnings := []string{}

	byName := make(map[string]Certification, len(held))
	for _, cert := range held {
		byName[cert.Name] = cert
	}

	var mustHaveMatched, mustHaveTotal int
	var preferredMatched, preferredTotal int
	var optionalMatched, optionalTotal int

	for _, req := range required {
		if !req.appliesTo(RequirementCertification) {
			continue
		}

		cert, found := byName[req.Name]
		valid := found && cert.heldAt(asOf)

		switch req.level() {
		case LevelMustHave:
			mustHaveTotal++
			switch {
			case valid:
				mustHaveMatched++
			case found:
				warnings = append(warnings, fmt.Sprintf("Must-have certification '%s' expired", req.Name))
			default:
				warnings = append(warnings, fmt.Sprintf("Must-have certification '%s' missing", req.Name))
			}
		case LevelPreferred:
			preferredTotal++
			if valid {
				preferredMatched++
			}
		case LevelOptional:
			optionalTotal++
			if valid {
				optionalMatched++
			}
		}
	}

	if mustHaveMatched < mustHaveTotal {
		return 0.0, warnings
	}

	score := 0.0
	totalWeight := 0.0

	if preferredTotal > 0 {
		score += float64(preferredMatched) / float64(preferredTotal) * tables.PreferredCertWeight
		totalWeight += tables.PreferredCertWeight
	}

	if optionalTotal > 0 {
		score += float64(optionalMatched) / float64(optionalTotal) * tables.OptionalCertWeight
		totalWeight += tables.OptionalCertWeight
	}

	score += tables.MustHaveCertBonus
	totalWeight += tables.MustHaveCertBonus

	if totalWeight == 0 {
		return 1.0, warnings
	}
	return score / totalWeight, warnings
}

// TrainingScore returns the fraction of required trainings the worker has completed.
// A warning is emitted for every must-have training that is not completed.
//
// Returns 1.0 with no warnings when nothing is required.
func TrainingScore(held []Training, required []Requirement) (float64, []string) {
	warnings := []string{}

	byName := make(map[string]Training, len(held))
	for _, training := range held {
		byName[training.Name] = training
	}

	completed := 0
	total := 0
	for _, req := range required {
		if !req.appliesTo(RequirementTraining) {
			continue
		}
		total++

		training, found := byName[req.Name]
		if found && training.Status == TrainingCompleted {
			completed++
		} else if req.level() == LevelMustHave {
			warnings = append(warnings, fmt.Sprintf("Required training '%s' not completed", req.Name))
		}
	}

	if total == 0 {
		return 1.0, warnings
	}
	return float64(completed) / float64(total), warnings
}
