package matching

import (
	"fmt"
	"sort"

	"github.com/jakechorley/care-rostering/pkg/core/compliance"
)

// Exclusion reasons recorded on match results
const (
	ReasonMissingCertifications = "missing required certifications"
	ReasonNotAvailable          = "worker not available"
)

// RankingConfig contains everything needed to rank workers for one shift
type RankingConfig struct {
	// Shift being filled
	Shift ShiftRequirement

	// Workers are the candidates, scored independently of each other
	Workers []WorkerProfile

	// Weights for the five factors (DefaultWeights when zero)
	Weights Weights

	// MaxDistanceKm caps the proximity score (DefaultMaxDistanceKm when not positive)
	MaxDistanceKm float64

	// IncludeExcluded ranks excluded workers alongside eligible ones instead of
	// appending them unranked at the end
	IncludeExcluded bool

	// Tables holds the scoring curves (DefaultScoringTables when zero)
	Tables ScoringTables

	// BreakRule is the rest rule used for fatigue warnings (compliance.DefaultBreakRule when zero)
	BreakRule compliance.BreakRule
}

// withDefaults fills unset configuration with the standard values
func (c RankingConfig) withDefaults() RankingConfig {
	if c.Weights.IsZero() {
		c.Weights = DefaultWeights()
	}
	if c.MaxDistanceKm <= 0 {
		c.MaxDistanceKm = DefaultMaxDistanceKm
	}
	if c.Tables.isZero() {
		c.Tables = DefaultScoringTables()
	}
	if c.BreakRule.MinimumHours == 0 {
		c.BreakRule = compliance.DefaultBreakRule
	}
	return c
}

// Rank scores every worker against the shift and orders them by total score.
//
// Excluded workers (missing a must-have certification or unavailable) are filtered out
// before ranking unless IncludeExcluded is set, and are then appended to the end of the
// list with rank 0. Workers with equal scores keep their input order.
func Rank(config RankingConfig) *RankingResult {
	config = config.withDefaults()

	results := make([]MatchResult, 0, len(config.Workers))
	for _, worker := range config.Workers {
		results = append(results, ScoreWorker(config, worker))
	}

	var ranked, unranked []MatchResult
	if config.IncludeExcluded {
		ranked = results
	} else {
		ranked = make([]MatchResult, 0, len(results))
		unranked = make([]MatchResult, 0)
		for _, result := range results {
			if result.Excluded {
				unranked = append(unranked, result)
			} else {
				ranked = append(ranked, result)
			}
		}
	}

	// Sort by score (descending - highest score first)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	eligible := 0
	for _, result := range results {
		if !result.Excluded {
			eligible++
		}
	}

	matches := make([]MatchResult, 0, len(results))
	matches = append(matches, ranked...)
	matches = append(matches, unranked...)

	return &RankingResult{
		ShiftID:         config.Shift.ShiftID,
		TotalCandidates: len(config.Workers),
		EligibleWorkers: eligible,
		Matches:         matches,
		Weights:         config.Weights,
		MaxDistanceKm:   config.MaxDistanceKm,
	}
}

// ScoreWorker computes the match result for a single worker. The result is unranked.
func ScoreWorker(config RankingConfig, worker WorkerProfile) MatchResult {
	config = config.withDefaults()
	shift := config.Shift
	tables := config.Tables
	weights := config.Weights

	certScore, certWarnings := CertificationScore(tables, worker.Certifications, shift.RequiredCertifications, shift.Start)
	trainingScore, trainingWarnings := TrainingScore(worker.Trainings, shift.RequiredTrainings)

	shiftDuration := shift.DurationHours()

	experienceScore := ExperienceScore(tables, worker.ExperienceHours)
	distanceScore, distanceKm := DistanceScore(tables, worker.Location, shift.ParticipantLocation, config.MaxDistanceKm)
	costScore := CostScore(tables, worker.HourlyRate, shift.BudgetLimit, shiftDuration)

	totalScore := certScore*weights.Certification +
		trainingScore*weights.Training +
		experienceScore*weights.Experience +
		distanceScore*weights.Distance +
		costScore*weights.Cost

	result := MatchResult{
		WorkerID:           worker.ID,
		FullName:           worker.FullName,
		TotalScore:         roundTo(totalScore, 3),
		CertificationScore: roundTo(certScore, 3),
		TrainingScore:      roundTo(trainingScore, 3),
		ExperienceScore:    roundTo(experienceScore, 3),
		DistanceScore:      roundTo(distanceScore, 3),
		CostScore:          roundTo(costScore, 3),
		HourlyRate:         worker.HourlyRate,
		Warnings:           []string{},
		Errors:             []string{},
	}

	// Hard exclusions - every rule is evaluated, the first match is recorded
	var reasons []string
	if certScore == 0.0 {
		reasons = append(reasons, ReasonMissingCertifications)
	}
	if !worker.Available {
		reasons = append(reasons, ReasonNotAvailable)
	}
	if len(reasons) > 0 {
		result.Excluded = true
		result.ExclusionReason = reasons[0]
	}

	if distanceKm != nil {
		rounded := roundTo(*distanceKm, 2)
		result.DistanceKm = &rounded

		if *distanceKm > config.MaxDistanceKm {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Distance %.1fkm exceeds limit (%gkm)", *distanceKm, config.MaxDistanceKm))
		}
	}

	// Fatigue risk is advisory only
	breakCheck := config.BreakRule.Check(worker.PreviousShiftEnd, shift.Start)

	result.Warnings = append(result.Warnings, certWarnings...)
	result.Warnings = append(result.Warnings, trainingWarnings...)
	if warning := breakCheck.FatigueWarning(); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	return result
}
