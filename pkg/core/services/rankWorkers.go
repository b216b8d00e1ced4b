package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/compliance"
	"github.com/jakechorley/care-rostering/pkg/core/matching"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

// MatchRequest asks for a ranking of workers against one shift.
// Weights, MaxDistanceKm and IncludeExcluded override the configured defaults when set.
type MatchRequest struct {
	Shift           matching.ShiftRequirement `json:"shift" yaml:"shift"`
	Workers         []matching.WorkerProfile  `json:"workers" yaml:"workers" validate:"dive"`
	Weights         *matching.Weights         `json:"weights,omitempty" yaml:"weights,omitempty"`
	MaxDistanceKm   *float64                  `json:"max_distance_km,omitempty" yaml:"maxDistanceKm,omitempty" validate:"omitempty,gt=0"`
	IncludeExcluded *bool                     `json:"include_excluded,omitempty" yaml:"includeExcluded,omitempty"`
}

// MatchResponse is the ranking for a shift
type MatchResponse struct {
	RequestID   string                  `json:"request_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Ranking     *matching.RankingResult `json:"ranking"`
}

// RankWorkers validates a match request and ranks its workers for the shift
func RankWorkers(ctx context.Context, cfg *config.Config, recorder *metrics.Recorder, logger *zap.Logger, request *MatchRequest) (*MatchResponse, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: missing match request", ErrInvalidRequest)
	}
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	weights := cfg.Matching.Weights
	if request.Weights != nil {
		if sum := request.Weights.Sum(); math.Abs(sum-1.0) > 1e-6 {
			return nil, fmt.Errorf("%w: weights must sum to 1.0, got %.4f", ErrInvalidRequest, sum)
		}
		weights = *request.Weights
	}

	maxDistance := cfg.Matching.MaxDistanceKm
	if request.MaxDistanceKm != nil {
		maxDistance = *request.MaxDistanceKm
	}

	includeExcluded := cfg.Matching.IncludeExcluded
	if request.IncludeExcluded != nil {
		includeExcluded = *request.IncludeExcluded
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	logger.Debug("Ranking workers",
		zap.String("request_id", requestID),
		zap.String("shift_id", request.Shift.ShiftID),
		zap.Int("workers", len(request.Workers)))

	var ranking *matching.RankingResult
	err := guard("rank workers", logger, func() error {
		ranking = matching.Rank(matching.RankingConfig{
			Shift:           request.Shift,
			Workers:         request.Workers,
			Weights:         weights,
			MaxDistanceKm:   maxDistance,
			IncludeExcluded: includeExcluded,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	recorder.RecordMatch(ranking.TotalCandidates)
	for _, match := range ranking.Matches {
		if match.Excluded {
			recorder.RecordExclusion(match.ExclusionReason)
		}
	}
	for _, worker := range request.Workers {
		if !compliance.CheckBreak(worker.PreviousShiftEnd, request.Shift.Start).Compliant {
			recorder.RecordBreakViolation("matching")
		}
	}

	logger.Info("Ranked workers",
		zap.String("request_id", requestID),
		zap.String("shift_id", ranking.ShiftID),
		zap.Int("total_candidates", ranking.TotalCandidates),
		zap.Int("eligible_workers", ranking.EligibleWorkers))

	return &MatchResponse{
		RequestID:   requestID,
		GeneratedAt: time.Now().UTC(),
		Ranking:     ranking,
	}, nil
}
