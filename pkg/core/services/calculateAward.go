package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/award"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

// AwardRequest asks for the award cost of one shift
type AwardRequest struct {
	award.Input `yaml:",inline"`
}

// AwardResponse is the costed shift
type AwardResponse struct {
	RequestID   string        `json:"request_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Award       *award.Result `json:"award"`

	// PublicHoliday is the holiday the shift was costed as, whether given or looked up
	PublicHoliday string `json:"public_holiday,omitempty"`
}

// CalculateAward validates an award request and costs the shift.
// When the request names no public holiday and holiday resolution is enabled, the holiday
// is looked up from the calendar using the shift start.
func CalculateAward(ctx context.Context, cfg *config.Config, calendar *holidays.Calendar, recorder *metrics.Recorder, logger *zap.Logger, request *AwardRequest) (*AwardResponse, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: missing award request", ErrInvalidRequest)
	}
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	input := resolveHoliday(cfg, calendar, request.Input)
	if input.PublicHoliday != request.PublicHoliday {
		logger.Debug("Resolved public holiday",
			zap.String("request_id", requestID),
			zap.String("holiday", input.PublicHoliday))
	}

	var result *award.Result
	err := guard("calculate award", logger, func() error {
		result = award.Calculate(input)
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordAward(recorder, result)

	logger.Info("Calculated award cost",
		zap.String("request_id", requestID),
		zap.String("shift_type", string(result.ShiftType)),
		zap.Float64("total_hours", result.TotalHours),
		zap.Float64("total_cost", result.TotalCost),
		zap.Int("warnings", len(result.Warnings)))

	return &AwardResponse{
		RequestID:     requestID,
		GeneratedAt:   time.Now().UTC(),
		Award:         result,
		PublicHoliday: input.PublicHoliday,
	}, nil
}

// resolveHoliday fills in the public holiday from the calendar when the input has none
func resolveHoliday(cfg *config.Config, calendar *holidays.Calendar, input award.Input) award.Input {
	if input.PublicHoliday != "" || !cfg.Award.ResolveHolidays {
		return input
	}
	if name, ok := calendar.Lookup(input.Start); ok {
		input.PublicHoliday = name
	}
	return input
}

func recordAward(recorder *metrics.Recorder, result *award.Result) {
	recorder.RecordAward(string(result.ShiftType), result.TotalCost)
	if result.BreakCompliance != nil && !result.BreakCompliance.Compliant {
		recorder.RecordBreakViolation("award")
	}
}
