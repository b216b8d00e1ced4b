package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/award"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

// RosterRequest describes a recurring shift worked by one worker.
// Pattern is an RRULE with a DTSTART line, e.g.
//
//	DTSTART:20250303T220000Z
//	RRULE:FREQ=DAILY;COUNT=5
//
// Each occurrence starts a shift of DurationHours.
type RosterRequest struct {
	Pattern        string  `json:"pattern" yaml:"pattern" validate:"required"`
	DurationHours  float64 `json:"duration_hours" yaml:"durationHours" validate:"gt=0,lte=24"`
	BaseHourlyRate float64 `json:"base_hourly_rate" yaml:"baseHourlyRate" validate:"gt=0"`
	WorkerLevel    int     `json:"worker_level" yaml:"workerLevel" validate:"min=1,max=4"`
	IsSleepover    bool    `json:"is_sleepover" yaml:"isSleepover"`

	// PreviousShiftEnd is the end of the shift worked before the first occurrence, if any
	PreviousShiftEnd *time.Time `json:"previous_shift_end,omitempty" yaml:"previousShiftEnd,omitempty"`
}

// RosterShift is one costed occurrence of the pattern
type RosterShift struct {
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	PublicHoliday string        `json:"public_holiday,omitempty"`
	Award         *award.Result `json:"award"`
}

// RosterResponse is the costed series with totals
type RosterResponse struct {
	RequestID   string    `json:"request_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Shifts          []RosterShift `json:"shifts"`
	TotalHours      float64       `json:"total_hours"`
	TotalCost       float64       `json:"total_cost"`
	BreakViolations int           `json:"break_violations"`

	// Truncated is set when the pattern produced more shifts than the configured maximum
	Truncated bool `json:"truncated"`
}

// CostRoster expands a recurring shift pattern and costs every occurrence.
// Each shift's previous shift end is the end of the occurrence before it, so break compliance
// is checked across the whole series.
func CostRoster(ctx context.Context, cfg *config.Config, calendar *holidays.Calendar, recorder *metrics.Recorder, logger *zap.Logger, request *RosterRequest) (*RosterResponse, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: missing roster request", ErrInvalidRequest)
	}
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	rule, err := parsePattern(request.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	maxShifts := cfg.Award.MaxRosterShifts
	starts, truncated := expandPattern(rule, maxShifts)

	requestID := uuid.New().String()
	logger.Debug("Costing roster",
		zap.String("request_id", requestID),
		zap.Int("shifts", len(starts)),
		zap.Bool("truncated", truncated))

	if truncated {
		logger.Warn("Roster pattern exceeds maximum shifts, truncating",
			zap.String("request_id", requestID),
			zap.Int("max_shifts", maxShifts))
	}

	duration := time.Duration(request.DurationHours * float64(time.Hour))
	response := &RosterResponse{
		RequestID: requestID,
		Shifts:    make([]RosterShift, 0, len(starts)),
		Truncated: truncated,
	}

	previousEnd := request.PreviousShiftEnd
	for _, start := range starts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		input := resolveHoliday(cfg, calendar, award.Input{
			BaseHourlyRate:   request.BaseHourlyRate,
			WorkerLevel:      request.WorkerLevel,
			Start:            start,
			End:              start.Add(duration),
			IsSleepover:      request.IsSleepover,
			PreviousShiftEnd: previousEnd,
		})

		var result *award.Result
		err := guard("cost roster", logger, func() error {
			result = award.Calculate(input)
			return nil
		})
		if err != nil {
			return nil, err
		}

		recordAward(recorder, result)

		response.Shifts = append(response.Shifts, RosterShift{
			Start:         input.Start,
			End:           input.End,
			PublicHoliday: input.PublicHoliday,
			Award:         result,
		})
		response.TotalHours += result.TotalHours
		response.TotalCost += result.TotalCost
		if result.BreakCompliance != nil && !result.BreakCompliance.Compliant {
			response.BreakViolations++
		}

		end := input.End
		previousEnd = &end
	}

	response.TotalCost = math.Round(response.TotalCost*100) / 100
	response.GeneratedAt = time.Now().UTC()

	logger.Info("Costed roster",
		zap.String("request_id", requestID),
		zap.Int("shifts", len(response.Shifts)),
		zap.Float64("total_hours", response.TotalHours),
		zap.Float64("total_cost", response.TotalCost),
		zap.Int("break_violations", response.BreakViolations))

	return response, nil
}

// parsePattern parses a roster pattern, requiring an explicit DTSTART
func parsePattern(pattern string) (*rrule.RRule, error) {
	option, err := rrule.StrToROption(strings.TrimSpace(pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster pattern: %w", err)
	}
	if option.Dtstart.IsZero() {
		return nil, fmt.Errorf("roster pattern must include DTSTART")
	}

	rule, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster pattern: %w", err)
	}
	return rule, nil
}

// expandPattern returns up to limit occurrence start times, reporting whether more remained
func expandPattern(rule *rrule.RRule, limit int) ([]time.Time, bool) {
	starts := make([]time.Time, 0)
	next := rule.Iterator()
	for {
		start, ok := next()
		if !ok {
			return starts, false
		}
		if len(starts) == limit {
			return starts, true
		}
		starts = append(starts, start)
	}
}
