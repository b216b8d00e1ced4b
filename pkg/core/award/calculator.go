package award

import (
	"math"
	"time"

	"github.com/jakechorley/care-rostering/pkg/core/compliance"
)

// Calculate costs a shift using the standard SCHADS rates
func Calculate(input Input) *Result {
	return SCHADSRates().Calculate(input)
}

// Calculate costs a shift against this rate table.
//
// The shift is first classified (sleepover, overtime or ordinary) and split into segments,
// then public holiday or weekend penalties are overlaid, then the segments are totalled
// against the level-adjusted base rate. Break compliance is checked independently.
func (r Rates) Calculate(input Input) *Result {
	totalHours := input.End.Sub(input.Start).Hours()

	shiftType, segments := r.Breakdown(totalHours, input.IsSleepover)

	if shiftType != ShiftSleepover {
		if input.PublicHoliday != "" {
			segments = r.applyPublicHoliday(segments, input.PublicHoliday)
		} else {
			segments = r.applyWeekendPenalties(segments, input.Start)
		}
	}

	breakRule := r.BreakRule
	if breakRule.MinimumHours == 0 {
		breakRule = compliance.DefaultBreakRule
	}
	breakCheck := breakRule.Check(input.PreviousShiftEnd, input.Start)

	result := &Result{
		TotalHours:            totalHours,
		ShiftType:             shiftType,
		PenaltyMultipliers:    []PenaltyMultiplier{},
		Breakdown:             segments,
		TotalCost:             r.TotalCost(segments, input.BaseHourlyRate, input.WorkerLevel),
		MinBreakRequiredHours: breakRule.MinimumHours,
		Warnings:              []string{},
	}

	for _, segment := range segments {
		switch {
		case segment.Type == SegmentOrdinary:
			result.OrdinaryHours += segment.Hours
		case segment.Type.IsOvertime():
			result.OvertimeHours += segment.Hours
		}

		if segment.PenaltyApplied != "" {
			result.PenaltyMultipliers = append(result.PenaltyMultipliers, PenaltyMultiplier{
				Name:       segment.PenaltyApplied,
				Multiplier: segment.RateMultiplier,
			})
		}
	}

	if input.PreviousShiftEnd != nil {
		result.BreakCompliance = &breakCheck
	}
	if !breakCheck.Compliant {
		result.Warnings = append(result.Warnings, breakCheck.Warning)
	}

	return result
}

// Breakdown classifies a shift of the given length and splits it into paid segments.
// The segment hours always sum to totalHours.
func (r Rates) Breakdown(totalHours float64, isSleepover bool) (ShiftType, []Segment) {
	if isSleepover {
		return ShiftSleepover, []Segment{{
			Type:           SegmentSleepover,
			Hours:          totalHours,
			RateMultiplier: r.Sleepover,
		}}
	}

	if totalHours <= r.OrdinaryHoursThreshold {
		return ShiftOrdinary, []Segment{{
			Type:           SegmentOrdinary,
			Hours:          totalHours,
			RateMultiplier: 1.0,
		}}
	}

	overtime := totalHours - r.OrdinaryHoursThreshold
	segments := []Segment{{
		Type:           SegmentOrdinary,
		Hours:          r.OrdinaryHoursThreshold,
		RateMultiplier: 1.0,
	}}

	if overtime > r.OvertimeFirstTierHours {
		segments = append(segments,
			Segment{
				Type:           SegmentOvertimeFirstTier,
				Hours:          r.OvertimeFirstTierHours,
				RateMultiplier: r.OvertimeFirstTier,
			},
			Segment{
				Type:           SegmentOvertimeAfterTier,
				Hours:          overtime - r.OvertimeFirstTierHours,
				RateMultiplier: r.OvertimeAfterTier,
			},
		)
	} else {
		segments = append(segments, Segment{
			Type:           SegmentOvertimeFirstTier,
			Hours:          overtime,
			RateMultiplier: r.OvertimeFirstTier,
		})
	}

	return ShiftOvertime, segments
}

// applyPublicHoliday pays every segment at the public holiday rate
func (r Rates) applyPublicHoliday(segments []Segment, holiday string) []Segment {
	updated := make([]Segment, len(segments))
	for i, segment := range segments {
		segment.RateMultiplier = r.PublicHoliday
		segment.PenaltyApplied = PublicHolidayPenalty(holiday)
		updated[i] = segment
	}
	return updated
}

// applyWeekendPenalties raises every segment to at least the weekend rate.
// Only the start timestamp's weekday is considered, so a shift that starts on Friday night
// and runs into Saturday gets no Saturday loading.
func (r Rates) applyWeekendPenalties(segments []Segment, start time.Time) []Segment {
	var penalty string
	var floor float64

	switch start.Weekday() {
	case time.Saturday:
		penalty, floor = PenaltySaturday, r.Saturday
	case time.Sunday:
		penalty, floor = PenaltySunday, r.Sunday
	default:
		return segments
	}

	updated := make([]Segment, len(segments))
	for i, segment := range segments {
		segment.RateMultiplier = math.Max(segment.RateMultiplier, floor)
		segment.PenaltyApplied = penalty
		updated[i] = segment
	}
	return updated
}

// TotalCost sums hours x level-adjusted base rate x segment multiplier, rounded to cents
func (r Rates) TotalCost(segments []Segment, baseRate float64, level int) float64 {
	adjustedRate := baseRate * r.LevelMultiplier(level)

	total := 0.0
	for _, segment := range segments {
		total += segment.Hours * adjustedRate * segment.RateMultiplier
	}

	return math.Round(total*100) / 100
}
