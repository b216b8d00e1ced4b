package award

import (
	"strings"
	"time"

	"github.com/jakechorley/care-rostering/pkg/core/compliance"
)

// ShiftType is the overall classification of a shift
type ShiftType string

const (
	ShiftOrdinary       ShiftType = "ordinary"
	ShiftOvertime       ShiftType = "overtime"
	ShiftEveningPenalty ShiftType = "evening_penalty"
	ShiftWeekendPenalty ShiftType = "weekend_penalty"
	ShiftPublicHoliday  ShiftType = "public_holiday"
	ShiftSleepover      ShiftType = "sleepover"
)

// Description returns a human-readable label for the shift type
func (s ShiftType) Description() string {
	switch s {
	case ShiftOrdinary:
		return "Ordinary hours"
	case ShiftOvertime:
		return "Overtime"
	case ShiftEveningPenalty:
		return "Evening penalty"
	case ShiftWeekendPenalty:
		return "Weekend penalty"
	case ShiftPublicHoliday:
		return "Public holiday"
	case ShiftSleepover:
		return "Sleepover"
	}
	return string(s)
}

// SegmentType labels a block of hours within a shift
type SegmentType string

const (
	SegmentOrdinary          SegmentType = "ordinary"
	SegmentOvertimeFirstTier SegmentType = "overtime_first_2hrs"
	SegmentOvertimeAfterTier SegmentType = "overtime_after_2hrs"
	SegmentSleepover         SegmentType = "sleepover"
)

// IsOvertime reports whether the segment counts toward overtime hours
func (s SegmentType) IsOvertime() bool {
	return strings.Contains(string(s), "overtime")
}

// Penalty tags applied to segments
const (
	PenaltySaturday = "saturday"
	PenaltySunday   = "sunday"
)

// PublicHolidayPenalty returns the penalty tag for a named public holiday
func PublicHolidayPenalty(name string) string {
	return "public_holiday: " + name
}

// Segment is a block of shift hours paid at one multiplier of the adjusted base rate
type Segment struct {
	Type           SegmentType `json:"type"`
	Hours          float64     `json:"hours"`
	RateMultiplier float64     `json:"rate_multiplier"`
	PenaltyApplied string      `json:"penalty_applied,omitempty"`
}

// PenaltyMultiplier records a penalty that was applied to a segment
type PenaltyMultiplier struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// Input describes a shift to cost
type Input struct {
	BaseHourlyRate float64   `json:"base_hourly_rate" yaml:"baseHourlyRate" validate:"gt=0"`
	WorkerLevel    int       `json:"worker_level" yaml:"workerLevel" validate:"min=1,max=4"`
	Start          time.Time `json:"start_time" yaml:"start" validate:"required"`
	End            time.Time `json:"end_time" yaml:"end" validate:"required,gtfield=Start"`
	IsSleepover    bool      `json:"is_sleepover" yaml:"isSleepover"`

	// PublicHoliday is the holiday name, empty when the shift is not on a public holiday
	PublicHoliday string `json:"public_holiday,omitempty" yaml:"publicHoliday,omitempty"`

	PreviousShiftEnd *time.Time `json:"previous_shift_end,omitempty" yaml:"previousShiftEnd,omitempty"`
}

// Result is the costed breakdown of a shift
type Result struct {
	TotalHours    float64 `json:"total_hours"`
	OrdinaryHours float64 `json:"ordinary_hours"`
	OvertimeHours float64 `json:"overtime_hours"`

	ShiftType ShiftType `json:"shift_type"`

	PenaltyMultipliers []PenaltyMultiplier `json:"penalty_multipliers"`
	Breakdown          []Segment           `json:"breakdown"`

	TotalCost float64 `json:"total_cost"`

	MinBreakRequiredHours float64 `json:"min_break_required_hours"`

	// BreakCompliance is nil when no previous shift end was supplied
	BreakCompliance *compliance.BreakCompliance `json:"break_compliance,omitempty"`

	Warnings []string `json:"warnings"`
}
