package compliance

import (
	"fmt"
	"math"
	"time"
)

// MinimumBreakHours is the SCHADS minimum rest between the end of one shift and the start of the next
const MinimumBreakHours = 7.0

// AwardViolationWarning is attached to award calculations when the minimum break is not met
const AwardViolationWarning = "SCHADS Award violation - minimum break not met"

// BreakRule holds the threshold used for break compliance checks
type BreakRule struct {
	MinimumHours float64
}

// DefaultBreakRule is the SCHADS minimum break rule
var DefaultBreakRule = BreakRule{MinimumHours: MinimumBreakHours}

// BreakCompliance is the verdict of a break check.
//
// BreakHours and MinRequiredHours are nil when there was no previous shift to measure from.
// ShortfallHours is only non-zero for non-compliant verdicts.
type BreakCompliance struct {
	Compliant        bool     `json:"compliant" yaml:"compliant"`
	BreakHours       *float64 `json:"break_hours,omitempty" yaml:"breakHours,omitempty"`
	MinRequiredHours *float64 `json:"min_required,omitempty" yaml:"minRequired,omitempty"`
	ShortfallHours   float64  `json:"shortfall_hours,omitempty" yaml:"shortfallHours,omitempty"`
	Message          string   `json:"message" yaml:"message"`
	Warning          string   `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// CheckBreak checks a shift start against the default SCHADS break rule
func CheckBreak(previousShiftEnd *time.Time, shiftStart time.Time) BreakCompliance {
	return DefaultBreakRule.Check(previousShiftEnd, shiftStart)
}

// Check compares the rest elapsed since previousShiftEnd against the rule's minimum.
// A nil previousShiftEnd is trivially compliant.
func (r BreakRule) Check(previousShiftEnd *time.Time, shiftStart time.Time) BreakCompliance {
	if previousShiftEnd == nil {
		return BreakCompliance{
			Compliant: true,
			Message:   "No previous shift",
		}
	}

	breakHours := shiftStart.Sub(*previousShiftEnd).Hours()
	rounded := roundTo(breakHours, 2)
	minRequired := r.MinimumHours

	if breakHours >= r.MinimumHours {
		return BreakCompliance{
			Compliant:        true,
			BreakHours:       &rounded,
			MinRequiredHours: &minRequired,
			Message:          fmt.Sprintf("Compliant: %.1fhr break (min: %.1fhr)", breakHours, r.MinimumHours),
		}
	}

	return BreakCompliance{
		Compliant:        false,
		BreakHours:       &rounded,
		MinRequiredHours: &minRequired,
		ShortfallHours:   roundTo(r.MinimumHours-breakHours, 2),
		Message:          fmt.Sprintf("NON-COMPLIANT: Only %.1fhr break (min: %.1fhr)", breakHours, r.MinimumHours),
		Warning:          AwardViolationWarning,
	}
}

// FatigueWarning renders the advisory attached to a worker's match result when the
// break is too short. Returns an empty string for compliant verdicts.
func (bc BreakCompliance) FatigueWarning() string {
	if bc.Compliant || bc.BreakHours == nil || bc.MinRequiredHours == nil {
		return ""
	}
	return fmt.Sprintf("SCHADS: Break only %.1fhr (min: %.1fhr) - fatigue risk", *bc.BreakHours, *bc.MinRequiredHours)
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
