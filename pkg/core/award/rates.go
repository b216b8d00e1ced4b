package award

import "github.com/jakechorley/care-rostering/pkg/core/compliance"

// Rates is the award rate table used for cost calculations.
//
// Reference: SCHADS Award [MA000019], simplified. Rates are fixed constants; the award
// document itself is not parsed.
type Rates struct {
	// LevelMultipliers adjust the base rate by classification level.
	// Levels missing from the table use a multiplier of 1.0.
	LevelMultipliers map[int]float64 `json:"level_multipliers"`

	// Evening loading for work between EveningStartHour and EveningEndHour.
	// Tabled for reference; shift costing does not apply it.
	Evening          float64 `json:"evening"`
	EveningStartHour int     `json:"evening_start_hour"`
	EveningEndHour   int     `json:"evening_end_hour"`

	Saturday      float64 `json:"saturday"`
	Sunday        float64 `json:"sunday"`
	PublicHoliday float64 `json:"public_holiday"`

	OvertimeFirstTier float64 `json:"overtime_first_2hrs"`
	OvertimeAfterTier float64 `json:"overtime_after_2hrs"`

	// Sleepover is the flat multiplier for an entire sleepover shift
	Sleepover float64 `json:"sleepover"`

	// OrdinaryHoursThreshold is the shift length above which overtime applies
	OrdinaryHoursThreshold float64 `json:"ordinary_hours_threshold"`

	// OvertimeFirstTierHours is how many overtime hours are paid at the first tier rate
	OvertimeFirstTierHours float64 `json:"overtime_first_tier_hours"`

	// BreakRule is the minimum rest between shifts
	BreakRule compliance.BreakRule `json:"-"`
}

// SCHADSRates returns the standard SCHADS rate table
func SCHADSRates() Rates {
	return Rates{
		LevelMultipliers: map[int]float64{
			1: 1.0,
			2: 1.05,
			3: 1.1,
			4: 1.15,
		},
		Evening:                1.15,
		EveningStartHour:       18,
		EveningEndHour:         6,
		Saturday:               1.5,
		Sunday:                 2.0,
		PublicHoliday:          2.5,
		OvertimeFirstTier:      1.5,
		OvertimeAfterTier:      2.0,
		Sleepover:              0.57,
		OrdinaryHoursThreshold: 8.0,
		OvertimeFirstTierHours: 2.0,
		BreakRule:              compliance.DefaultBreakRule,
	}
}

// LevelMultiplier returns the multiplier for a classification level, 1.0 when unknown
func (r Rates) LevelMultiplier(level int) float64 {
	if multiplier, ok := r.LevelMultipliers[level]; ok {
		return multiplier
	}
	return 1.0
}
