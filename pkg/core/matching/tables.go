package matching

import "math"

// Weights for combining the five sub-scores into a total.
// The engine does not check that they sum to 1; that is the caller's contract.
type Weights struct {
	Certification float64 `json:"certification" yaml:"certification" validate:"gte=0,lte=1"`
	Training      float64 `json:"training" yaml:"training" validate:"gte=0,lte=1"`
	Experience    float64 `json:"experience" yaml:"experience" validate:"gte=0,lte=1"`
	Distance      float64 `json:"distance" yaml:"distance" validate:"gte=0,lte=1"`
	Cost          float64 `json:"cost" yaml:"cost" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard factor weights
func DefaultWeights() Weights {
	return Weights{
		Certification: 0.4,
		Training:      0.2,
		Experience:    0.2,
		Distance:      0.1,
		Cost:          0.1,
	}
}

// IsZero reports whether no weight has been set
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Certification + w.Training + w.Experience + w.Distance + w.Cost
}

// DefaultMaxDistanceKm is the distance beyond which a worker scores zero for proximity
const DefaultMaxDistanceKm = 50.0

// ExperienceBand is one segment of the experience curve.
// Hours in [FromHours, ToHours) score BaseScore plus a linear ramp of up to Ramp.
type ExperienceBand struct {
	FromHours float64
	ToHours   float64
	BaseScore float64
	Ramp      float64
}

// DistanceStep scores any distance strictly below BelowKm
type DistanceStep struct {
	BelowKm float64
	Score   float64
}

// CostBand scores a worker rate up to and including MaxRatio of the reference rate
type CostBand struct {
	MaxRatio float64
	Score    float64
}

// ScoringTables holds every constant the scoring primitives use
type ScoringTables struct {
	// Certification tier weights
	PreferredCertWeight float64
	OptionalCertWeight  float64
	MustHaveCertBonus   float64

	// ExperienceBands must be ordered by FromHours and cover [0, +Inf)
	ExperienceBands []ExperienceBand

	// DistanceSteps are checked in order, DistanceFallback applies up to the max distance
	DistanceSteps    []DistanceStep
	DistanceFallback float64

	// FallbackMarketRate is used when the shift has no budget
	FallbackMarketRate float64
	CostBands          []CostBand
	CostFallback       float64
}

// DefaultScoringTables returns the standard scoring curves.
//
// The experience curve tops out at 0.95 rather than 1.0.
func DefaultScoringTables() ScoringTables {
	return ScoringTables{
		PreferredCertWeight: 0.4,
		OptionalCertWeight:  0.2,
		MustHaveCertBonus:   0.4,

		ExperienceBands: []ExperienceBand{
			{FromHours: math.Inf(-1), ToHours: 100, BaseScore: 0.1},
			{FromHours: 100, ToHours: 500, BaseScore: 0.3, Ramp: 0.3},
			{FromHours: 500, ToHours: 1000, BaseScore: 0.6, Ramp: 0.2},
			{FromHours: 1000, ToHours: 5000, BaseScore: 0.8, Ramp: 0.15},
			{FromHours: 5000, ToHours: math.Inf(1), BaseScore: 0.95},
		},

		DistanceSteps: []DistanceStep{
			{BelowKm: 5, Score: 1.0},
			{BelowKm: 10, Score: 0.9},
			{BelowKm: 20, Score: 0.7},
			{BelowKm: 35, Score: 0.5},
		},
		DistanceFallback: 0.3,

		FallbackMarketRate: 35.0,
		CostBands: []CostBand{
			{MaxRatio: 1.0, Score: 1.0},
			{MaxRatio: 1.2, Score: 0.8},
			{MaxRatio: 1.5, Score: 0.6},
		},
		CostFallback: 0.4,
	}
}

// isZero reports whether the tables were left unset
func (t ScoringTables) isZero() bool {
	return len(t.ExperienceBands) == 0 && len(t.DistanceSteps) == 0 && len(t.CostBands) == 0
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
