package matching

import "math"

// earthRadiusKm is the mean earth radius used for great-circle distances
const earthRadiusKm = 6371.0

// ExperienceScore maps cumulative experience hours onto the experience curve
func ExperienceScore(tables ScoringTables, hours float64) float64 {
	for _, band := range tables.ExperienceBands {
		if hours >= band.ToHours {
			continue
		}
		if band.Ramp == 0 {
			return band.BaseScore
		}
		progress := (hours - band.FromHours) / (band.ToHours - band.FromHours)
		return band.BaseScore + progress*band.Ramp
	}

	if n := len(tables.ExperienceBands); n > 0 {
		return tables.ExperienceBands[n-1].BaseScore
	}
	return 0
}

// HaversineKm returns the great-circle distance between two coordinates in kilometres
func HaversineKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DistanceScore scores a worker's proximity to the participant.
//
// A worker without a location scores 0 with no distance. Beyond maxDistanceKm the score is 0
// but the distance is still returned.
func DistanceScore(tables ScoringTables, worker *Coordinate, participant Coordinate, maxDistanceKm float64) (float64, *float64) {
	if worker == nil {
		return 0.0, nil
	}

	distance := HaversineKm(*worker, participant)

	if distance > maxDistanceKm {
		return 0.0, &distance
	}

	for _, step := range tables.DistanceSteps {
		if distance < step.BelowKm {
			return step.Score, &distance
		}
	}
	return tables.DistanceFallback, &distance
}

// ReferenceRate is the hourly rate a worker's rate is compared against: the shift budget
// spread over the shift when a budget is set, otherwise the fallback market rate.
func ReferenceRate(tables ScoringTables, budgetLimit *float64, shiftDurationHours float64) float64 {
	if budgetLimit == nil {
		return tables.FallbackMarketRate
	}
	return *budgetLimit / shiftDurationHours
}

// CostScore scores a worker's hourly rate against the reference rate; cheaper is better
func CostScore(tables ScoringTables, hourlyRate float64, budgetLimit *float64, shiftDurationHours float64) float64 {
	reference := ReferenceRate(tables, budgetLimit, shiftDurationHours)

	for _, band := range tables.CostBands {
		if hourlyRate <= reference*band.MaxRatio {
			return band.Score
		}
	}
	return tables.CostFallback
}
