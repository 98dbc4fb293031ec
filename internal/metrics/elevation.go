package metrics

import (
	"math"

	"diarylens/domain/analytics"
)

// Climb is the non-negative contribution of one period:
// max(0, positiveRatio − negativeRatio) × scale.
func Climb(positiveRatio, negativeRatio, scale float64) float64 {
	return math.Max(0, positiveRatio-negativeRatio) * scale
}

// Elevation accumulates climb over periods. The index is a ratchet: it never
// decreases, and periods dominated by negative vocabulary add nothing.
func Elevation(periods []analytics.RawPeriodStats, scale float64) []analytics.ElevationPoint {
	out := make([]analytics.ElevationPoint, len(periods))
	total := 0.0
	for i, p := range periods {
		pos, neg := p.PositiveRatio(), p.NegativeRatio()
		climb := Climb(pos, neg, scale)
		total += climb
		out[i] = analytics.ElevationPoint{
			Period:        p.Period,
			Granularity:   p.Granularity,
			PositiveRatio: pos,
			NegativeRatio: neg,
			Climb:         climb,
			Elevation:     total,
		}
	}
	return out
}
