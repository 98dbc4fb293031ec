package metrics

import (
	"math"

	"diarylens/domain/analytics"

	"github.com/montanaflynn/stats"
)

// StabilityScore combines the three inputs into [0,100]. It is non-increasing
// in volatility and selfDenialAvg for any non-negative weights.
func StabilityScore(positiveRatio, volatility, selfDenialAvg float64, w StabilityWeights) float64 {
	volTerm := 1 - capRatio(volatility, w.VolatilityCap)
	sdTerm := 1 - capRatio(selfDenialAvg, w.SelfDenialCap)
	score := 100 * (math.Max(0, w.Positive)*positiveRatio +
		math.Max(0, w.Volatility)*volTerm +
		math.Max(0, w.SelfDenial)*sdTerm)
	return clamp(score, 0, 100)
}

// capRatio maps v into [0,1] as v/limit, saturating at 1.
func capRatio(v, limit float64) float64 {
	if math.IsNaN(v) || v <= 0 || limit <= 0 {
		return 0
	}
	return math.Min(v/limit, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Stability scores a set of months as one unit. label becomes the Year field.
// Volatility is the population standard deviation of monthly negative ratios;
// fewer than two months means zero volatility.
func Stability(label string, months []analytics.MonthlyDeepAnalysis, w StabilityWeights) analytics.StabilityIndex {
	idx := analytics.StabilityIndex{Year: label, MonthCount: len(months)}
	if len(months) == 0 {
		return idx
	}

	var pos, neg int
	negRatios := make([]float64, 0, len(months))
	selfDenial := make([]float64, 0, len(months))
	for _, m := range months {
		pos += m.Stats.Count(analytics.CategoryPositive)
		neg += m.Stats.Count(analytics.CategoryNegative)
		negRatios = append(negRatios, m.NegativeRatio)
		selfDenial = append(selfDenial, m.Stats.Rate(analytics.CategorySelfDenial))
	}
	if pos+neg > 0 {
		idx.PositiveRatio = float64(pos) / float64(pos+neg)
	}
	if len(negRatios) > 1 {
		if sd, err := stats.StandardDeviationPopulation(negRatios); err == nil {
			idx.Volatility = sd
		}
	}
	if mean, err := stats.Mean(selfDenial); err == nil {
		idx.SelfDenialAvg = mean
	}
	idx.Score = StabilityScore(idx.PositiveRatio, idx.Volatility, idx.SelfDenialAvg, w)
	return idx
}

// StabilityByYear groups monthly points by calendar year (first four
// characters of the month key) and scores each year, in order.
func StabilityByYear(monthly []analytics.MonthlyDeepAnalysis, w StabilityWeights) []analytics.StabilityIndex {
	var out []analytics.StabilityIndex
	var year string
	var group []analytics.MonthlyDeepAnalysis
	flush := func() {
		if len(group) > 0 {
			out = append(out, Stability(year, group, w))
		}
	}
	for _, m := range monthly {
		y := m.Month
		if len(y) >= 4 {
			y = y[:4]
		}
		if y != year {
			flush()
			year, group = y, nil
		}
		group = append(group, m)
	}
	flush()
	return out
}

// OverallStability scores every month of the corpus together. Nil with no
// months.
func OverallStability(monthly []analytics.MonthlyDeepAnalysis, w StabilityWeights) *analytics.StabilityIndex {
	if len(monthly) == 0 {
		return nil
	}
	label := monthly[0].Month + ".." + monthly[len(monthly)-1].Month
	idx := Stability(label, monthly, w)
	return &idx
}
