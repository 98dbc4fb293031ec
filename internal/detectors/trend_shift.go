package detectors

import (
	"math"

	"diarylens/domain/analytics"

	"github.com/montanaflynn/stats"
)

// TrendShiftDetector finds intervals of significant negative-ratio change,
// flat stretches and vocabulary shifts in a monthly series.
type TrendShiftDetector struct {
	cfg TrendShiftConfig
}

// NewTrendShiftDetector creates a detector; zero fields take defaults.
func NewTrendShiftDetector(cfg TrendShiftConfig) *TrendShiftDetector {
	d := DefaultConfig().TrendShift
	if cfg.Threshold <= 0 {
		cfg.Threshold = d.Threshold
	}
	if cfg.FlatEpsilon <= 0 {
		cfg.FlatEpsilon = d.FlatEpsilon
	}
	if cfg.VocabularyThreshold <= 0 {
		cfg.VocabularyThreshold = d.VocabularyThreshold
	}
	if cfg.PlateauMinMonths <= 1 {
		cfg.PlateauMinMonths = d.PlateauMinMonths
	}
	if cfg.MinMonths < 2 {
		cfg.MinMonths = d.MinMonths
	}
	if cfg.Window <= 0 {
		cfg.Window = d.Window
	}
	return &TrendShiftDetector{cfg: cfg}
}

// Detect slides a Window-month trailing mean across the negative ratio and
// groups consecutive window steps with the same sign. A rising group whose
// change between its lowest and highest month reaches Threshold σ is a
// deterioration, a falling one a recovery. Flat groups become vocabulary
// shifts when sentence length or depth ratio moved sharply, or plateaus when
// long enough. Returned intervals are chronological and never overlap.
// Fewer than MinMonths points yields nil.
func (d *TrendShiftDetector) Detect(monthly []analytics.MonthlyDeepAnalysis) []analytics.TrendShift {
	n := len(monthly)
	if n < d.cfg.MinMonths {
		return nil
	}

	ratios := make([]float64, n)
	sentLen := make([]float64, n)
	depth := make([]float64, n)
	for i, m := range monthly {
		ratios[i] = m.NegativeRatio
		sentLen[i] = m.AvgSentenceLength
		depth[i] = m.DepthRatio
	}
	sigma := populationStdDev(ratios)
	sigmaLen := populationStdDev(sentLen)
	sigmaDepth := populationStdDev(depth)

	window := min(d.cfg.Window, n-1)
	smoothed := trailingMeans(ratios, window)

	// direction[k] describes the window step ending at month k; the first
	// full window ends at month window-1.
	first := window - 1
	direction := make([]int, n)
	for k := first + 1; k < n; k++ {
		direction[k] = d.direction(smoothed[k]-smoothed[k-1], sigma)
	}

	var shifts []analytics.TrendShift
	lastEnd := -1
	for k := first + 1; k < n; {
		j := k
		for j+1 < n && direction[j+1] == direction[k] {
			j++
		}
		dir := direction[k]
		// Window steps k..j span months k-window..j.
		from, to := k-window, j
		k = j + 1

		var kind analytics.TrendShiftType
		var magnitude float64
		start, end := from, to
		switch dir {
		case 1, -1:
			start, end = extremes(ratios, from, to, dir)
			if start <= lastEnd {
				start = lastEnd + 1
			}
			if start >= end {
				continue
			}
			magnitude = sigmaUnits(ratios[end]-ratios[start], sigma)
			if magnitude < d.cfg.Threshold {
				continue
			}
			kind = analytics.ShiftDeterioration
			if dir < 0 {
				kind = analytics.ShiftRecovery
			}
		default:
			if start <= lastEnd {
				start = lastEnd + 1
			}
			if start >= end {
				continue
			}
			vocab := math.Max(
				sigmaUnits(sentLen[end]-sentLen[start], sigmaLen),
				sigmaUnits(depth[end]-depth[start], sigmaDepth),
			)
			switch {
			case vocab >= d.cfg.VocabularyThreshold:
				kind, magnitude = analytics.ShiftVocabularyShift, vocab
			case end-start+1 >= d.cfg.PlateauMinMonths:
				kind, magnitude = analytics.ShiftPlateau, sigmaUnits(ratios[end]-ratios[start], sigma)
			default:
				continue
			}
		}

		shifts = append(shifts, analytics.TrendShift{
			Type:       kind,
			StartMonth: monthly[start].Month,
			EndMonth:   monthly[end].Month,
			Magnitude:  magnitude,
			Delta:      ratios[end] - ratios[start],
			Before:     snapshot(monthly[start]),
			After:      snapshot(monthly[end]),
		})
		lastEnd = end
	}
	return shifts
}

// trailingMeans returns the mean of the window months ending at each index;
// indexes before the first full window are left at zero.
func trailingMeans(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// extremes narrows [from, to] to the months between the turning points of a
// rising (dir > 0) or falling run: the last low before the first high, or
// the last high before the first low.
func extremes(values []float64, from, to, dir int) (int, int) {
	better := func(a, b float64) bool { return a > b }
	if dir < 0 {
		better = func(a, b float64) bool { return a < b }
	}

	peak := from
	for i := from + 1; i <= to; i++ {
		if better(values[i], values[peak]) {
			peak = i
		}
	}
	trough := from
	for i := from + 1; i <= peak; i++ {
		if !better(values[i], values[trough]) {
			trough = i
		}
	}
	return trough, peak
}

// direction is +1/-1 for a delta of at least FlatEpsilon σ, 0 otherwise.
func (d *TrendShiftDetector) direction(delta, sigma float64) int {
	if sigma == 0 || math.Abs(delta)/sigma < d.cfg.FlatEpsilon {
		return 0
	}
	if delta > 0 {
		return 1
	}
	return -1
}

func sigmaUnits(delta, sigma float64) float64 {
	if sigma == 0 {
		return 0
	}
	return math.Abs(delta) / sigma
}

func populationStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil || math.IsNaN(sd) {
		return 0
	}
	return sd
}

func snapshot(m analytics.MonthlyDeepAnalysis) analytics.MetricSnapshot {
	return analytics.MetricSnapshot{
		Month:             m.Month,
		NegativeRatio:     m.NegativeRatio,
		AvgSentenceLength: m.AvgSentenceLength,
		DepthRatio:        m.DepthRatio,
	}
}
