package detectors

import (
	"fmt"

	"diarylens/domain/analytics"
)

// DepthAnalyzer splits negative vocabulary into light and deep hits and
// reads the change between two periods.
type DepthAnalyzer struct {
	cfg DepthConfig
}

// NewDepthAnalyzer creates an analyzer; zero tolerances take defaults.
func NewDepthAnalyzer(cfg DepthConfig) *DepthAnalyzer {
	d := DefaultConfig().Depth
	if cfg.RateTolerance <= 0 {
		cfg.RateTolerance = d.RateTolerance
	}
	if cfg.DepthTolerance <= 0 {
		cfg.DepthTolerance = d.DepthTolerance
	}
	return &DepthAnalyzer{cfg: cfg}
}

// Depth computes the light/deep split of one period.
func Depth(period string, s analytics.TextStats) analytics.VocabularyDepth {
	return analytics.VocabularyDepth{
		Period:       period,
		LightCount:   s.Count(analytics.CategoryLightNegative),
		DeepCount:    s.Count(analytics.CategoryDeepNegative),
		DepthRatio:   s.DepthRatio(),
		NegativeRate: s.Rate(analytics.CategoryNegative),
	}
}

// Series computes Depth for every period.
func (a *DepthAnalyzer) Series(periods []analytics.RawPeriodStats) []analytics.VocabularyDepth {
	out := make([]analytics.VocabularyDepth, len(periods))
	for i, p := range periods {
		out[i] = Depth(p.Period, p.TextStats)
	}
	return out
}

// Interpret labels the move from earlier to later. The label is derived from
// the deltas it is returned with.
func (a *DepthAnalyzer) Interpret(earlier, later analytics.VocabularyDepth) analytics.DepthInterpretation {
	fd := later.NegativeRate - earlier.NegativeRate
	dd := later.DepthRatio - earlier.DepthRatio

	freqDown := fd <= -a.cfg.RateTolerance
	freqUp := fd >= a.cfg.RateTolerance
	depthDown := dd <= -a.cfg.DepthTolerance
	depthUp := dd >= a.cfg.DepthTolerance

	var label analytics.DepthLabel
	switch {
	case !freqDown && !freqUp && !depthDown && !depthUp:
		label = analytics.DepthStable
	case freqDown && depthUp:
		label = analytics.DepthFrequencyDownDepthUp
	case freqDown && depthDown:
		label = analytics.DepthFrequencyDownDepthDown
	case freqUp && depthUp:
		label = analytics.DepthFrequencyUpDepthUp
	default:
		label = analytics.DepthOther
	}

	return analytics.DepthInterpretation{
		Label:          label,
		Earlier:        earlier,
		Later:          later,
		FrequencyDelta: fd,
		DepthDelta:     dd,
		Description:    describeDepth(label, earlier, later, fd, dd),
	}
}

func describeDepth(label analytics.DepthLabel, earlier, later analytics.VocabularyDepth, fd, dd float64) string {
	change := fmt.Sprintf("%s→%s: negative rate %+.2f per 1000 chars, depth ratio %.2f→%.2f (%+.2f)",
		earlier.Period, later.Period, fd, earlier.DepthRatio, later.DepthRatio, dd)
	switch label {
	case analytics.DepthFrequencyDownDepthUp:
		return "Negative words appear less often but the remaining ones are heavier; " + change
	case analytics.DepthFrequencyDownDepthDown:
		return "Negative words appear less often and are lighter; " + change
	case analytics.DepthFrequencyUpDepthUp:
		return "Negative words appear more often and are heavier; " + change
	case analytics.DepthStable:
		return "Negative vocabulary is unchanged in frequency and depth; " + change
	default:
		return "Mixed movement in negative vocabulary; " + change
	}
}
