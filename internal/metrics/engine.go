package metrics

import (
	"diarylens/domain/analytics"
)

// Engine builds the derived series with one Config.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine; zero fields of cfg take defaults.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// BuildMonthly turns monthly raw stats into the monthly deep-analysis series
// with moving averages and seasonal baseline/deviation of the negative ratio.
func (e *Engine) BuildMonthly(raw []analytics.RawPeriodStats) ([]analytics.MonthlyDeepAnalysis, error) {
	keys := make([]string, len(raw))
	ratios := make([]float64, len(raw))
	for i, r := range raw {
		keys[i] = r.Period
		ratios[i] = r.NegativeRatio()
	}

	short := MovingAverage(ratios, e.cfg.ShortWindow)
	long := MovingAverage(ratios, e.cfg.LongWindow)
	baselines, deviations, err := SeasonalBaselines(keys, ratios)
	if err != nil {
		return nil, err
	}

	out := make([]analytics.MonthlyDeepAnalysis, len(raw))
	for i, r := range raw {
		out[i] = analytics.MonthlyDeepAnalysis{
			Month:             r.Period,
			EntryCount:        r.EntryCount,
			Stats:             r.TextStats,
			Rates:             r.Rates(),
			NegativeRatio:     ratios[i],
			PositiveRatio:     r.PositiveRatio(),
			DepthRatio:        r.DepthRatio(),
			AvgSentenceLength: r.AvgSentenceLength(),
			QuestionRate:      r.QuestionRate(),
			ExclamationRate:   r.ExclamationRate(),
			MovingAvg3:        short[i],
			MovingAvg6:        long[i],
			SeasonalBaseline:  baselines[i],
			SeasonalDeviation: deviations[i],
		}
	}
	return out, nil
}

// BuildDaily turns daily raw stats into the daily emotion series with a
// trailing moving average of the negative ratio.
func (e *Engine) BuildDaily(raw []analytics.RawPeriodStats) []analytics.EmotionAnalysisDaily {
	ratios := make([]float64, len(raw))
	for i, r := range raw {
		ratios[i] = r.NegativeRatio()
	}
	ma := MovingAverage(ratios, e.cfg.DailyWindow)

	out := make([]analytics.EmotionAnalysisDaily, len(raw))
	for i, r := range raw {
		out[i] = analytics.EmotionAnalysisDaily{
			Date:                r.Period,
			EntryCount:          r.EntryCount,
			Stats:               r.TextStats,
			Rates:               r.Rates(),
			NegativeRatio:       ratios[i],
			PositiveRatio:       r.PositiveRatio(),
			NegativeRate:        r.Rate(analytics.CategoryNegative),
			PositiveRate:        r.Rate(analytics.CategoryPositive),
			PhysicalSymptomRate: r.Rate(analytics.CategoryPhysicalSymptom),
			MovingAvg7:          ma[i],
		}
	}
	return out
}

// Elevation accumulates climb using the configured scale.
func (e *Engine) Elevation(raw []analytics.RawPeriodStats) []analytics.ElevationPoint {
	return Elevation(raw, e.cfg.ClimbScale)
}

// StabilityByYear scores each calendar year of the monthly series.
func (e *Engine) StabilityByYear(monthly []analytics.MonthlyDeepAnalysis) []analytics.StabilityIndex {
	return StabilityByYear(monthly, e.cfg.Stability)
}

// OverallStability scores the whole monthly series.
func (e *Engine) OverallStability(monthly []analytics.MonthlyDeepAnalysis) *analytics.StabilityIndex {
	return OverallStability(monthly, e.cfg.Stability)
}
