package detectors

import (
	"diarylens/domain/analytics"
	"diarylens/domain/core"
	"diarylens/internal/distributions"

	"github.com/montanaflynn/stats"
)

// SeasonalAnalyzer cross-tabulates monthly points by meteorological season.
type SeasonalAnalyzer struct {
	cfg SeasonalConfig
}

// NewSeasonalAnalyzer creates an analyzer; Alpha defaults to 0.05.
func NewSeasonalAnalyzer(cfg SeasonalConfig) *SeasonalAnalyzer {
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		cfg.Alpha = DefaultConfig().Seasonal.Alpha
	}
	return &SeasonalAnalyzer{cfg: cfg}
}

type seasonBucket struct {
	months     []analytics.MonthlyDeepAnalysis
	entries    int
	chars      int
	negHits    int
	negRatios  []float64
	rateSeries map[analytics.Category][]float64
}

// Analyze returns one row per season in spring..winter order. Each season's
// pooled negative rate is tested against the other three seasons with a 2×2
// chi-square (negative hits vs remaining characters); the signed z of the
// equivalent proportion test gives the direction.
func (a *SeasonalAnalyzer) Analyze(monthly []analytics.MonthlyDeepAnalysis) ([]analytics.SeasonalCrossStats, error) {
	buckets := make(map[analytics.Season]*seasonBucket, len(analytics.AllSeasons))
	for _, s := range analytics.AllSeasons {
		buckets[s] = &seasonBucket{rateSeries: make(map[analytics.Category][]float64)}
	}

	totalChars, totalNeg := 0, 0
	for _, m := range monthly {
		t, err := core.ParseMonthKey(m.Month)
		if err != nil {
			return nil, err
		}
		b := buckets[analytics.SeasonOf(t.Month())]
		b.months = append(b.months, m)
		b.entries += m.EntryCount
		b.chars += m.Stats.TotalChars
		b.negHits += m.Stats.Count(analytics.CategoryNegative)
		b.negRatios = append(b.negRatios, m.NegativeRatio)
		for _, c := range analytics.AllCategories {
			b.rateSeries[c] = append(b.rateSeries[c], m.Stats.Rate(c))
		}
		totalChars += m.Stats.TotalChars
		totalNeg += m.Stats.Count(analytics.CategoryNegative)
	}

	out := make([]analytics.SeasonalCrossStats, 0, len(analytics.AllSeasons))
	for _, s := range analytics.AllSeasons {
		b := buckets[s]
		row := analytics.SeasonalCrossStats{
			Season:     s,
			MonthCount: len(b.months),
			EntryCount: b.entries,
			TotalChars: b.chars,
			MeanRates:  make(map[analytics.Category]float64, len(analytics.AllCategories)),
			PValue:     1,
		}
		for _, c := range analytics.AllCategories {
			row.MeanRates[c] = meanOrZero(b.rateSeries[c])
		}
		row.MeanNegativeRatio = meanOrZero(b.negRatios)

		otherChars := totalChars - b.chars
		otherNeg := totalNeg - b.negHits
		row.SeasonNegativeRate = analytics.PerThousand(b.negHits, b.chars)
		row.PooledOtherRate = analytics.PerThousand(otherNeg, otherChars)

		row.ChiSquare, row.PValue = distributions.ChiSquare2x2(
			float64(b.negHits), float64(nonNegative(b.chars-b.negHits)),
			float64(otherNeg), float64(nonNegative(otherChars-otherNeg)),
		)
		row.ZScore, _ = distributions.TwoProportionZTest(
			float64(b.negHits), float64(b.chars),
			float64(otherNeg), float64(otherChars),
		)
		row.Significant = row.PValue < a.cfg.Alpha
		out = append(out, row)
	}
	return out, nil
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
