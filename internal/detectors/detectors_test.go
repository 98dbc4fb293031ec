package detectors

import (
	"fmt"
	"testing"
	"time"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
	"diarylens/domain/diary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthSeries(start string, ratios []float64) []analytics.MonthlyDeepAnalysis {
	t0, err := core.ParseMonthKey(start)
	if err != nil {
		panic(err)
	}
	out := make([]analytics.MonthlyDeepAnalysis, len(ratios))
	for i, r := range ratios {
		out[i] = analytics.MonthlyDeepAnalysis{
			Month:             t0.AddDate(0, i, 0).Format(core.MonthLayout),
			EntryCount:        1,
			NegativeRatio:     r,
			AvgSentenceLength: 20,
			DepthRatio:        0.3,
		}
	}
	return out
}

func TestTrendShift_LinearRiseIsOneDeterioration(t *testing.T) {
	ratios := make([]float64, 12)
	for i := range ratios {
		ratios[i] = 0.1 + 0.5*float64(i)/11
	}
	monthly := monthSeries("2023-01", ratios)

	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthly)

	require.Len(t, shifts, 1)
	s := shifts[0]
	assert.Equal(t, analytics.ShiftDeterioration, s.Type)
	assert.Equal(t, "2023-01", s.StartMonth)
	assert.Equal(t, "2023-12", s.EndMonth)
	assert.Greater(t, s.Magnitude, 0.0)
	assert.InDelta(t, 0.5, s.Delta, 1e-9)
	assert.InDelta(t, 0.1, s.Before.NegativeRatio, 1e-9)
	assert.InDelta(t, 0.6, s.After.NegativeRatio, 1e-9)
}

func TestTrendShift_NoisyRiseIsOneDeterioration(t *testing.T) {
	// Rises about 0.045 a month with a 0.014 dip every third month.
	ratios := []float64{0.100, 0.145, 0.131, 0.236, 0.282, 0.267, 0.373, 0.418, 0.404, 0.509, 0.555, 0.540}
	monthly := monthSeries("2023-01", ratios)

	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthly)

	require.Len(t, shifts, 1)
	s := shifts[0]
	assert.Equal(t, analytics.ShiftDeterioration, s.Type)
	assert.Equal(t, "2023-01", s.StartMonth)
	assert.Equal(t, "2023-11", s.EndMonth)
	assert.InDelta(t, 0.455, s.Delta, 1e-9)
	assert.Greater(t, s.Magnitude, 2.0)
}

func TestTrendShift_RawWindowSplitsNoisyRise(t *testing.T) {
	ratios := []float64{0.100, 0.145, 0.131, 0.236, 0.282, 0.267, 0.373, 0.418, 0.404, 0.509, 0.555, 0.540}

	shifts := NewTrendShiftDetector(TrendShiftConfig{Window: 1}).Detect(monthSeries("2023-01", ratios))

	assert.Empty(t, shifts)
}

func TestTrendShift_PlateauAfterRiseStartsAfterIt(t *testing.T) {
	ratios := []float64{0.1, 0.3, 0.5, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7}

	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthSeries("2023-01", ratios))

	require.Len(t, shifts, 2)
	assert.Equal(t, analytics.ShiftDeterioration, shifts[0].Type)
	assert.Equal(t, "2023-01", shifts[0].StartMonth)
	assert.Equal(t, "2023-04", shifts[0].EndMonth)

	plateau := shifts[1]
	assert.Equal(t, analytics.ShiftPlateau, plateau.Type)
	assert.Equal(t, "2023-05", plateau.StartMonth)
	assert.Equal(t, "2023-11", plateau.EndMonth)
	assert.Equal(t, plateau.StartMonth, plateau.Before.Month)
	assert.Equal(t, plateau.EndMonth, plateau.After.Month)
	assert.InDelta(t, 0.0, plateau.Delta, 1e-9)

	// Five months after the shared peak month are too short for a plateau.
	shifts = NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthSeries("2023-01", ratios[:9]))
	require.Len(t, shifts, 1)
	assert.Equal(t, analytics.ShiftDeterioration, shifts[0].Type)
}

func TestTrendShift_IntervalsDoNotOverlap(t *testing.T) {
	monthly := monthSeries("2023-01", []float64{0.1, 0.3, 0.5, 0.7, 0.5, 0.3, 0.1})

	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthly)

	require.Len(t, shifts, 2)
	assert.Equal(t, analytics.ShiftDeterioration, shifts[0].Type)
	assert.Equal(t, analytics.ShiftRecovery, shifts[1].Type)
	for i := 1; i < len(shifts); i++ {
		assert.Greater(t, shifts[i].StartMonth, shifts[i-1].EndMonth)
	}
	for _, s := range shifts {
		assert.LessOrEqual(t, s.StartMonth, s.EndMonth)
	}
}

func TestTrendShift_FlatSeries(t *testing.T) {
	flat := make([]float64, 12)
	for i := range flat {
		flat[i] = 0.4
	}

	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthSeries("2023-01", flat))
	require.Len(t, shifts, 1)
	assert.Equal(t, analytics.ShiftPlateau, shifts[0].Type)
	assert.Equal(t, "2023-01", shifts[0].StartMonth)
	assert.Equal(t, "2023-12", shifts[0].EndMonth)

	assert.Empty(t, NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthSeries("2023-01", flat[:5])))
}

func TestTrendShift_TooFewMonths(t *testing.T) {
	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthSeries("2023-01", []float64{0.1, 0.9, 0.1}))
	assert.Nil(t, shifts)
}

func TestTrendShift_VocabularyShiftOnFlatRatio(t *testing.T) {
	monthly := monthSeries("2023-01", []float64{0.4, 0.4, 0.4, 0.4})
	for i := 2; i < len(monthly); i++ {
		monthly[i].AvgSentenceLength = 60
	}

	shifts := NewTrendShiftDetector(TrendShiftConfig{}).Detect(monthly)
	require.Len(t, shifts, 1)
	assert.Equal(t, analytics.ShiftVocabularyShift, shifts[0].Type)
}

func TestSeasonal_AlwaysFourRows(t *testing.T) {
	var monthly []analytics.MonthlyDeepAnalysis
	for m := 1; m <= 12; m++ {
		neg := 5
		if m == 12 || m <= 2 {
			neg = 50
		}
		stats := analytics.TextStats{
			TotalChars: 1000,
			Counts: map[analytics.Category]int{
				analytics.CategoryNegative: neg,
				analytics.CategoryPositive: 10,
			},
		}
		monthly = append(monthly, analytics.MonthlyDeepAnalysis{
			Month:         fmt.Sprintf("2023-%02d", m),
			EntryCount:    2,
			Stats:         stats,
			NegativeRatio: stats.NegativeRatio(),
		})
	}

	rows, err := NewSeasonalAnalyzer(SeasonalConfig{}).Analyze(monthly)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	for i, s := range analytics.AllSeasons {
		assert.Equal(t, s, rows[i].Season)
		assert.Equal(t, 3, rows[i].MonthCount)
		assert.Equal(t, 6, rows[i].EntryCount)
		assert.GreaterOrEqual(t, rows[i].PValue, 0.0)
		assert.LessOrEqual(t, rows[i].PValue, 1.0)
	}

	winter := rows[3]
	assert.InDelta(t, 50.0, winter.SeasonNegativeRate, 1e-9)
	assert.InDelta(t, 5.0, winter.PooledOtherRate, 1e-9)
	assert.True(t, winter.Significant)
	assert.Greater(t, winter.ZScore, 0.0)
	assert.InDelta(t, winter.ChiSquare, winter.ZScore*winter.ZScore, 1e-6)
	assert.Less(t, rows[0].ZScore, 0.0)
	assert.InDelta(t, 50.0, winter.MeanRates[analytics.CategoryNegative], 1e-9)
}

func TestSeasonal_EmptySeasonStillReported(t *testing.T) {
	monthly := []analytics.MonthlyDeepAnalysis{
		{Month: "2023-04", Stats: analytics.TextStats{TotalChars: 100}},
	}
	rows, err := NewSeasonalAnalyzer(SeasonalConfig{}).Analyze(monthly)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, 0, rows[1].MonthCount)
	assert.Equal(t, 1.0, rows[1].PValue)
	assert.Equal(t, 0.0, rows[1].ZScore)
	assert.False(t, rows[1].Significant)
}

func TestSeasonal_BadMonthKey(t *testing.T) {
	_, err := NewSeasonalAnalyzer(SeasonalConfig{}).Analyze([]analytics.MonthlyDeepAnalysis{{Month: "spring"}})
	assert.Error(t, err)
}

func TestDepth_Labels(t *testing.T) {
	a := NewDepthAnalyzer(DepthConfig{})
	base := analytics.VocabularyDepth{Period: "2022", NegativeRate: 5, DepthRatio: 0.2}

	tests := []struct {
		name  string
		later analytics.VocabularyDepth
		want  analytics.DepthLabel
	}{
		{"fewer but deeper", analytics.VocabularyDepth{Period: "2023", NegativeRate: 3, DepthRatio: 0.5}, analytics.DepthFrequencyDownDepthUp},
		{"fewer and lighter", analytics.VocabularyDepth{Period: "2023", NegativeRate: 3, DepthRatio: 0.1}, analytics.DepthFrequencyDownDepthDown},
		{"more and deeper", analytics.VocabularyDepth{Period: "2023", NegativeRate: 8, DepthRatio: 0.4}, analytics.DepthFrequencyUpDepthUp},
		{"within dead band", analytics.VocabularyDepth{Period: "2023", NegativeRate: 5.2, DepthRatio: 0.22}, analytics.DepthStable},
		{"more but lighter", analytics.VocabularyDepth{Period: "2023", NegativeRate: 8, DepthRatio: 0.1}, analytics.DepthOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Interpret(base, tt.later)
			assert.Equal(t, tt.want, got.Label)
			assert.InDelta(t, tt.later.NegativeRate-base.NegativeRate, got.FrequencyDelta, 1e-12)
			assert.InDelta(t, tt.later.DepthRatio-base.DepthRatio, got.DepthDelta, 1e-12)
			assert.NotEmpty(t, got.Description)
		})
	}
}

func TestDepth_FromStats(t *testing.T) {
	s := analytics.TextStats{
		TotalChars: 2000,
		Counts: map[analytics.Category]int{
			analytics.CategoryNegative:      10,
			analytics.CategoryLightNegative: 3,
			analytics.CategoryDeepNegative:  1,
		},
	}
	d := Depth("2024", s)
	assert.Equal(t, 3, d.LightCount)
	assert.Equal(t, 1, d.DeepCount)
	assert.InDelta(t, 0.25, d.DepthRatio, 1e-12)
	assert.InDelta(t, 5.0, d.NegativeRate, 1e-12)
}

type personCounts struct {
	fp, op, work, neg, pos int
}

func personPeriods(before, after personCounts) []analytics.RawPeriodStats {
	mk := func(year int, c personCounts) analytics.RawPeriodStats {
		return analytics.RawPeriodStats{
			Period:      fmt.Sprintf("%d", year),
			Granularity: diary.GranularityYear,
			EntryCount:  10,
			TextStats: analytics.TextStats{
				TotalChars: 1000,
				Counts: map[analytics.Category]int{
					analytics.CategoryFirstPerson: c.fp,
					analytics.CategoryOtherPerson: c.op,
					analytics.CategoryWork:        c.work,
					analytics.CategoryNegative:    c.neg,
					analytics.CategoryPositive:    c.pos,
				},
			},
		}
	}
	return []analytics.RawPeriodStats{
		mk(2020, before), mk(2021, before), mk(2022, after), mk(2023, after),
	}
}

func TestFirstPerson_Labels(t *testing.T) {
	a := NewFirstPersonAnalyzer(FirstPersonConfig{})
	base := personCounts{fp: 10, op: 4, work: 2, neg: 5, pos: 5}

	tests := []struct {
		name  string
		after personCounts
		want  analytics.FirstPersonLabel
	}{
		{"negativity fell too", personCounts{fp: 5, op: 4, work: 2, neg: 1, pos: 9}, analytics.FirstPersonGenuineGrowth},
		{"work language grew", personCounts{fp: 5, op: 5, work: 8, neg: 5, pos: 5}, analytics.FirstPersonRolePersona},
		{"others grew", personCounts{fp: 5, op: 9, work: 2, neg: 5, pos: 5}, analytics.FirstPersonOutwardAdaptation},
		{"only self fell", personCounts{fp: 5, op: 4, work: 2, neg: 5, pos: 5}, analytics.FirstPersonSelfDisclosureDecrease},
		{"self unchanged", personCounts{fp: 10, op: 9, work: 8, neg: 1, pos: 9}, analytics.FirstPersonNoSignificantShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Interpret(personPeriods(base, tt.after))
			assert.Equal(t, tt.want, got.Label)
			assert.Equal(t, 4, got.Periods)
			assert.InDelta(t, float64(tt.after.fp-base.fp), got.FirstPersonDelta, 1e-9)
			assert.Len(t, got.Evidence, 4)
		})
	}
}

func TestFirstPerson_InsufficientData(t *testing.T) {
	periods := personPeriods(personCounts{fp: 10}, personCounts{fp: 1})[:2]
	got := NewFirstPersonAnalyzer(FirstPersonConfig{}).Interpret(periods)
	assert.Equal(t, analytics.FirstPersonInsufficientData, got.Label)
	assert.NotEmpty(t, got.Evidence)
	assert.Zero(t, got.FirstPersonDelta)
}

func dayKey(i int) string {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format(core.DayLayout)
}

func TestPredictive_PrecursorTerm(t *testing.T) {
	const days = 40
	spikes := map[int]bool{15: true, 30: true}
	precursors := map[int]bool{14: true, 29: true}

	daily := make([]analytics.EmotionAnalysisDaily, days)
	texts := make(map[string][]string, days)
	for i := 0; i < days; i++ {
		key := dayKey(i)
		daily[i] = analytics.EmotionAnalysisDaily{Date: key, EntryCount: 1}
		texts[key] = []string{"今日は普通の一日だった。"}
		if spikes[i] {
			daily[i].NegativeRate = 300
			texts[key] = []string{"辛い辛い辛い悲しい"}
		}
		if precursors[i] {
			texts[key] = append(texts[key], "残業続き")
		}
	}

	report, err := NewPredictiveDetector(PredictiveConfig{}).Detect(daily, texts)
	require.NoError(t, err)

	require.Len(t, report.Spikes, 2)
	assert.Equal(t, dayKey(15), report.Spikes[0].Date)
	assert.Equal(t, dayKey(30), report.Spikes[1].Date)

	var found *analytics.PredictiveIndicator
	for i := range report.Indicators {
		assert.NotEqual(t, "普通", report.Indicators[i].Term)
		if report.Indicators[i].Term == "残業" {
			found = &report.Indicators[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 2, found.SpikeHits)
	assert.InDelta(t, 1.0, found.SpikeCoverage, 1e-12)
	assert.InDelta(t, 1.0, found.MeanLeadDays, 1e-12)
	assert.Zero(t, found.BaselineShare)
	assert.Greater(t, found.Correlation, 0.0)
}

func TestPredictive_TooFewDays(t *testing.T) {
	daily := make([]analytics.EmotionAnalysisDaily, 10)
	for i := range daily {
		daily[i] = analytics.EmotionAnalysisDaily{Date: dayKey(i), NegativeRate: float64(i * i)}
	}
	report, err := NewPredictiveDetector(PredictiveConfig{}).Detect(daily, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Spikes)
	assert.Empty(t, report.Indicators)
}

func TestPredictive_SymptomLag(t *testing.T) {
	const days = 30
	symptom := make([]float64, days)
	for i := range symptom {
		symptom[i] = float64((i * 7) % 11)
	}
	daily := make([]analytics.EmotionAnalysisDaily, days)
	for i := range daily {
		daily[i] = analytics.EmotionAnalysisDaily{Date: dayKey(i), PhysicalSymptomRate: symptom[i]}
		if i >= 2 {
			daily[i].NegativeRate = symptom[i-2]
		}
	}

	corr := NewPredictiveDetector(PredictiveConfig{}).SymptomCorrelations(daily)

	var lag2 *analytics.SymptomCorrelation
	for i := range corr {
		assert.GreaterOrEqual(t, corr[i].Correlation, 0.3)
		assert.GreaterOrEqual(t, corr[i].SampleSize, 10)
		if corr[i].LagDays == 2 {
			lag2 = &corr[i]
		}
	}
	require.NotNil(t, lag2)
	assert.Equal(t, days-2, lag2.SampleSize)
	assert.InDelta(t, 1.0, lag2.Correlation, 1e-9)
	assert.Less(t, lag2.PValue, 0.001)
}

func TestNgrams(t *testing.T) {
	got := Ngrams("今日は残業。ありがとう", 2)
	assert.Contains(t, got, "今日")
	assert.Contains(t, got, "残業")
	assert.Contains(t, got, "日は")
	assert.NotContains(t, got, "あり")
	assert.NotContains(t, got, "業。")
}
