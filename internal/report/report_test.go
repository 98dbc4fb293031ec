package report

import (
	"testing"
	"time"

	"diarylens/domain/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOverview() *analytics.Overview {
	avg := 0.25
	return &analytics.Overview{
		GeneratedAt:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		EntryCount:      3,
		DatedEntryCount: 2,
		Monthly: []analytics.MonthlyDeepAnalysis{
			{Month: "2024-03", EntryCount: 1, NegativeRatio: 0.2},
			{Month: "2024-04", EntryCount: 1, NegativeRatio: 0.3, MovingAvg3: &avg},
		},
		TrendShifts: []analytics.TrendShift{
			{Type: analytics.ShiftDeterioration, StartMonth: "2024-03", EndMonth: "2024-04", Magnitude: 1.2, Delta: 0.1},
		},
		Seasonal: []analytics.SeasonalCrossStats{
			{Season: analytics.SeasonSpring, MonthCount: 2, PValue: 1},
		},
		FirstPerson: analytics.FirstPersonShiftInterpretation{
			Label:    analytics.FirstPersonInsufficientData,
			Evidence: []string{"2 periods available, 3 required"},
		},
		Predictive: analytics.PredictiveReport{
			Indicators: []analytics.PredictiveIndicator{{Term: "残業", SpikeHits: 2, MeanLeadDays: 1, Correlation: 0.5}},
		},
	}
}

func TestBuildDigest_HashIgnoresWordingButTracksNumbers(t *testing.T) {
	o := sampleOverview()

	a, err := BuildDigest(analytics.AnalysisOverview, o)
	require.NoError(t, err)
	b, err := BuildDigest(analytics.AnalysisOverview, o)
	require.NoError(t, err)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Contains(t, a.Prompt, "trend_shift_01")
	assert.Contains(t, a.Prompt, "first_person_label: insufficient_data")

	o.Monthly[1].NegativeRatio = 0.9
	c, err := BuildDigest(analytics.AnalysisOverview, o)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), c.Hash())

	seasonal, err := BuildDigest(analytics.AnalysisSeasonal, o)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), seasonal.Hash())
	assert.Contains(t, seasonal.Prompt, "season_spring")
}

func TestBuildDigest_Errors(t *testing.T) {
	_, err := BuildDigest(analytics.AnalysisOverview, nil)
	assert.Error(t, err)
	_, err = BuildDigest("mood", sampleOverview())
	assert.Error(t, err)
}

func TestMarkdownAndHTML(t *testing.T) {
	o := sampleOverview()

	md := Markdown(o)
	assert.Contains(t, md, "| 2024-04 | 1 | 0.300 | 0.250 |")
	assert.Contains(t, md, "**deterioration** 2024-03 → 2024-04")
	assert.Contains(t, md, "`残業`")

	page := string(HTML(o))
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<title>Diary analysis</title>")
	assert.Contains(t, page, "残業")
}
