package aggregate

import (
	"context"
	"testing"
	"time"

	"diarylens/domain/analytics"
	"diarylens/domain/diary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dated(y int, m time.Month, d int, content string) diary.Entry {
	t := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	return diary.Entry{Date: &t, Content: content}
}

func TestAggregate_SameMonthIdenticalEntries(t *testing.T) {
	content := "今日は疲れた。でも嬉しいこともあった。"
	entries := []diary.Entry{
		dated(2024, time.March, 1, content),
		dated(2024, time.March, 15, content),
	}
	single, err := New(nil).Aggregate(entries[:1], diary.GranularityMonth)
	require.NoError(t, err)

	got, err := New(nil).Aggregate(entries, diary.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, got, 1)

	bucket := got[0]
	assert.Equal(t, "2024-03", bucket.Period)
	assert.Equal(t, 2, bucket.EntryCount)
	for _, c := range analytics.AllCategories {
		assert.Equal(t, 2*single[0].Count(c), bucket.Count(c), "count %s", c)
		assert.InDelta(t, single[0].Rate(c), bucket.Rate(c), 1e-9, "rate %s", c)
	}
	assert.Greater(t, bucket.Count(analytics.CategoryNegative), 0)
}

func TestAggregate_SkipsUndatedAndSorts(t *testing.T) {
	entries := []diary.Entry{
		dated(2024, time.May, 2, "b"),
		{Content: "no date"},
		dated(2023, time.December, 31, "a"),
		dated(2024, time.May, 1, "c"),
	}

	days, err := New(nil).Aggregate(entries, diary.GranularityDay)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"2023-12-31", "2024-05-01", "2024-05-02"},
		[]string{days[0].Period, days[1].Period, days[2].Period})

	years, err := New(nil).Aggregate(entries, diary.GranularityYear)
	require.NoError(t, err)
	require.Len(t, years, 2)
	assert.Equal(t, "2023", years[0].Period)
	assert.Equal(t, 2, years[1].EntryCount)
}

func TestAggregate_SparseTimeline(t *testing.T) {
	entries := []diary.Entry{
		dated(2024, time.January, 5, "x"),
		dated(2024, time.April, 5, "y"),
	}
	months, err := New(nil).Aggregate(entries, diary.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].Period)
	assert.Equal(t, "2024-04", months[1].Period)
}

func TestAggregate_UnknownGranularity(t *testing.T) {
	_, err := New(nil).Aggregate(nil, diary.Granularity("week"))
	assert.Error(t, err)
}

func TestAggregateContext_Cancelled(t *testing.T) {
	entries := make([]diary.Entry, 10)
	for i := range entries {
		entries[i] = dated(2024, time.January, i+1, "x")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).WithChunkSize(2).AggregateContext(ctx, entries, diary.GranularityDay)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroupTexts(t *testing.T) {
	entries := []diary.Entry{
		dated(2024, time.January, 5, "x"),
		dated(2024, time.January, 5, "y"),
		{Content: "z"},
	}
	got, err := GroupTexts(entries, diary.GranularityDay)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"2024-01-05": {"x", "y"}}, got)
}
