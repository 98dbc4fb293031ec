// Package aggregate buckets diary entries by day, month or year and scans
// each bucket.
package aggregate

import (
	"context"
	"sort"
	"time"

	"diarylens/domain/analytics"
	"diarylens/domain/diary"
	"diarylens/internal"
	"diarylens/internal/scanner"
)

// DefaultChunkSize is how many entries are scanned between context checks.
const DefaultChunkSize = 256

// Aggregator turns a corpus into per-period raw statistics.
type Aggregator struct {
	scanner   *scanner.Scanner
	chunkSize int
	logger    *internal.Logger
}

// New creates an aggregator. A nil scanner uses the default lexicon.
func New(sc *scanner.Scanner) *Aggregator {
	if sc == nil {
		sc = scanner.New(nil)
	}
	return &Aggregator{
		scanner:   sc,
		chunkSize: DefaultChunkSize,
		logger:    internal.DefaultLogger.WithComponent("aggregate"),
	}
}

// WithChunkSize sets how often AggregateContext checks for cancellation.
func (a *Aggregator) WithChunkSize(n int) *Aggregator {
	if n > 0 {
		a.chunkSize = n
	}
	return a
}

// Scanner exposes the underlying scanner for callers scanning ad-hoc text.
func (a *Aggregator) Scanner() *scanner.Scanner {
	return a.scanner
}

// Aggregate groups entries by period key and scans each group. Undated
// entries are skipped; periods without entries are absent. Results are in
// ascending chronological order.
func (a *Aggregator) Aggregate(entries []diary.Entry, g diary.Granularity) ([]analytics.RawPeriodStats, error) {
	return a.AggregateContext(context.Background(), entries, g)
}

// AggregateContext is Aggregate with a cancellation check every chunk.
func (a *Aggregator) AggregateContext(ctx context.Context, entries []diary.Entry, g diary.Granularity) ([]analytics.RawPeriodStats, error) {
	if _, err := g.Layout(); err != nil {
		return nil, err
	}

	start := time.Now()
	buckets := make(map[string]*analytics.RawPeriodStats)
	skipped := 0

	for i, e := range entries {
		if i > 0 && i%a.chunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		key, ok, err := e.PeriodKey(g)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}

		// Scanning entries separately and summing is concatenation with a
		// sentence boundary between entries.
		scanned := a.scanner.Scan(e.Content)
		b, exists := buckets[key]
		if !exists {
			b = &analytics.RawPeriodStats{
				Period:      key,
				Granularity: g,
				TextStats:   analytics.TextStats{Counts: map[analytics.Category]int{}},
			}
			buckets[key] = b
		}
		b.EntryCount++
		b.TextStats = b.TextStats.Merge(scanned)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Fixed-width numeric keys sort chronologically as strings.
	sort.Strings(keys)

	out := make([]analytics.RawPeriodStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}

	a.logger.Debug("aggregated %d entries into %d %s periods (%d undated skipped) in %s",
		len(entries), len(out), g, skipped, time.Since(start))
	return out, nil
}

// GroupTexts returns each period's entry texts in input order, skipping
// undated entries.
func GroupTexts(entries []diary.Entry, g diary.Granularity) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, e := range entries {
		key, ok, err := e.PeriodKey(g)
		if err != nil {
			return nil, err
		}
		if ok {
			out[key] = append(out[key], e.Content)
		}
	}
	return out, nil
}
