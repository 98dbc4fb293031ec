// Package scanner counts lexicon hits and sentence structure in a block of text.
package scanner

import (
	"strings"
	"unicode/utf8"

	"diarylens/domain/analytics"
	"diarylens/internal/lexicon"
)

// Scanner is safe for concurrent use; it holds only the immutable trigger lists.
type Scanner struct {
	categories []analytics.Category
	triggers   map[analytics.Category][]string
}

// New creates a scanner over store. A nil store uses lexicon.Default().
func New(store *lexicon.Store) *Scanner {
	if store == nil {
		store = lexicon.Default()
	}
	s := &Scanner{
		categories: store.Categories(),
		triggers:   make(map[analytics.Category][]string),
	}
	for _, c := range s.categories {
		s.triggers[c] = store.Words(c)
	}
	return s
}

// Scan counts every category independently and segments text into sentences.
// Empty text yields zero counts and zero rates.
func (s *Scanner) Scan(text string) analytics.TextStats {
	stats := analytics.TextStats{
		TotalChars: utf8.RuneCountInString(text),
		Counts:     make(map[analytics.Category]int, len(analytics.AllCategories)),
	}
	for _, c := range analytics.AllCategories {
		stats.Counts[c] = 0
	}
	if text == "" {
		return stats
	}

	for _, c := range s.categories {
		stats.Counts[c] = CountTriggers(text, s.triggers[c])
	}

	for _, sent := range SplitSentences(text) {
		stats.SentenceCount++
		stats.SentenceLengthSum += utf8.RuneCountInString(sent.Body)
		if sent.IsQuestion() {
			stats.QuestionCount++
		}
		if sent.IsExclamation() {
			stats.ExclamationCount++
		}
	}
	return stats
}

// CountTriggers sums non-overlapping occurrences of each trigger; every trigger
// is a separate pass over text.
func CountTriggers(text string, triggers []string) int {
	n := 0
	for _, w := range triggers {
		n += strings.Count(text, w)
	}
	return n
}
