package analytics

// TextStats holds the raw scan counts for a block of text (or a merged set of
// blocks). Rates are derived on demand so counts stay the single source.
type TextStats struct {
	TotalChars        int              `json:"total_chars"`
	Counts            map[Category]int `json:"counts"`
	SentenceCount     int              `json:"sentence_count"`
	SentenceLengthSum int              `json:"sentence_length_sum"`
	QuestionCount     int              `json:"question_count"`
	ExclamationCount  int              `json:"exclamation_count"`
}

// PerThousand normalizes count to occurrences per 1000 characters; 0 when
// chars is 0.
func PerThousand(count, chars int) float64 {
	if chars <= 0 {
		return 0
	}
	return float64(count) / float64(chars) * 1000
}

// Count returns the raw hit count for c.
func (s TextStats) Count(c Category) int {
	return s.Counts[c]
}

// Rate returns hits of c per 1000 characters.
func (s TextStats) Rate(c Category) float64 {
	return PerThousand(s.Counts[c], s.TotalChars)
}

// Rates returns the per-1000-character rate of every category.
func (s TextStats) Rates() map[Category]float64 {
	out := make(map[Category]float64, len(AllCategories))
	for _, c := range AllCategories {
		out[c] = s.Rate(c)
	}
	return out
}

// AvgSentenceLength is characters per sentence; 0 with no sentences.
func (s TextStats) AvgSentenceLength() float64 {
	if s.SentenceCount == 0 {
		return 0
	}
	return float64(s.SentenceLengthSum) / float64(s.SentenceCount)
}

func (s TextStats) QuestionRate() float64 {
	return PerThousand(s.QuestionCount, s.TotalChars)
}

func (s TextStats) ExclamationRate() float64 {
	return PerThousand(s.ExclamationCount, s.TotalChars)
}

// NegativeRatio is negative / (negative + positive), 0 when neither occurs.
func (s TextStats) NegativeRatio() float64 {
	neg, pos := s.Counts[CategoryNegative], s.Counts[CategoryPositive]
	if neg+pos == 0 {
		return 0
	}
	return float64(neg) / float64(neg+pos)
}

// PositiveRatio is positive / (negative + positive), 0 when neither occurs.
func (s TextStats) PositiveRatio() float64 {
	neg, pos := s.Counts[CategoryNegative], s.Counts[CategoryPositive]
	if neg+pos == 0 {
		return 0
	}
	return float64(pos) / float64(neg+pos)
}

// DepthRatio is deep / (light + deep) negative vocabulary, 0 when neither occurs.
func (s TextStats) DepthRatio() float64 {
	light, deep := s.Counts[CategoryLightNegative], s.Counts[CategoryDeepNegative]
	if light+deep == 0 {
		return 0
	}
	return float64(deep) / float64(light+deep)
}

// Merge returns the sum of s and o. Neither input is modified.
func (s TextStats) Merge(o TextStats) TextStats {
	out := TextStats{
		TotalChars:        s.TotalChars + o.TotalChars,
		Counts:            make(map[Category]int, len(AllCategories)),
		SentenceCount:     s.SentenceCount + o.SentenceCount,
		SentenceLengthSum: s.SentenceLengthSum + o.SentenceLengthSum,
		QuestionCount:     s.QuestionCount + o.QuestionCount,
		ExclamationCount:  s.ExclamationCount + o.ExclamationCount,
	}
	for c, n := range s.Counts {
		out.Counts[c] += n
	}
	for c, n := range o.Counts {
		out.Counts[c] += n
	}
	return out
}
