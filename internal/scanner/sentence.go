package scanner

import "strings"

// Sentence is one segment of text with the delimiter that closed it (0 at
// end of input).
type Sentence struct {
	Body       string
	Terminator rune
}

func (s Sentence) IsQuestion() bool {
	return s.Terminator == '？' || strings.Contains(s.Body, "?")
}

func (s Sentence) IsExclamation() bool {
	return s.Terminator == '！' || strings.Contains(s.Body, "!")
}

func isDelimiter(r rune) bool {
	switch r {
	case '。', '！', '？', '\n':
		return true
	}
	return false
}

// SplitSentences segments text on 。！？ and newlines. Segments that are empty
// after trimming whitespace are discarded.
func SplitSentences(text string) []Sentence {
	var out []Sentence
	start := 0
	for i, r := range text {
		if !isDelimiter(r) {
			continue
		}
		if body := strings.TrimSpace(text[start:i]); body != "" {
			out = append(out, Sentence{Body: body, Terminator: r})
		}
		start = i + len(string(r))
	}
	if body := strings.TrimSpace(text[start:]); body != "" {
		out = append(out, Sentence{Body: body})
	}
	return out
}
