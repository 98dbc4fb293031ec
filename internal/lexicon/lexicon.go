// Package lexicon holds the static trigger-word lists used by the text scanner.
package lexicon

import (
	"fmt"
	"sort"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
)

// Store maps each category to an ordered list of trigger strings. A Store is
// never mutated after construction; Words hands out copies.
type Store struct {
	words map[analytics.Category][]string
}

// Default returns the built-in lexicon.
func Default() *Store {
	s, err := New(defaultWords)
	if err != nil {
		panic(fmt.Sprintf("lexicon: built-in word lists are invalid: %v", err))
	}
	return s
}

// New builds a store from per-category lists. Categories must be known,
// triggers non-empty, and the light/deep negative lists disjoint.
func New(words map[analytics.Category][]string) (*Store, error) {
	s := &Store{words: make(map[analytics.Category][]string, len(words))}
	for cat, list := range words {
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownCategory, string(cat))
		}
		for i, w := range list {
			if w == "" {
				return nil, fmt.Errorf("lexicon: empty trigger at %s[%d]", cat, i)
			}
		}
		s.words[cat] = append([]string(nil), list...)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the light/deep negative split.
func (s *Store) Validate() error {
	deep := make(map[string]bool, len(s.words[analytics.CategoryDeepNegative]))
	for _, w := range s.words[analytics.CategoryDeepNegative] {
		deep[w] = true
	}
	for _, w := range s.words[analytics.CategoryLightNegative] {
		if deep[w] {
			return fmt.Errorf("lexicon: %q is listed as both light and deep negative", w)
		}
	}
	return nil
}

// Words returns a copy of the triggers for c, nil for an unknown or empty category.
func (s *Store) Words(c analytics.Category) []string {
	list := s.words[c]
	if len(list) == 0 {
		return nil
	}
	return append([]string(nil), list...)
}

// Categories returns the populated categories in analytics.AllCategories order.
func (s *Store) Categories() []analytics.Category {
	out := make([]analytics.Category, 0, len(s.words))
	for _, c := range analytics.AllCategories {
		if len(s.words[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// CategoriesOf lists every category containing w exactly, sorted by name.
func (s *Store) CategoriesOf(w string) []analytics.Category {
	var out []analytics.Category
	for c, list := range s.words {
		for _, candidate := range list {
			if candidate == w {
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
