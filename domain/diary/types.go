package diary

import (
	"fmt"
	"strings"
	"time"

	"diarylens/domain/core"
)

// Granularity selects the period bucket used by aggregation.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Layout returns the period key layout for the granularity.
func (g Granularity) Layout() (string, error) {
	switch g {
	case GranularityDay:
		return core.DayLayout, nil
	case GranularityMonth:
		return core.MonthLayout, nil
	case GranularityYear:
		return core.YearLayout, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownGranularity, string(g))
	}
}

// ParseGranularity accepts the lower-case names used in config and CLI flags.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if _, err := g.Layout(); err != nil {
		return "", err
	}
	return g, nil
}

// Comment is a future-facing note attached to an entry after import.
type Comment struct {
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Entry is one imported diary entry. Content and Date are fixed at import;
// only Comments and Favorite change afterwards.
type Entry struct {
	ID        core.EntryID `json:"id"`
	Date      *time.Time   `json:"date,omitempty"`
	Content   string       `json:"content"`
	Source    string       `json:"source"`
	CreatedAt time.Time    `json:"created_at"`
	Comments  []Comment    `json:"comments,omitempty"`
	Favorite  bool         `json:"favorite"`
}

// Dated reports whether the entry can take part in period analyses.
func (e Entry) Dated() bool {
	return e.Date != nil && !e.Date.IsZero()
}

// PeriodKey returns the entry's period key at granularity g. ok is false for
// undated entries.
func (e Entry) PeriodKey(g Granularity) (key string, ok bool, err error) {
	if !e.Dated() {
		return "", false, nil
	}
	key, err = PeriodKey(*e.Date, g)
	if err != nil {
		return "", false, err
	}
	return key, true, nil
}

// PeriodKey formats t as YYYY-MM-DD, YYYY-MM or YYYY.
func PeriodKey(t time.Time, g Granularity) (string, error) {
	layout, err := g.Layout()
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Corpus is a read-only snapshot of entries handed to the analytics engine.
type Corpus []Entry

// Dated returns only the entries that carry a date, in their original order.
func (c Corpus) Dated() Corpus {
	out := make(Corpus, 0, len(c))
	for _, e := range c {
		if e.Dated() {
			out = append(out, e)
		}
	}
	return out
}
