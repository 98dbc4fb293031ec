package core

import (
	"fmt"
	"time"
)

// Period key layouts for each granularity.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
	YearLayout  = "2006"
)

// ParseMonthKey parses a YYYY-MM key.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	return t, nil
}

// ParseDayKey parses a YYYY-MM-DD key.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(DayLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	return t, nil
}

// CivilDate drops the clock and location, keeping the calendar day as written.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
