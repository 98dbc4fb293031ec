package metrics

import (
	"time"

	"diarylens/domain/core"

	"github.com/montanaflynn/stats"
)

// MovingAverage returns the trailing mean over window values ending at each
// index. Indexes with fewer than window values of history are nil; partial
// windows are never averaged.
func MovingAverage(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		mean, err := stats.Mean(values[i-window+1 : i+1])
		if err != nil {
			continue
		}
		m := mean
		out[i] = &m
	}
	return out
}

// SeasonalBaselines computes, for each month key, the mean value of the same
// calendar month across all years, and the deviation of the value from that
// baseline. A calendar month seen only once has nil baseline and deviation.
func SeasonalBaselines(monthKeys []string, values []float64) (baselines, deviations []*float64, err error) {
	byCalendarMonth := make(map[time.Month][]float64)
	calendar := make([]time.Month, len(monthKeys))
	for i, key := range monthKeys {
		t, err := core.ParseMonthKey(key)
		if err != nil {
			return nil, nil, err
		}
		calendar[i] = t.Month()
		byCalendarMonth[t.Month()] = append(byCalendarMonth[t.Month()], values[i])
	}

	means := make(map[time.Month]float64, len(byCalendarMonth))
	for m, vals := range byCalendarMonth {
		if len(vals) < 2 {
			continue
		}
		mean, err := stats.Mean(vals)
		if err != nil {
			continue
		}
		means[m] = mean
	}

	baselines = make([]*float64, len(monthKeys))
	deviations = make([]*float64, len(monthKeys))
	for i, m := range calendar {
		mean, ok := means[m]
		if !ok {
			continue
		}
		base := mean
		dev := values[i] - mean
		baselines[i] = &base
		deviations[i] = &dev
	}
	return baselines, deviations, nil
}
