package detectors

import (
	"fmt"

	"diarylens/domain/analytics"
)

// FirstPersonAnalyzer reads how first-person writing moved relative to
// other people, work/task language and negativity.
type FirstPersonAnalyzer struct {
	cfg FirstPersonConfig
}

// NewFirstPersonAnalyzer creates an analyzer; zero fields take defaults.
func NewFirstPersonAnalyzer(cfg FirstPersonConfig) *FirstPersonAnalyzer {
	d := DefaultConfig().FirstPerson
	if cfg.MinPeriods < 2 {
		cfg.MinPeriods = d.MinPeriods
	}
	if cfg.RateTolerance <= 0 {
		cfg.RateTolerance = d.RateTolerance
	}
	if cfg.RatioTolerance <= 0 {
		cfg.RatioTolerance = d.RatioTolerance
	}
	return &FirstPersonAnalyzer{cfg: cfg}
}

// Interpret compares the mean of the first half of periods with the mean of
// the second half (the middle period of an odd count belongs to neither).
//
// When first-person rate fell, the reading is, in priority order:
// genuine_growth if the negative ratio also fell; role_persona if work/task
// language grew more than other-person mentions; outward_adaptation if
// other-person mentions grew; self_disclosure_decrease otherwise. Without a
// first-person decrease the reading is no_significant_shift.
func (a *FirstPersonAnalyzer) Interpret(periods []analytics.RawPeriodStats) analytics.FirstPersonShiftInterpretation {
	n := len(periods)
	if n < a.cfg.MinPeriods {
		return analytics.FirstPersonShiftInterpretation{
			Label:   analytics.FirstPersonInsufficientData,
			Periods: n,
			Evidence: []string{
				fmt.Sprintf("%d periods available, %d required", n, a.cfg.MinPeriods),
			},
		}
	}

	first, second := periods[:n/2], periods[(n+1)/2:]
	fp := halfDelta(first, second, func(s analytics.TextStats) float64 { return s.Rate(analytics.CategoryFirstPerson) })
	op := halfDelta(first, second, func(s analytics.TextStats) float64 { return s.Rate(analytics.CategoryOtherPerson) })
	role := halfDelta(first, second, func(s analytics.TextStats) float64 {
		return s.Rate(analytics.CategoryWork) + s.Rate(analytics.CategoryTask)
	})
	neg := halfDelta(first, second, func(s analytics.TextStats) float64 { return s.NegativeRatio() })

	fpDown := fp.delta <= -a.cfg.RateTolerance
	opUp := op.delta >= a.cfg.RateTolerance
	roleUp := role.delta >= a.cfg.RateTolerance
	negDown := neg.delta <= -a.cfg.RatioTolerance

	label := analytics.FirstPersonNoSignificantShift
	if fpDown {
		switch {
		case negDown:
			label = analytics.FirstPersonGenuineGrowth
		case roleUp && role.delta >= op.delta:
			label = analytics.FirstPersonRolePersona
		case opUp:
			label = analytics.FirstPersonOutwardAdaptation
		default:
			label = analytics.FirstPersonSelfDisclosureDecrease
		}
	}

	span := fmt.Sprintf("%s..%s vs %s..%s",
		first[0].Period, first[len(first)-1].Period, second[0].Period, second[len(second)-1].Period)
	return analytics.FirstPersonShiftInterpretation{
		Label:              label,
		Periods:            n,
		FirstPersonDelta:   fp.delta,
		OtherPersonDelta:   op.delta,
		RoleDelta:          role.delta,
		NegativeRatioDelta: neg.delta,
		Evidence: []string{
			fmt.Sprintf("first-person rate %.2f → %.2f per 1000 chars (%+.2f), %s", fp.before, fp.after, fp.delta, span),
			fmt.Sprintf("other-person rate %.2f → %.2f per 1000 chars (%+.2f)", op.before, op.after, op.delta),
			fmt.Sprintf("work+task rate %.2f → %.2f per 1000 chars (%+.2f)", role.before, role.after, role.delta),
			fmt.Sprintf("negative ratio %.2f → %.2f (%+.2f)", neg.before, neg.after, neg.delta),
		},
	}
}

type halfChange struct {
	before, after, delta float64
}

func halfDelta(first, second []analytics.RawPeriodStats, metric func(analytics.TextStats) float64) halfChange {
	series := func(ps []analytics.RawPeriodStats) []float64 {
		out := make([]float64, len(ps))
		for i, p := range ps {
			out[i] = metric(p.TextStats)
		}
		return out
	}
	before := meanOrZero(series(first))
	after := meanOrZero(series(second))
	return halfChange{before: before, after: after, delta: after - before}
}
