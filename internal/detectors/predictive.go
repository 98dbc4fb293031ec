package detectors

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
	"diarylens/internal/distributions"

	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// PredictiveDetector looks for terms that precede negative spikes and for a
// lagged link between physical-symptom mentions and negativity.
type PredictiveDetector struct {
	cfg PredictiveConfig
}

// NewPredictiveDetector creates a detector; zero fields take defaults.
func NewPredictiveDetector(cfg PredictiveConfig) *PredictiveDetector {
	d := DefaultConfig().Predictive
	if cfg.SpikeK <= 0 {
		cfg.SpikeK = d.SpikeK
	}
	if cfg.MinDays <= 0 {
		cfg.MinDays = d.MinDays
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = d.LookbackDays
	}
	if cfg.NgramSize <= 0 {
		cfg.NgramSize = d.NgramSize
	}
	if cfg.MinSpikes <= 0 {
		cfg.MinSpikes = d.MinSpikes
	}
	if cfg.BaselineMaxShare <= 0 {
		cfg.BaselineMaxShare = d.BaselineMaxShare
	}
	if cfg.MaxIndicators <= 0 {
		cfg.MaxIndicators = d.MaxIndicators
	}
	if cfg.MaxLagDays < 0 {
		cfg.MaxLagDays = d.MaxLagDays
	}
	if cfg.MinSamples < 3 {
		cfg.MinSamples = d.MinSamples
	}
	if cfg.MinCorrelation <= 0 {
		cfg.MinCorrelation = d.MinCorrelation
	}
	return &PredictiveDetector{cfg: cfg}
}

type dayRecord struct {
	key   string
	date  time.Time
	terms map[string]struct{}
}

// Detect computes spikes, precursor indicators and symptom correlations.
// texts maps day keys to that day's entry texts; days missing from texts
// contribute no terms.
func (d *PredictiveDetector) Detect(daily []analytics.EmotionAnalysisDaily, texts map[string][]string) (analytics.PredictiveReport, error) {
	report := analytics.PredictiveReport{}

	days := make([]dayRecord, len(daily))
	for i, day := range daily {
		t, err := core.ParseDayKey(day.Date)
		if err != nil {
			return report, err
		}
		days[i] = dayRecord{
			key:   day.Date,
			date:  t,
			terms: Ngrams(strings.Join(texts[day.Date], "\n"), d.cfg.NgramSize),
		}
	}

	report.Spikes = d.Spikes(daily)
	report.Indicators = d.indicators(days, report.Spikes)
	report.SymptomCorrelations = d.SymptomCorrelations(daily)
	return report, nil
}

// Spikes returns days whose negative rate exceeds mean + k·σ of the daily
// series. Fewer than MinDays days or a flat series yields none.
func (d *PredictiveDetector) Spikes(daily []analytics.EmotionAnalysisDaily) []analytics.Spike {
	if len(daily) < d.cfg.MinDays {
		return nil
	}
	rates := make([]float64, len(daily))
	for i, day := range daily {
		rates[i] = day.NegativeRate
	}
	mean, err := stats.Mean(rates)
	if err != nil {
		return nil
	}
	sd := populationStdDev(rates)
	if sd == 0 {
		return nil
	}
	threshold := mean + d.cfg.SpikeK*sd

	var spikes []analytics.Spike
	for _, day := range daily {
		if day.NegativeRate > threshold {
			spikes = append(spikes, analytics.Spike{Date: day.Date, NegativeRate: day.NegativeRate, Threshold: threshold})
		}
	}
	return spikes
}

type candidate struct {
	spikeHits int
	leadSum   float64
}

func (d *PredictiveDetector) indicators(days []dayRecord, spikes []analytics.Spike) []analytics.PredictiveIndicator {
	if len(spikes) < d.cfg.MinSpikes {
		return nil
	}

	lookback := d.cfg.LookbackDays
	spikeDates := make([]time.Time, 0, len(spikes))
	for _, s := range spikes {
		t, err := core.ParseDayKey(s.Date)
		if err == nil {
			spikeDates = append(spikeDates, t)
		}
	}

	// precedesSpike[i]: a spike falls within (day, day+lookback].
	precedesSpike := make([]bool, len(days))
	isSpike := make([]bool, len(days))
	for i, day := range days {
		for _, s := range spikeDates {
			gap := daysBetween(day.date, s)
			if gap == 0 {
				isSpike[i] = true
			}
			if gap >= 1 && gap <= lookback {
				precedesSpike[i] = true
			}
		}
	}

	candidates := make(map[string]*candidate)
	for _, s := range spikeDates {
		// last occurrence of each term in the window before this spike
		lastSeen := make(map[string]int)
		for _, day := range days {
			gap := daysBetween(day.date, s)
			if gap < 1 || gap > lookback {
				continue
			}
			for term := range day.terms {
				if prev, ok := lastSeen[term]; !ok || gap < prev {
					lastSeen[term] = gap
				}
			}
		}
		for term, gap := range lastSeen {
			c := candidates[term]
			if c == nil {
				c = &candidate{}
				candidates[term] = c
			}
			c.spikeHits++
			c.leadSum += float64(gap)
		}
	}

	baselineDays := 0
	baselineHits := make(map[string]int)
	for i, day := range days {
		if precedesSpike[i] || isSpike[i] {
			continue
		}
		baselineDays++
		for term := range day.terms {
			if _, ok := candidates[term]; ok {
				baselineHits[term]++
			}
		}
	}
	if baselineDays == 0 {
		return nil
	}

	y := make([]float64, len(days))
	for i := range days {
		if precedesSpike[i] {
			y[i] = 1
		}
	}

	var out []analytics.PredictiveIndicator
	for term, c := range candidates {
		if c.spikeHits < d.cfg.MinSpikes {
			continue
		}
		share := float64(baselineHits[term]) / float64(baselineDays)
		if share >= d.cfg.BaselineMaxShare {
			continue
		}
		x := make([]float64, len(days))
		for i, day := range days {
			if _, ok := day.terms[term]; ok {
				x[i] = 1
			}
		}
		out = append(out, analytics.PredictiveIndicator{
			Term:          term,
			SpikeHits:     c.spikeHits,
			SpikeCoverage: float64(c.spikeHits) / float64(len(spikeDates)),
			BaselineShare: share,
			MeanLeadDays:  c.leadSum / float64(c.spikeHits),
			Correlation:   pearson(x, y),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Correlation != out[j].Correlation {
			return out[i].Correlation > out[j].Correlation
		}
		if out[i].MeanLeadDays != out[j].MeanLeadDays {
			return out[i].MeanLeadDays > out[j].MeanLeadDays
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > d.cfg.MaxIndicators {
		out = out[:d.cfg.MaxIndicators]
	}
	return out
}

// SymptomCorrelations correlates physical-symptom rate on day t with negative
// rate on day t+lag for lag in [0, MaxLagDays], using only pairs where both
// days have entries. Lags below MinSamples pairs or MinCorrelation are
// dropped.
func (d *PredictiveDetector) SymptomCorrelations(daily []analytics.EmotionAnalysisDaily) []analytics.SymptomCorrelation {
	byDay := make(map[string]analytics.EmotionAnalysisDaily, len(daily))
	for _, day := range daily {
		byDay[day.Date] = day
	}

	var out []analytics.SymptomCorrelation
	for lag := 0; lag <= d.cfg.MaxLagDays; lag++ {
		var xs, ys []float64
		for _, day := range daily {
			t, err := core.ParseDayKey(day.Date)
			if err != nil {
				continue
			}
			later, ok := byDay[t.AddDate(0, 0, lag).Format(core.DayLayout)]
			if !ok {
				continue
			}
			xs = append(xs, day.PhysicalSymptomRate)
			ys = append(ys, later.NegativeRate)
		}
		if len(xs) < d.cfg.MinSamples {
			continue
		}
		r := pearson(xs, ys)
		if r < d.cfg.MinCorrelation {
			continue
		}
		out = append(out, analytics.SymptomCorrelation{
			LagDays:     lag,
			SampleSize:  len(xs),
			Correlation: r,
			PValue:      distributions.CorrelationPValue(r, len(xs)),
		})
	}
	return out
}

// Ngrams returns the distinct n-rune substrings of text made only of letters
// and containing at least one Han or Katakana rune. Hiragana-only runs are
// mostly particles and are skipped.
func Ngrams(text string, n int) map[string]struct{} {
	out := make(map[string]struct{})
	if n <= 0 {
		return out
	}
	runes := []rune(text)
	for i := 0; i+n <= len(runes); i++ {
		g := runes[i : i+n]
		if keepNgram(g) {
			out[string(g)] = struct{}{}
		}
	}
	return out
}

func keepNgram(g []rune) bool {
	anchored := false
	for _, r := range g {
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Katakana, r) {
			anchored = true
		}
	}
	return anchored
}

// pearson is gonum's correlation with NaN (zero variance) mapped to 0.
func pearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	r := gonumstat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
