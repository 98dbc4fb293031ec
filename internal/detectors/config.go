// Package detectors finds patterns in the derived monthly and daily series:
// trend shifts, seasonal differences, vocabulary depth, first-person shifts
// and predictive signals.
package detectors

// TrendShiftConfig tunes trend-shift detection. Thresholds are in
// standard-deviation units of the whole series.
type TrendShiftConfig struct {
	Threshold           float64 `json:"threshold"`
	FlatEpsilon         float64 `json:"flat_epsilon"`
	VocabularyThreshold float64 `json:"vocabulary_threshold"`
	PlateauMinMonths    int     `json:"plateau_min_months"`
	MinMonths           int     `json:"min_months"`
	// Window is the length in months of the trailing mean the detector
	// slides across the series; 1 compares raw consecutive months.
	Window int `json:"window"`
}

// SeasonalConfig tunes the seasonal significance test.
type SeasonalConfig struct {
	Alpha float64 `json:"alpha"`
}

// DepthConfig sets the dead bands of the depth interpretation.
type DepthConfig struct {
	RateTolerance  float64 `json:"rate_tolerance"`  // negative hits per 1000 chars
	DepthTolerance float64 `json:"depth_tolerance"` // depth ratio
}

// FirstPersonConfig sets the minimum sample and dead bands of the
// first-person interpretation.
type FirstPersonConfig struct {
	MinPeriods     int     `json:"min_periods"`
	RateTolerance  float64 `json:"rate_tolerance"`
	RatioTolerance float64 `json:"ratio_tolerance"`
}

// PredictiveConfig tunes spike detection, precursor terms and the lagged
// symptom correlation.
type PredictiveConfig struct {
	SpikeK           float64 `json:"spike_k"`
	MinDays          int     `json:"min_days"`
	LookbackDays     int     `json:"lookback_days"`
	NgramSize        int     `json:"ngram_size"`
	MinSpikes        int     `json:"min_spikes"`
	BaselineMaxShare float64 `json:"baseline_max_share"`
	MaxIndicators    int     `json:"max_indicators"`
	MaxLagDays       int     `json:"max_lag_days"`
	MinSamples       int     `json:"min_samples"`
	MinCorrelation   float64 `json:"min_correlation"`
}

// Config groups every detector's settings.
type Config struct {
	TrendShift  TrendShiftConfig  `json:"trend_shift"`
	Seasonal    SeasonalConfig    `json:"seasonal"`
	Depth       DepthConfig       `json:"depth"`
	FirstPerson FirstPersonConfig `json:"first_person"`
	Predictive  PredictiveConfig  `json:"predictive"`
}

// DefaultConfig returns the shipped thresholds.
func DefaultConfig() Config {
	return Config{
		TrendShift: TrendShiftConfig{
			Threshold:           1.0,
			FlatEpsilon:         0.1,
			VocabularyThreshold: 1.0,
			PlateauMinMonths:    6,
			MinMonths:           4,
			Window:              3,
		},
		Seasonal: SeasonalConfig{Alpha: 0.05},
		Depth: DepthConfig{
			RateTolerance:  0.5,
			DepthTolerance: 0.05,
		},
		FirstPerson: FirstPersonConfig{
			MinPeriods:     3,
			RateTolerance:  0.5,
			RatioTolerance: 0.05,
		},
		Predictive: PredictiveConfig{
			SpikeK:           2.0,
			MinDays:          14,
			LookbackDays:     7,
			NgramSize:        2,
			MinSpikes:        2,
			BaselineMaxShare: 0.1,
			MaxIndicators:    20,
			MaxLagDays:       14,
			MinSamples:       10,
			MinCorrelation:   0.3,
		},
	}
}
