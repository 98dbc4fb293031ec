// Package metrics derives smoothed and composite series from raw period
// statistics.
package metrics

// StabilityWeights are the tunable coefficients of the stability score.
// Only monotonicity and the [0,100] clamp are contractual.
type StabilityWeights struct {
	Positive      float64 `json:"positive"`
	Volatility    float64 `json:"volatility"`
	SelfDenial    float64 `json:"self_denial"`
	VolatilityCap float64 `json:"volatility_cap"`  // volatility at which its term reaches 0
	SelfDenialCap float64 `json:"self_denial_cap"` // self-denial rate at which its term reaches 0
}

// DefaultStabilityWeights returns the shipped coefficients.
func DefaultStabilityWeights() StabilityWeights {
	return StabilityWeights{
		Positive:      0.40,
		Volatility:    0.35,
		SelfDenial:    0.25,
		VolatilityCap: 0.5,
		SelfDenialCap: 5.0,
	}
}

// Config controls the derived-series windows.
type Config struct {
	ShortWindow int // months
	LongWindow  int // months
	DailyWindow int // days
	ClimbScale  float64
	Stability   StabilityWeights
}

// DefaultConfig returns 3/6-month and 7-day windows.
func DefaultConfig() Config {
	return Config{
		ShortWindow: 3,
		LongWindow:  6,
		DailyWindow: 7,
		ClimbScale:  100,
		Stability:   DefaultStabilityWeights(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ShortWindow <= 0 {
		c.ShortWindow = d.ShortWindow
	}
	if c.LongWindow <= 0 {
		c.LongWindow = d.LongWindow
	}
	if c.DailyWindow <= 0 {
		c.DailyWindow = d.DailyWindow
	}
	if c.ClimbScale <= 0 {
		c.ClimbScale = d.ClimbScale
	}
	if c.Stability == (StabilityWeights{}) {
		c.Stability = d.Stability
	}
	if c.Stability.VolatilityCap <= 0 {
		c.Stability.VolatilityCap = d.Stability.VolatilityCap
	}
	if c.Stability.SelfDenialCap <= 0 {
		c.Stability.SelfDenialCap = d.Stability.SelfDenialCap
	}
	return c
}
