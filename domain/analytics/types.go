package analytics

import (
	"time"

	"diarylens/domain/core"
	"diarylens/domain/diary"
)

// RawPeriodStats is the scan of every entry sharing one period key.
// Computed fresh on each run and never persisted.
type RawPeriodStats struct {
	Period      string            `json:"period"`
	Granularity diary.Granularity `json:"granularity"`
	EntryCount  int               `json:"entry_count"`
	TextStats
}

// MonthlyDeepAnalysis is one month of the derived monthly series.
type MonthlyDeepAnalysis struct {
	Month             string               `json:"month"`
	EntryCount        int                  `json:"entry_count"`
	Stats             TextStats            `json:"stats"`
	Rates             map[Category]float64 `json:"rates"`
	NegativeRatio     float64              `json:"negative_ratio"`
	PositiveRatio     float64              `json:"positive_ratio"`
	DepthRatio        float64              `json:"depth_ratio"`
	AvgSentenceLength float64              `json:"avg_sentence_length"`
	QuestionRate      float64              `json:"question_rate"`
	ExclamationRate   float64              `json:"exclamation_rate"`

	// Trailing means of NegativeRatio; nil until enough months exist.
	MovingAvg3 *float64 `json:"moving_avg_3,omitempty"`
	MovingAvg6 *float64 `json:"moving_avg_6,omitempty"`

	// Mean NegativeRatio of the same calendar month across all years; nil
	// when the calendar month occurs only once.
	SeasonalBaseline  *float64 `json:"seasonal_baseline,omitempty"`
	SeasonalDeviation *float64 `json:"seasonal_deviation,omitempty"`
}

// EmotionAnalysisDaily is one day of the derived daily series.
type EmotionAnalysisDaily struct {
	Date                string               `json:"date"`
	EntryCount          int                  `json:"entry_count"`
	Stats               TextStats            `json:"stats"`
	Rates               map[Category]float64 `json:"rates"`
	NegativeRatio       float64              `json:"negative_ratio"`
	PositiveRatio       float64              `json:"positive_ratio"`
	NegativeRate        float64              `json:"negative_rate"`
	PositiveRate        float64              `json:"positive_rate"`
	PhysicalSymptomRate float64              `json:"physical_symptom_rate"`
	MovingAvg7          *float64             `json:"moving_avg_7,omitempty"`
}

// ElevationPoint is one step of the cumulative elevation index.
type ElevationPoint struct {
	Period        string            `json:"period"`
	Granularity   diary.Granularity `json:"granularity"`
	PositiveRatio float64           `json:"positive_ratio"`
	NegativeRatio float64           `json:"negative_ratio"`
	Climb         float64           `json:"climb"`
	Elevation     float64           `json:"elevation"`
}

// StabilityIndex is the year-level composite score in [0,100].
type StabilityIndex struct {
	Year          string  `json:"year"`
	MonthCount    int     `json:"month_count"`
	PositiveRatio float64 `json:"positive_ratio"`
	Volatility    float64 `json:"volatility"`
	SelfDenialAvg float64 `json:"self_denial_avg"`
	Score         float64 `json:"score"`
}

// TrendShiftType classifies a detected interval.
type TrendShiftType string

const (
	ShiftDeterioration   TrendShiftType = "deterioration"
	ShiftRecovery        TrendShiftType = "recovery"
	ShiftPlateau         TrendShiftType = "plateau"
	ShiftVocabularyShift TrendShiftType = "vocabulary_shift"
)

// MetricSnapshot captures the month metrics at one edge of a shift.
type MetricSnapshot struct {
	Month             string  `json:"month"`
	NegativeRatio     float64 `json:"negative_ratio"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	DepthRatio        float64 `json:"depth_ratio"`
}

// TrendShift is a detected interval [StartMonth, EndMonth]. Type is fixed at
// detection.
type TrendShift struct {
	Type       TrendShiftType `json:"type"`
	StartMonth string         `json:"start_month"`
	EndMonth   string         `json:"end_month"`
	// Magnitude is the absolute change in standard-deviation units of the
	// series that triggered the classification.
	Magnitude float64 `json:"magnitude"`
	// Delta is the signed negative-ratio change across the interval.
	Delta  float64        `json:"delta"`
	Before MetricSnapshot `json:"before"`
	After  MetricSnapshot `json:"after"`
}

// Season is a meteorological season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// AllSeasons in calendar order starting with spring.
var AllSeasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// SeasonOf maps every calendar month to exactly one season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// SeasonalCrossStats aggregates all months of one season across all years.
type SeasonalCrossStats struct {
	Season            Season               `json:"season"`
	MonthCount        int                  `json:"month_count"`
	EntryCount        int                  `json:"entry_count"`
	TotalChars        int                  `json:"total_chars"`
	MeanRates         map[Category]float64 `json:"mean_rates"`
	MeanNegativeRatio float64              `json:"mean_negative_ratio"`

	// Pooled negative hits per 1000 chars inside the season and across the
	// other three seasons.
	SeasonNegativeRate float64 `json:"season_negative_rate"`
	PooledOtherRate    float64 `json:"pooled_other_rate"`
	ChiSquare          float64 `json:"chi_square"`
	PValue             float64 `json:"p_value"`
	// ZScore is the signed two-proportion statistic of the same comparison;
	// positive when the season is more negative than the rest of the year.
	ZScore      float64 `json:"z_score"`
	Significant bool    `json:"significant"`
}

// VocabularyDepth is the light/deep negative vocabulary split for a period.
type VocabularyDepth struct {
	Period       string  `json:"period"`
	LightCount   int     `json:"light_count"`
	DeepCount    int     `json:"deep_count"`
	DepthRatio   float64 `json:"depth_ratio"`
	NegativeRate float64 `json:"negative_rate"`
}

// DepthLabel is the qualitative reading of two VocabularyDepth periods.
type DepthLabel string

const (
	DepthFrequencyDownDepthUp   DepthLabel = "frequency_down_depth_up"
	DepthFrequencyDownDepthDown DepthLabel = "frequency_down_depth_down"
	DepthFrequencyUpDepthUp     DepthLabel = "frequency_up_depth_up"
	DepthStable                 DepthLabel = "stable"
	DepthOther                  DepthLabel = "other"
)

// DepthInterpretation carries its label together with the ratios it was
// derived from.
type DepthInterpretation struct {
	Label          DepthLabel      `json:"label"`
	Earlier        VocabularyDepth `json:"earlier"`
	Later          VocabularyDepth `json:"later"`
	FrequencyDelta float64         `json:"frequency_delta"`
	DepthDelta     float64         `json:"depth_delta"`
	Description    string          `json:"description"`
}

// FirstPersonLabel is the reading of first-person vs other-person trajectories.
type FirstPersonLabel string

const (
	FirstPersonRolePersona            FirstPersonLabel = "role_persona"
	FirstPersonOutwardAdaptation      FirstPersonLabel = "outward_adaptation"
	FirstPersonSelfDisclosureDecrease FirstPersonLabel = "self_disclosure_decrease"
	FirstPersonGenuineGrowth          FirstPersonLabel = "genuine_growth"
	FirstPersonNoSignificantShift     FirstPersonLabel = "no_significant_shift"
	FirstPersonInsufficientData       FirstPersonLabel = "insufficient_data"
)

// FirstPersonShiftInterpretation carries its label with the deltas behind it.
type FirstPersonShiftInterpretation struct {
	Label              FirstPersonLabel `json:"label"`
	Periods            int              `json:"periods"`
	FirstPersonDelta   float64          `json:"first_person_delta"`
	OtherPersonDelta   float64          `json:"other_person_delta"`
	RoleDelta          float64          `json:"role_delta"`
	NegativeRatioDelta float64          `json:"negative_ratio_delta"`
	Evidence           []string         `json:"evidence"`
}

// Spike is a day whose negative rate exceeded mean + k·stddev.
type Spike struct {
	Date         string  `json:"date"`
	NegativeRate float64 `json:"negative_rate"`
	Threshold    float64 `json:"threshold"`
}

// PredictiveIndicator is a term that tends to appear before spikes.
type PredictiveIndicator struct {
	Term          string  `json:"term"`
	SpikeHits     int     `json:"spike_hits"`
	SpikeCoverage float64 `json:"spike_coverage"`
	BaselineShare float64 `json:"baseline_share"`
	MeanLeadDays  float64 `json:"mean_lead_days"`
	Correlation   float64 `json:"correlation"`
}

// SymptomCorrelation is the correlation between physical-symptom rate on a
// day and negative rate LagDays later.
type SymptomCorrelation struct {
	LagDays     int     `json:"lag_days"`
	SampleSize  int     `json:"sample_size"`
	Correlation float64 `json:"correlation"`
	PValue      float64 `json:"p_value"`
}

// PredictiveReport bundles the predictive signals.
type PredictiveReport struct {
	Spikes              []Spike               `json:"spikes"`
	Indicators          []PredictiveIndicator `json:"indicators"`
	SymptomCorrelations []SymptomCorrelation  `json:"symptom_correlations"`
}

// VocabularyDepthReport is the per-year depth table with the reading of its
// first and last year. Interpretation is nil with fewer than two years.
type VocabularyDepthReport struct {
	Periods        []VocabularyDepth    `json:"periods"`
	Interpretation *DepthInterpretation `json:"interpretation,omitempty"`
}

// Overview is every analysis product computed over one corpus snapshot.
type Overview struct {
	GeneratedAt      time.Time                      `json:"generated_at"`
	EntryCount       int                            `json:"entry_count"`
	DatedEntryCount  int                            `json:"dated_entry_count"`
	Monthly          []MonthlyDeepAnalysis          `json:"monthly"`
	Daily            []EmotionAnalysisDaily         `json:"daily"`
	ElevationMonthly []ElevationPoint               `json:"elevation_monthly"`
	ElevationDaily   []ElevationPoint               `json:"elevation_daily"`
	Stability        []StabilityIndex               `json:"stability"`
	OverallStability *StabilityIndex                `json:"overall_stability,omitempty"`
	TrendShifts      []TrendShift                   `json:"trend_shifts"`
	Seasonal         []SeasonalCrossStats           `json:"seasonal"`
	VocabularyDepth  VocabularyDepthReport          `json:"vocabulary_depth"`
	FirstPerson      FirstPersonShiftInterpretation `json:"first_person"`
	Predictive       PredictiveReport               `json:"predictive"`
}

// AnalysisType keys narrative cache and log rows.
type AnalysisType string

const (
	AnalysisOverview    AnalysisType = "overview"
	AnalysisTrendShifts AnalysisType = "trend_shifts"
	AnalysisSeasonal    AnalysisType = "seasonal"
	AnalysisFirstPerson AnalysisType = "first_person"
	AnalysisPredictive  AnalysisType = "predictive"
)

// AICacheEntry is the latest narrative produced for an analysis type.
type AICacheEntry struct {
	AnalysisType AnalysisType `json:"analysis_type" db:"analysis_type"`
	Result       string       `json:"result" db:"result"`
	InputHash    core.Hash    `json:"input_hash" db:"input_hash"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
	Stale        bool         `json:"stale" db:"stale"`
}

// AILogEntry records one narrative generation attempt.
type AILogEntry struct {
	ID           core.LogID   `json:"id" db:"id"`
	AnalysisType AnalysisType `json:"analysis_type" db:"analysis_type"`
	Prompt       string       `json:"prompt" db:"prompt"`
	Result       string       `json:"result" db:"result"`
	Error        string       `json:"error,omitempty" db:"error"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
