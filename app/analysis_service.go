package app

import (
	"context"
	"time"

	"diarylens/domain/analytics"
	"diarylens/domain/diary"
	"diarylens/internal"
	"diarylens/internal/aggregate"
	"diarylens/internal/detectors"
	"diarylens/internal/errors"
	"diarylens/internal/lexicon"
	"diarylens/internal/metrics"
	"diarylens/internal/scanner"
	"diarylens/ports"

	"golang.org/x/sync/errgroup"
)

// AnalysisOptions configures the analysis pipeline. Zero values take the
// package defaults.
type AnalysisOptions struct {
	Lexicon   *lexicon.Store
	ChunkSize int
	Metrics   metrics.Config
	Detectors detectors.Config
}

// AnalysisService computes every analysis product from an entry snapshot
// and narrates results through the text generator.
type AnalysisService struct {
	aggregator  *aggregate.Aggregator
	engine      *metrics.Engine
	trend       *detectors.TrendShiftDetector
	seasonal    *detectors.SeasonalAnalyzer
	depth       *detectors.DepthAnalyzer
	firstPerson *detectors.FirstPersonAnalyzer
	predictive  *detectors.PredictiveDetector

	generator ports.TextGenerator
	cache     ports.AICacheRepository
	logs      ports.AILogRepository

	logger *internal.Logger
	now    func() time.Time
}

// NewAnalysisService creates the façade. generator may be nil, in which case
// Narrate fails with CONFIG_INVALID; cache and logs are required for
// narration only.
func NewAnalysisService(opts AnalysisOptions, generator ports.TextGenerator, cache ports.AICacheRepository, logs ports.AILogRepository) *AnalysisService {
	d := opts.Detectors
	return &AnalysisService{
		aggregator:  aggregate.New(scanner.New(opts.Lexicon)).WithChunkSize(opts.ChunkSize),
		engine:      metrics.NewEngine(opts.Metrics),
		trend:       detectors.NewTrendShiftDetector(d.TrendShift),
		seasonal:    detectors.NewSeasonalAnalyzer(d.Seasonal),
		depth:       detectors.NewDepthAnalyzer(d.Depth),
		firstPerson: detectors.NewFirstPersonAnalyzer(d.FirstPerson),
		predictive:  detectors.NewPredictiveDetector(d.Predictive),
		generator:   generator,
		cache:       cache,
		logs:        logs,
		logger:      internal.DefaultLogger.WithComponent("analysis"),
		now:         time.Now,
	}
}

func (s *AnalysisService) aggregate(ctx context.Context, entries []diary.Entry, g diary.Granularity) ([]analytics.RawPeriodStats, error) {
	raw, err := s.aggregator.AggregateContext(ctx, entries, g)
	if err != nil {
		return nil, errors.Wrapf(err, "aggregate by %s", g)
	}
	return raw, nil
}

// Monthly returns the monthly deep-analysis series.
func (s *AnalysisService) Monthly(ctx context.Context, entries []diary.Entry) ([]analytics.MonthlyDeepAnalysis, error) {
	raw, err := s.aggregate(ctx, entries, diary.GranularityMonth)
	if err != nil {
		return nil, err
	}
	monthly, err := s.engine.BuildMonthly(raw)
	if err != nil {
		return nil, errors.Wrap(err, "build monthly series")
	}
	return monthly, nil
}

// Daily returns the daily emotion series.
func (s *AnalysisService) Daily(ctx context.Context, entries []diary.Entry) ([]analytics.EmotionAnalysisDaily, error) {
	raw, err := s.aggregate(ctx, entries, diary.GranularityDay)
	if err != nil {
		return nil, err
	}
	return s.engine.BuildDaily(raw), nil
}

// ElevationMonthly returns the cumulative elevation index by month.
func (s *AnalysisService) ElevationMonthly(ctx context.Context, entries []diary.Entry) ([]analytics.ElevationPoint, error) {
	raw, err := s.aggregate(ctx, entries, diary.GranularityMonth)
	if err != nil {
		return nil, err
	}
	return s.engine.Elevation(raw), nil
}

// ElevationDaily returns the cumulative elevation index by day.
func (s *AnalysisService) ElevationDaily(ctx context.Context, entries []diary.Entry) ([]analytics.ElevationPoint, error) {
	raw, err := s.aggregate(ctx, entries, diary.GranularityDay)
	if err != nil {
		return nil, err
	}
	return s.engine.Elevation(raw), nil
}

// StabilityByYear scores every calendar year.
func (s *AnalysisService) StabilityByYear(ctx context.Context, entries []diary.Entry) ([]analytics.StabilityIndex, error) {
	monthly, err := s.Monthly(ctx, entries)
	if err != nil {
		return nil, err
	}
	return s.engine.StabilityByYear(monthly), nil
}

// OverallStability scores the whole corpus; nil without dated entries.
func (s *AnalysisService) OverallStability(ctx context.Context, entries []diary.Entry) (*analytics.StabilityIndex, error) {
	monthly, err := s.Monthly(ctx, entries)
	if err != nil {
		return nil, err
	}
	return s.engine.OverallStability(monthly), nil
}

// TrendShifts detects turning points in the monthly negative ratio.
func (s *AnalysisService) TrendShifts(ctx context.Context, entries []diary.Entry) ([]analytics.TrendShift, error) {
	monthly, err := s.Monthly(ctx, entries)
	if err != nil {
		return nil, err
	}
	return s.trend.Detect(monthly), nil
}

// Seasonal cross-tabulates months by season.
func (s *AnalysisService) Seasonal(ctx context.Context, entries []diary.Entry) ([]analytics.SeasonalCrossStats, error) {
	monthly, err := s.Monthly(ctx, entries)
	if err != nil {
		return nil, err
	}
	rows, err := s.seasonal.Analyze(monthly)
	if err != nil {
		return nil, errors.Wrap(err, "seasonal analysis")
	}
	return rows, nil
}

// VocabularyDepth returns the per-year depth table and the reading of its
// first year against its last.
func (s *AnalysisService) VocabularyDepth(ctx context.Context, entries []diary.Entry) (analytics.VocabularyDepthReport, error) {
	raw, err := s.aggregate(ctx, entries, diary.GranularityYear)
	if err != nil {
		return analytics.VocabularyDepthReport{}, err
	}
	return s.depthReport(raw), nil
}

func (s *AnalysisService) depthReport(yearly []analytics.RawPeriodStats) analytics.VocabularyDepthReport {
	report := analytics.VocabularyDepthReport{Periods: s.depth.Series(yearly)}
	if n := len(report.Periods); n >= 2 {
		in := s.depth.Interpret(report.Periods[0], report.Periods[n-1])
		report.Interpretation = &in
	}
	return report
}

// FirstPersonShift reads the first-person trajectory across years.
func (s *AnalysisService) FirstPersonShift(ctx context.Context, entries []diary.Entry) (analytics.FirstPersonShiftInterpretation, error) {
	raw, err := s.aggregate(ctx, entries, diary.GranularityYear)
	if err != nil {
		return analytics.FirstPersonShiftInterpretation{}, err
	}
	return s.firstPerson.Interpret(raw), nil
}

// Predictive finds spike precursors and symptom correlations in the daily series.
func (s *AnalysisService) Predictive(ctx context.Context, entries []diary.Entry) (analytics.PredictiveReport, error) {
	daily, err := s.Daily(ctx, entries)
	if err != nil {
		return analytics.PredictiveReport{}, err
	}
	texts, err := aggregate.GroupTexts(entries, diary.GranularityDay)
	if err != nil {
		return analytics.PredictiveReport{}, errors.Wrap(err, "group daily texts")
	}
	report, err := s.predictive.Detect(daily, texts)
	if err != nil {
		return analytics.PredictiveReport{}, errors.Wrap(err, "predictive analysis")
	}
	return report, nil
}

// Overview computes every product over one snapshot. Each granularity is
// aggregated once; independent products then run concurrently.
func (s *AnalysisService) Overview(ctx context.Context, entries []diary.Entry) (*analytics.Overview, error) {
	start := s.now()
	o := &analytics.Overview{
		GeneratedAt:     start.UTC(),
		EntryCount:      len(entries),
		DatedEntryCount: len(diary.Corpus(entries).Dated()),
	}

	var (
		monthlyRaw, dailyRaw, yearlyRaw []analytics.RawPeriodStats
		dailyTexts                      map[string][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthlyRaw, err = s.aggregate(gctx, entries, diary.GranularityMonth)
		return err
	})
	g.Go(func() (err error) {
		dailyRaw, err = s.aggregate(gctx, entries, diary.GranularityDay)
		return err
	})
	g.Go(func() (err error) {
		yearlyRaw, err = s.aggregate(gctx, entries, diary.GranularityYear)
		return err
	})
	g.Go(func() (err error) {
		dailyTexts, err = aggregate.GroupTexts(entries, diary.GranularityDay)
		return errors.Wrap(err, "group daily texts")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthly, err := s.engine.BuildMonthly(monthlyRaw)
	if err != nil {
		return nil, errors.Wrap(err, "build monthly series")
	}
	o.Monthly = monthly
	o.Daily = s.engine.BuildDaily(dailyRaw)

	g, _ = errgroup.WithContext(ctx)
	g.Go(func() error {
		o.ElevationMonthly = s.engine.Elevation(monthlyRaw)
		o.ElevationDaily = s.engine.Elevation(dailyRaw)
		return nil
	})
	g.Go(func() error {
		o.Stability = s.engine.StabilityByYear(monthly)
		o.OverallStability = s.engine.OverallStability(monthly)
		return nil
	})
	g.Go(func() error {
		o.TrendShifts = s.trend.Detect(monthly)
		return nil
	})
	g.Go(func() (err error) {
		o.Seasonal, err = s.seasonal.Analyze(monthly)
		return errors.Wrap(err, "seasonal analysis")
	})
	g.Go(func() error {
		o.VocabularyDepth = s.depthReport(yearlyRaw)
		o.FirstPerson = s.firstPerson.Interpret(yearlyRaw)
		return nil
	})
	g.Go(func() (err error) {
		o.Predictive, err = s.predictive.Detect(o.Daily, dailyTexts)
		return errors.Wrap(err, "predictive analysis")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("overview of %d entries (%d months, %d days) in %s",
		o.EntryCount, len(o.Monthly), len(o.Daily), time.Since(start))
	return o, nil
}
