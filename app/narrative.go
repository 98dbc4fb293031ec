package app

import (
	"context"
	"strings"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
	"diarylens/internal/errors"
	"diarylens/internal/report"
)

// Narrate returns a narrative for analysisType over o. A fresh cache entry
// for the same digest is returned without calling the generator. When the
// generator fails, the previous cached narrative is returned marked stale
// together with an EXTERNAL_SERVICE_ERROR; with nothing cached only the
// error is returned. Every generation attempt is logged. An overview without
// dated entries is refused with INSUFFICIENT_DATA before any call is made.
func (s *AnalysisService) Narrate(ctx context.Context, analysisType analytics.AnalysisType, o *analytics.Overview) (*analytics.AICacheEntry, error) {
	if s.generator == nil || s.cache == nil || s.logs == nil {
		return nil, errors.ConfigInvalid("narration requires a text generator, cache and log")
	}

	digest, err := report.BuildDigest(analysisType, o)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if o.DatedEntryCount == 0 {
		return nil, errors.InsufficientData(string(analysisType), 0, 1)
	}
	hash := digest.Hash()

	cached, err := s.cache.Get(ctx, analysisType)
	if err != nil {
		if !core.IsNotFoundError(err) {
			s.logger.Warn("narrative cache read for %s failed: %v", analysisType, err)
		}
		cached = nil
	}
	if cached != nil && !cached.Stale && cached.InputHash == hash {
		s.logger.Debug("narrative cache hit for %s", analysisType)
		return cached, nil
	}

	logEntry := &analytics.AILogEntry{
		ID:           core.NewLogID(),
		AnalysisType: analysisType,
		Prompt:       digest.Prompt,
		CreatedAt:    s.now().UTC(),
	}

	gen, genErr := s.generator.Generate(ctx, digest.Prompt)
	if genErr == nil && (gen == nil || strings.TrimSpace(gen.Content) == "") {
		genErr = errors.InternalError("generator returned an empty narrative")
	}
	if genErr != nil {
		logEntry.Error = genErr.Error()
		s.record(ctx, logEntry)

		appErr := errors.ExternalServiceError("llm", genErr)
		if cached == nil {
			return nil, appErr
		}
		if err := s.cache.MarkStale(ctx, analysisType); err != nil {
			s.logger.Warn("marking %s narrative stale failed: %v", analysisType, err)
		}
		stale := *cached
		stale.Stale = true
		s.logger.Warn("generator failed for %s, serving stale narrative from %s",
			analysisType, stale.UpdatedAt.Format("2006-01-02 15:04"))
		return &stale, appErr
	}

	logEntry.Result = gen.Content
	s.record(ctx, logEntry)

	entry := &analytics.AICacheEntry{
		AnalysisType: analysisType,
		Result:       gen.Content,
		InputHash:    hash,
		UpdatedAt:    logEntry.CreatedAt,
	}
	if err := s.cache.Put(ctx, entry); err != nil {
		return entry, errors.DatabaseError("store narrative", err)
	}
	return entry, nil
}

// NarrativeHistory lists recent generation attempts, newest first.
func (s *AnalysisService) NarrativeHistory(ctx context.Context, analysisType analytics.AnalysisType, limit int) ([]analytics.AILogEntry, error) {
	if s.logs == nil {
		return nil, errors.ConfigInvalid("no narrative log configured")
	}
	entries, err := s.logs.ListRecent(ctx, analysisType, limit)
	if err != nil {
		return nil, errors.DatabaseError("list narrative log", err)
	}
	return entries, nil
}

func (s *AnalysisService) record(ctx context.Context, entry *analytics.AILogEntry) {
	if err := s.logs.Record(ctx, entry); err != nil {
		s.logger.Warn("recording %s generation failed: %v", entry.AnalysisType, err)
	}
}
