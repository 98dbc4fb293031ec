package ports

import (
	"context"

	"diarylens/domain/analytics"
)

// AICacheRepository keeps the latest narrative per analysis type.
type AICacheRepository interface {
	// Get returns core.ErrCacheMiss when nothing is cached for analysisType
	Get(ctx context.Context, analysisType analytics.AnalysisType) (*analytics.AICacheEntry, error)

	// Put replaces the cached entry for entry.AnalysisType
	Put(ctx context.Context, entry *analytics.AICacheEntry) error

	// MarkStale flags the cached entry without removing it
	MarkStale(ctx context.Context, analysisType analytics.AnalysisType) error
}

// AILogRepository records every generation attempt, successful or not.
type AILogRepository interface {
	Record(ctx context.Context, entry *analytics.AILogEntry) error

	// ListRecent returns the newest entries first; an empty analysisType
	// matches all types
	ListRecent(ctx context.Context, analysisType analytics.AnalysisType, limit int) ([]analytics.AILogEntry, error)
}
