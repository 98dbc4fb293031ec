package postgres

import (
	"context"
	"database/sql"
	"errors"

	"diarylens/domain/analytics"
	"diarylens/domain/core"
	"diarylens/ports"

	"github.com/jmoiron/sqlx"
)

// AICacheRepositoryImpl implements AICacheRepository for PostgreSQL
type AICacheRepositoryImpl struct {
	db *sqlx.DB
}

// NewAICacheRepository creates a new PostgreSQL narrative cache
func NewAICacheRepository(db *sqlx.DB) ports.AICacheRepository {
	return &AICacheRepositoryImpl{db: db}
}

// Get returns the cached narrative for analysisType
func (r *AICacheRepositoryImpl) Get(ctx context.Context, analysisType analytics.AnalysisType) (*analytics.AICacheEntry, error) {
	var entry analytics.AICacheEntry
	err := r.db.GetContext(ctx, &entry, `
		SELECT analysis_type, result, input_hash, updated_at, stale
		FROM ai_cache
		WHERE analysis_type = $1
	`, analysisType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put upserts the narrative for entry.AnalysisType
func (r *AICacheRepositoryImpl) Put(ctx context.Context, entry *analytics.AICacheEntry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO ai_cache (analysis_type, result, input_hash, updated_at, stale)
		VALUES (:analysis_type, :result, :input_hash, :updated_at, :stale)
		ON CONFLICT (analysis_type) DO UPDATE SET
			result = EXCLUDED.result,
			input_hash = EXCLUDED.input_hash,
			updated_at = EXCLUDED.updated_at,
			stale = EXCLUDED.stale
	`, entry)
	return err
}

// MarkStale flags the cached narrative; a missing row is a cache miss
func (r *AICacheRepositoryImpl) MarkStale(ctx context.Context, analysisType analytics.AnalysisType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ai_cache SET stale = true WHERE analysis_type = $1
	`, analysisType)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrCacheMiss
	}
	return nil
}

// AILogRepositoryImpl implements AILogRepository for PostgreSQL
type AILogRepositoryImpl struct {
	db *sqlx.DB
}

// NewAILogRepository creates a new PostgreSQL narrative log
func NewAILogRepository(db *sqlx.DB) ports.AILogRepository {
	return &AILogRepositoryImpl{db: db}
}

// Record inserts one generation attempt
func (r *AILogRepositoryImpl) Record(ctx context.Context, entry *analytics.AILogEntry) error {
	if entry.ID == "" {
		entry.ID = core.NewLogID()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO ai_logs (id, analysis_type, prompt, result, error, created_at)
		VALUES (:id, :analysis_type, :prompt, :result, :error, :created_at)
	`, entry)
	return err
}

// ListRecent returns the newest log entries first
func (r *AILogRepositoryImpl) ListRecent(ctx context.Context, analysisType analytics.AnalysisType, limit int) ([]analytics.AILogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []analytics.AILogEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, analysis_type, prompt, result, error, created_at
		FROM ai_logs
		WHERE $1 = '' OR analysis_type = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, string(analysisType), limit)
	return entries, err
}
