package migration

import (
	"context"

	"diarylens/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Every step is
// idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, step := range r.steps() {
		if _, err := db.ExecContext(ctx, step.sql); err != nil {
			return errors.Wrapf(err, "failed to %s", step.name)
		}
	}
	return nil
}

type migrationStep struct {
	name string
	sql  string
}

func (r *MigrationRunner) steps() []migrationStep {
	return []migrationStep{
		{"create diary_entries table", `
			CREATE TABLE IF NOT EXISTS diary_entries (
				id VARCHAR(36) PRIMARY KEY,
				entry_date DATE,
				content TEXT NOT NULL,
				source VARCHAR(255) NOT NULL DEFAULT '',
				favorite BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)
		`},
		{"create diary_comments table", `
			CREATE TABLE IF NOT EXISTS diary_comments (
				id BIGSERIAL PRIMARY KEY,
				entry_id VARCHAR(36) NOT NULL REFERENCES diary_entries(id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)
		`},
		{"create ai_cache table", `
			CREATE TABLE IF NOT EXISTS ai_cache (
				analysis_type VARCHAR(50) PRIMARY KEY,
				result TEXT NOT NULL,
				input_hash VARCHAR(64) NOT NULL DEFAULT '',
				stale BOOLEAN NOT NULL DEFAULT false,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)
		`},
		{"create ai_logs table", `
			CREATE TABLE IF NOT EXISTS ai_logs (
				id VARCHAR(36) PRIMARY KEY,
				analysis_type VARCHAR(50) NOT NULL,
				prompt TEXT NOT NULL,
				result TEXT NOT NULL DEFAULT '',
				error TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)
		`},
		{"create indexes", `
			CREATE INDEX IF NOT EXISTS idx_diary_entries_entry_date ON diary_entries(entry_date);
			CREATE INDEX IF NOT EXISTS idx_diary_comments_entry_id ON diary_comments(entry_id);
			CREATE INDEX IF NOT EXISTS idx_ai_logs_type_created ON ai_logs(analysis_type, created_at DESC);
		`},
	}
}
