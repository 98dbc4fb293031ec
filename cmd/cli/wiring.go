package main

import (
	"context"
	"io"

	"diarylens/adapters/excel"
	"diarylens/adapters/llm"
	"diarylens/adapters/memcache"
	"diarylens/adapters/postgres"
	"diarylens/app"
	"diarylens/domain/diary"
	"diarylens/internal/config"
	"diarylens/internal/errors"
	"diarylens/internal/migration"
	"diarylens/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type sourceOptions struct {
	kind  string
	file  string
	sheet string
}

// openDatabase connects, pings and migrates
func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// entrySource returns the configured reader and a closer for any
// connection it opened
func entrySource(ctx context.Context, cfg *config.Config) (ports.EntryReader, io.Closer, error) {
	switch cfg.Source.Kind {
	case "postgres":
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewEntryRepository(db), db, nil
	case "file":
		if cfg.Source.EntryFile == "" {
			return nil, nil, errors.ConfigInvalid("ENTRY_FILE or --file is required for the file source")
		}
		return excel.NewDataReader(excel.ExcelConfig{
			FilePath:  cfg.Source.EntryFile,
			SheetName: cfg.Source.SheetName,
		}), nopCloser{}, nil
	default:
		return nil, nil, errors.InvalidInput("unknown entry source " + cfg.Source.Kind)
	}
}

func loadEntries(ctx context.Context, cfg *config.Config) ([]diary.Entry, error) {
	reader, closer, err := entrySource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	entries, err := reader.ListEntries(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read entries")
	}
	return entries, nil
}

func analysisOptions(cfg *config.Config) app.AnalysisOptions {
	return app.AnalysisOptions{
		ChunkSize: cfg.Analysis.ChunkSize,
		Metrics:   cfg.Analysis.Metrics,
		Detectors: cfg.Analysis.Detectors,
	}
}

// narrativeStores returns the configured narrative cache and log
func narrativeStores(ctx context.Context, cfg *config.Config) (ports.AICacheRepository, ports.AILogRepository, io.Closer, error) {
	if cfg.Cache.Backend == "postgres" {
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewAICacheRepository(db), postgres.NewAILogRepository(db), db, nil
	}
	return memcache.NewAICache(cfg.Cache.TTL, cfg.Cache.CleanupInterval), memcache.NewAILog(0), nopCloser{}, nil
}

func newGenerator(cfg *config.Config) (ports.TextGenerator, error) {
	if err := cfg.RequireLLM(); err != nil {
		return nil, err
	}
	generator, err := llm.NewGenerator(llm.Config{
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return generator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
