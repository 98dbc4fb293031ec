package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"diarylens/internal/detectors"
	"diarylens/internal/errors"
	"diarylens/internal/metrics"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
	Source   SourceConfig
	Cache    CacheConfig
	Analysis AnalysisConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LLMConfig holds narrative generator settings. The key is handed to the
// generator explicitly and never read again from the environment.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// SourceConfig selects where entries are read from
type SourceConfig struct {
	Kind      string // "file" or "postgres"
	EntryFile string
	SheetName string
}

// CacheConfig holds the in-memory narrative cache settings
type CacheConfig struct {
	Backend         string // "memory" or "postgres"
	TTL             time.Duration
	CleanupInterval time.Duration
}

// AnalysisConfig exposes every analysis tunable
type AnalysisConfig struct {
	ChunkSize int
	Metrics   metrics.Config
	Detectors detectors.Config
}

// Load reads configuration from environment variables. Database and LLM
// settings are optional here; commands that need them call RequireDatabase
// or RequireLLM.
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		LLM:      loadLLMConfig(),
		Source:   loadSourceConfig(),
		Cache:    loadCacheConfig(),
		Analysis: loadAnalysisConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// RequireDatabase fails when no database URL is configured
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	return nil
}

// RequireLLM fails when no API key is configured
func (c *Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		return errors.ConfigInvalid("OPENAI_API_KEY is required")
	}
	return nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 1500),
		Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.7),
		Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
	}
}

func loadSourceConfig() SourceConfig {
	return SourceConfig{
		Kind:      strings.ToLower(getEnvOrDefault("ENTRY_SOURCE", "file")),
		EntryFile: getEnvOrDefault("ENTRY_FILE", ""),
		SheetName: getEnvOrDefault("ENTRY_SHEET", "Sheet1"),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Backend:         strings.ToLower(getEnvOrDefault("AI_CACHE_BACKEND", "memory")),
		TTL:             getEnvDurationOrDefault("AI_CACHE_TTL", 24*time.Hour),
		CleanupInterval: getEnvDurationOrDefault("AI_CACHE_CLEANUP", 10*time.Minute),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	m := metrics.DefaultConfig()
	m.ShortWindow = getEnvIntOrDefault("MA_SHORT_WINDOW", m.ShortWindow)
	m.LongWindow = getEnvIntOrDefault("MA_LONG_WINDOW", m.LongWindow)
	m.DailyWindow = getEnvIntOrDefault("MA_DAILY_WINDOW", m.DailyWindow)
	m.ClimbScale = getEnvFloatOrDefault("CLIMB_SCALE", m.ClimbScale)

	d := detectors.DefaultConfig()
	d.TrendShift.Threshold = getEnvFloatOrDefault("TREND_SHIFT_THRESHOLD", d.TrendShift.Threshold)
	d.TrendShift.PlateauMinMonths = getEnvIntOrDefault("TREND_PLATEAU_MONTHS", d.TrendShift.PlateauMinMonths)
	d.TrendShift.Window = getEnvIntOrDefault("TREND_WINDOW_MONTHS", d.TrendShift.Window)
	d.Seasonal.Alpha = getEnvFloatOrDefault("SEASONAL_ALPHA", d.Seasonal.Alpha)
	d.Predictive.SpikeK = getEnvFloatOrDefault("SPIKE_K", d.Predictive.SpikeK)
	d.Predictive.LookbackDays = getEnvIntOrDefault("PRECURSOR_LOOKBACK_DAYS", d.Predictive.LookbackDays)
	d.Predictive.MaxLagDays = getEnvIntOrDefault("SYMPTOM_MAX_LAG_DAYS", d.Predictive.MaxLagDays)
	d.Predictive.MinCorrelation = getEnvFloatOrDefault("SYMPTOM_MIN_CORRELATION", d.Predictive.MinCorrelation)

	return AnalysisConfig{
		ChunkSize: getEnvIntOrDefault("AGGREGATE_CHUNK_SIZE", 256),
		Metrics:   m,
		Detectors: d,
	}
}

func validateConfig(config *Config) error {
	switch config.Source.Kind {
	case "file", "postgres":
	default:
		return errors.ConfigInvalid("ENTRY_SOURCE must be file or postgres")
	}
	switch config.Cache.Backend {
	case "memory", "postgres":
	default:
		return errors.ConfigInvalid("AI_CACHE_BACKEND must be memory or postgres")
	}
	if config.Analysis.Detectors.Seasonal.Alpha <= 0 || config.Analysis.Detectors.Seasonal.Alpha >= 1 {
		return errors.ConfigInvalid("SEASONAL_ALPHA must be in (0,1)")
	}
	if config.Analysis.Detectors.Predictive.MaxLagDays < 0 {
		return errors.ConfigInvalid("SYMPTOM_MAX_LAG_DAYS must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
