package config

import (
	"testing"
	"time"

	"diarylens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Source.Kind)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 3, cfg.Analysis.Metrics.ShortWindow)
	assert.Equal(t, 0.05, cfg.Analysis.Detectors.Seasonal.Alpha)
	assert.Equal(t, 3, cfg.Analysis.Detectors.TrendShift.Window)

	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(cfg.RequireDatabase()))
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(cfg.RequireLLM()))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/diary")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ENTRY_SOURCE", "Postgres")
	t.Setenv("SPIKE_K", "2.5")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("MA_SHORT_WINDOW", "not-a-number")
	t.Setenv("TREND_WINDOW_MONTHS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Source.Kind)
	assert.Equal(t, 2.5, cfg.Analysis.Detectors.Predictive.SpikeK)
	assert.Equal(t, 4, cfg.Analysis.Detectors.TrendShift.Window)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.Analysis.Metrics.ShortWindow)
	assert.NoError(t, cfg.RequireDatabase())
	assert.NoError(t, cfg.RequireLLM())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("ENTRY_SOURCE", "ftp")
	_, err := Load()
	assert.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_RejectsBadAlpha(t *testing.T) {
	t.Setenv("SEASONAL_ALPHA", "1.5")
	_, err := Load()
	assert.Error(t, err)
}
