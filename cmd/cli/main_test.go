package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"diarylens/internal/config"
	"diarylens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ENTRY_SOURCE", "postgres")
	t.Setenv("ENTRY_FILE", "from-env.xlsx")

	cfg, err := loadConfig(&sourceOptions{kind: "file", file: "diary.csv", sheet: "2024"})
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Source.Kind)
	assert.Equal(t, "diary.csv", cfg.Source.EntryFile)
	assert.Equal(t, "2024", cfg.Source.SheetName)

	cfg, err = loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Source.Kind)
	assert.Equal(t, "from-env.xlsx", cfg.Source.EntryFile)
}

func TestEntrySource_FileRequiresPath(t *testing.T) {
	cfg := &config.Config{Source: config.SourceConfig{Kind: "file"}}
	_, _, err := entrySource(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestEntrySource_PostgresRequiresDatabase(t *testing.T) {
	cfg := &config.Config{Source: config.SourceConfig{Kind: "postgres"}}
	_, _, err := entrySource(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestNarrativeStores_MemoryBackend(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Backend: "memory"}}
	cache, logs, closer, err := narrativeStores(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, cache)
	assert.NotNil(t, logs)
	assert.NoError(t, closer.Close())
}

func TestAnalyzeCmd_PrintsProductJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diary.csv")
	csv := "date,content\n2024-01-05,今日は辛い。\n2024-02-05,嬉しい一日だった！\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	opts := &sourceOptions{kind: "file", file: path}
	cmd := newAnalyzeCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--product", "monthly"})
	cmd.SetContext(context.Background())

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"month": "2024-01"`)
	assert.Contains(t, out.String(), `"month": "2024-02"`)
}

func TestAnalyzeCmd_UnknownProduct(t *testing.T) {
	cmd := newAnalyzeCmd(&sourceOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--product", "weekly"})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
