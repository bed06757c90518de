package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "./tabbuddy.json", cfg.SnapshotPath)
	assert.Equal(t, config.LedgerStrategyFold, cfg.LedgerStrategy)
	assert.Equal(t, 4, cfg.SummaryWorkers)
}

func TestLoadConfig_Env(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("SNAPSHOT_PATH", "/data/groups.json")
	t.Setenv("LEDGER_STRATEGY", "sheet")
	t.Setenv("SUMMARY_WORKERS", "9")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/data/groups.json", cfg.SnapshotPath)
	assert.Equal(t, config.LedgerStrategySheet, cfg.LedgerStrategy)
	assert.Equal(t, 9, cfg.SummaryWorkers)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "tabbuddy.toml")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_STRATEGY = \"sheet\"\nSUMMARY_WORKERS = 2\n"), 0o600))
	t.Setenv("TABBUDDY_CONFIG", path)
	t.Setenv("SUMMARY_WORKERS", "6")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.LedgerStrategySheet, cfg.LedgerStrategy)
	assert.Equal(t, 6, cfg.SummaryWorkers, "environment overrides the file")
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TABBUDDY_CONFIG", filepath.Join(dir, "missing.toml"))

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown strategy", key: "LEDGER_STRATEGY", val: "graph"},
		{name: "unknown log format", key: "LOG_FORMAT", val: "xml"},
		{name: "zero workers", key: "SUMMARY_WORKERS", val: "0"},
		{name: "negative workers", key: "SUMMARY_WORKERS", val: "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.val)

			_, err := config.LoadConfig()
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
