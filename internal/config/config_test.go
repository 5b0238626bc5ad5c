package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "tandoor.db", cfg.Database.Path)
	assert.Equal(t, 3*time.Minute, cfg.Kitchen.PrepTime)
	assert.Equal(t, 8*time.Minute, cfg.Kitchen.CookTime)
	assert.Equal(t, 2*time.Minute, cfg.Kitchen.PlateTime)
	assert.False(t, cfg.Kitchen.DebitStockOnCreate)
	assert.False(t, cfg.LLM.Enabled)
}

func TestLoadMergesYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("log_level: debug\nserver:\n  port: 3000\nkitchen:\n  cook_time: 1s\n  instant_phases: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Kitchen.CookTime)
	assert.True(t, cfg.Kitchen.InstantPhases)
	// Untouched keys keep their defaults
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, 3*time.Minute, cfg.Kitchen.PrepTime)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o644))

	t.Setenv("TANDOOR_SERVER_PORT", "4000")
	t.Setenv("TANDOOR_SERVER_METRICS_PORT", "4001")
	t.Setenv("TANDOOR_LOG_LEVEL", "warn")
	t.Setenv("TANDOOR_KITCHEN_DEBIT_STOCK_ON_CREATE", "true")
	t.Setenv("TANDOOR_KITCHEN_PLATE_TIME", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 4001, cfg.Server.MetricsPort)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Kitchen.DebitStockOnCreate)
	assert.Equal(t, 30*time.Second, cfg.Kitchen.PlateTime)
}

func TestLoadOpenAIKeyAlias(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIKey)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
