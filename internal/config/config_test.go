package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Invoker2025/lotofacil-api/internal/testutil"
)

func TestConfigLoader_Load(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		configPath := testutil.SetupTestConfig(t, t.TempDir(), "")
		loader, err := NewConfigLoader(configPath)
		require.NoError(t, err)

		cfg, err := loader.Load()
		require.NoError(t, err)

		assert.Equal(t, []string{"http://caixa.test"}, cfg.Sources.CaixaHosts)
		assert.Equal(t, 120, cfg.Cache.DrawTTLSec)
		assert.Equal(t, 50, cfg.Collector.MaxFetch)
		assert.Equal(t, 20, cfg.Suggestion.TrendWindow)
		assert.Equal(t, 0.7, cfg.Suggestion.HotFraction)
		assert.Equal(t, 0.3, cfg.Suggestion.ColdFraction)
		assert.Equal(t, 190, cfg.Suggestion.SumMin)
		assert.Equal(t, 210, cfg.Suggestion.SumMax)
		assert.Equal(t, 9, cfg.Suggestion.RepeatThreshold)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.False(t, cfg.Sources.PreferMirror)
		assert.False(t, cfg.Database.Enabled())
	})

	t.Run("file values override defaults", func(t *testing.T) {
		configPath := testutil.SetupTestConfig(t, t.TempDir(), `suggestion:
  trend_window: 10
  hot_fraction: 0.8
server:
  addr: ":9090"
`)
		loader, err := NewConfigLoader(configPath)
		require.NoError(t, err)

		cfg, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Suggestion.TrendWindow)
		assert.Equal(t, 0.8, cfg.Suggestion.HotFraction)
		assert.Equal(t, ":9090", cfg.Server.Addr)
	})

	t.Run("database credentials come from the environment", func(t *testing.T) {
		t.Setenv("LOTOFACIL_DB_USERNAME", "lotouser")
		t.Setenv("LOTOFACIL_DB_PASSWORD", "lotopass")

		configPath := testutil.SetupTestConfig(t, t.TempDir(), "database:\n  host: db.internal\n")
		loader, err := NewConfigLoader(configPath)
		require.NoError(t, err)

		cfg, err := loader.Load()
		require.NoError(t, err)
		assert.True(t, cfg.Database.Enabled())
		assert.Equal(t, "lotouser", cfg.Database.Username)
		assert.Equal(t, "lotopass", cfg.Database.Password)
		assert.Equal(t, 3306, cfg.Database.Port)
	})

	t.Run("invalid values are rejected with field names", func(t *testing.T) {
		configPath := testutil.SetupTestConfig(t, t.TempDir(), "suggestion:\n  repeat_threshold: 20\n")
		loader, err := NewConfigLoader(configPath)
		require.NoError(t, err)

		_, err = loader.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "repeat_threshold")
	})

	t.Run("sum band must be ordered", func(t *testing.T) {
		configPath := testutil.SetupTestConfig(t, t.TempDir(), "suggestion:\n  sum_min: 220\n  sum_max: 210\n")
		loader, err := NewConfigLoader(configPath)
		require.NoError(t, err)

		_, err = loader.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum_min")
	})

	t.Run("cold fraction must not exceed hot fraction", func(t *testing.T) {
		configPath := testutil.SetupTestConfig(t, t.TempDir(), "suggestion:\n  hot_fraction: 0.2\n  cold_fraction: 0.6\n")
		loader, err := NewConfigLoader(configPath)
		require.NoError(t, err)

		_, err = loader.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cold_fraction")
	})

	t.Run("unreadable config file", func(t *testing.T) {
		loader, err := NewConfigLoader("/nonexistent/config.yml")
		require.NoError(t, err)

		_, err = loader.Load()
		assert.Error(t, err)
	})
}
