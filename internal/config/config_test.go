package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "facility.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 1.0, cfg.Estimate.RegionMultiplier, 0.001)
	assert.Equal(t, "mid", cfg.Estimate.Tier)
	assert.Equal(t, 720, cfg.Estimate.DraftTTLHours)
	assert.Equal(t, 60, cfg.Lead.RateLimitSecs)
	assert.Equal(t, 3, cfg.Lead.RateBurst)
	assert.Equal(t, 3, cfg.Lead.SyncRetries)
	assert.Equal(t, 4, cfg.Lead.ResyncWorkers)
	assert.InDelta(t, 1.0, cfg.Sheets.RateLimitRPS, 0.001)
	assert.Empty(t, cfg.Sheets.WebhookURL)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Catalog.File)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/facility
  pool:
    max_conns: 20
server:
  port: 9090
  allowed_origins:
    - https://fieldhousegroup.com
estimate:
  region_multiplier: 1.15
lead:
  rate_limit_secs: 30
sheets:
  webhook_url: https://script.google.com/macros/s/abc/exec
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/facility", cfg.Store.DatabaseURL)
	require.NotNil(t, cfg.Store.Pool)
	assert.Equal(t, int32(20), cfg.Store.Pool.MaxConns)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://fieldhousegroup.com"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 1.15, cfg.Estimate.RegionMultiplier, 0.001)
	assert.Equal(t, 30, cfg.Lead.RateLimitSecs)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.Sheets.WebhookURL)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Defaults still apply for untouched keys.
	assert.Equal(t, 3, cfg.Lead.RateBurst)
	assert.Equal(t, "mid", cfg.Estimate.Tier)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("FACILITY_STORE_DRIVER", "postgres")
	t.Setenv("FACILITY_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.NotNil(t, zap.L())

	err := InitLogger(LogConfig{Level: "nonsense", Format: "json"})
	require.Error(t, err)
}
