package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, uint64(3), cfg.Store.RetryCount)
	assert.Equal(t, 50*time.Millisecond, cfg.Store.RetryInterval)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, DefaultLimits(), cfg.Limits)
	assert.Equal(t, DefaultHeuristics().ExpectedAlertsPerRisk, cfg.Heuristics.ExpectedAlertsPerRisk)
	assert.Equal(t, 24*time.Hour, cfg.Limits.PayloadStaleness())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
heuristics:
  expected_alerts_per_risk: 20
limits:
  max_range_years: 2
`), 0o600))
	t.Setenv("MALARIA_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 20.0, cfg.Heuristics.ExpectedAlertsPerRisk)
	assert.Equal(t, 0.4, cfg.Heuristics.ChildrenFraction)
	assert.Equal(t, 2, cfg.Limits.MaxRangeYears)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := Config{Limits: DefaultLimits(), Heuristics: DefaultHeuristics()}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero range", func(c *Config) { c.Limits.MaxRangeYears = 0 }},
		{"zero staleness", func(c *Config) { c.Limits.PayloadStalenessHour = 0 }},
		{"zero expected alerts", func(c *Config) { c.Heuristics.ExpectedAlertsPerRisk = 0 }},
		{"zero density norm", func(c *Config) { c.Heuristics.PopulationDensityNorm = 0 }},
		{"children fraction above one", func(c *Config) { c.Heuristics.ChildrenFraction = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Limits: DefaultLimits(), Heuristics: DefaultHeuristics()}
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
