package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 7, cfg.Engine.Resolution)
	assert.True(t, cfg.Engine.IncludeCoordinates)
	assert.Empty(t, cfg.Engine.Aggregations)
	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.Equal(t, ',', cfg.Input.DelimiterRune())
	assert.Equal(t, "", cfg.Input.Sheet)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Sweep.Concurrency)
	assert.Equal(t, 5, cfg.Sweep.MinOccupancy)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
engine:
  resolution: 9
  include_coordinates: false
  aggregations:
    - Revenue=sum
    - age=median
input:
  delimiter: ";"
output:
  format: xlsx
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9, cfg.Engine.Resolution)
	assert.False(t, cfg.Engine.IncludeCoordinates)
	assert.Equal(t, []string{"Revenue=sum", "age=median"}, cfg.Engine.Aggregations)
	assert.Equal(t, ';', cfg.Input.DelimiterRune())
	assert.Equal(t, "xlsx", cfg.Output.Format)
	// Defaults still apply for unset values
	assert.Equal(t, 4, cfg.Sweep.Concurrency)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
engine:
  resolution: 9
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("HEXAGG_ENGINE_RESOLUTION", "4")
	t.Setenv("HEXAGG_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, 4, cfg.Engine.Resolution)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("HEXAGG_SWEEP_MIN_OCCUPANCY", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Sweep.MinOccupancy)
}

func TestLoadRejectsResolutionOutOfRange(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HEXAGG_ENGINE_RESOLUTION", "16")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.resolution 16 out of range")
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("engine: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func validDefaults() *Config {
	return &Config{
		Engine: EngineConfig{Resolution: 7, IncludeCoordinates: true},
		Input:  InputConfig{Delimiter: ","},
		Output: OutputConfig{Format: "csv"},
		Sweep:  SweepConfig{Concurrency: 4, MinOccupancy: 5},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "coarsest resolution", mutate: func(c *Config) { c.Engine.Resolution = 0 }},
		{name: "finest resolution", mutate: func(c *Config) { c.Engine.Resolution = 15 }},
		{
			name:    "negative resolution",
			mutate:  func(c *Config) { c.Engine.Resolution = -1 },
			wantErr: "engine.resolution -1 out of range",
		},
		{
			name:    "unknown aggregation function",
			mutate:  func(c *Config) { c.Engine.Aggregations = []string{"value=mode"} },
			wantErr: "engine.aggregations",
		},
		{
			name:    "multi-character delimiter",
			mutate:  func(c *Config) { c.Input.Delimiter = "||" },
			wantErr: "input.delimiter must be a single character",
		},
		{
			name:    "unsupported output format",
			mutate:  func(c *Config) { c.Output.Format = "parquet" },
			wantErr: "unsupported output.format",
		},
		{
			name:    "zero sweep concurrency",
			mutate:  func(c *Config) { c.Sweep.Concurrency = 0 },
			wantErr: "sweep.concurrency",
		},
		{
			name:    "zero min occupancy",
			mutate:  func(c *Config) { c.Sweep.MinOccupancy = 0 },
			wantErr: "sweep.min_occupancy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.False(t, zap.L().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.InfoLevel))
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
