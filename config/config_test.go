package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `dataset:
  path: "data/registrations.csv"
  region: "WA"
analysis:
  top_counties: 3
  top_makes: 5
forecast:
  cutoff_year: 2023
charts:
  output_dir: "out"
report:
  disabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/registrations.csv", cfg.Dataset.Path)
	assert.Equal(t, "WA", cfg.Dataset.Region)
	assert.Equal(t, 3, cfg.Analysis.TopCounties)
	assert.Equal(t, 5, cfg.Analysis.TopMakes)
	assert.Equal(t, 2023, cfg.Forecast.CutoffYear)
	assert.Equal(t, "out", cfg.Charts.OutputDir)
	assert.True(t, cfg.Report.Disabled)

	// Unset fields pick up defaults.
	assert.Equal(t, 3, cfg.Analysis.ChartMakes)
	assert.Equal(t, 5, cfg.Analysis.TopPairs)
	assert.Equal(t, 12, cfg.Analysis.LabelLimit)
	assert.Equal(t, 2024, cfg.Forecast.HorizonStart)
	assert.Equal(t, 2029, cfg.Forecast.HorizonEnd)
	assert.Equal(t, "registrations", cfg.Charts.Prefix)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Dataset.Path, cfg.Dataset.Path)
	assert.Equal(t, "WA", cfg.Dataset.Region)
	assert.Equal(t, 2023, cfg.Forecast.CutoffYear)
	assert.Equal(t, "ev_data", cfg.Charts.Prefix)
	assert.False(t, cfg.Report.Disabled)
}

func TestLoadRejectsBadHorizon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `forecast:
  cutoff_year: 2023
  horizon_start: 2025
  horizon_end: 2024
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
