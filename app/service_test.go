package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evinsight/config"
)

const syntheticCSV = `State,Model Year,Make,Model,County,City,Electric Vehicle Type,Electric Range
WA,2020,TESLA,MODEL 3,King,Seattle,Battery Electric Vehicle (BEV),266
WA,2020,NISSAN,LEAF,Pierce,Tacoma,Battery Electric Vehicle (BEV),150
WA,2021,TESLA,MODEL Y,King,Bellevue,Battery Electric Vehicle (BEV),291
WA,2021,NISSAN,LEAF,Pierce,Tacoma,Battery Electric Vehicle (BEV),150
WA,2022,TESLA,MODEL 3,King,Seattle,Battery Electric Vehicle (BEV),272
WA,2022,TESLA,MODEL Y,King,Seattle,Battery Electric Vehicle (BEV),303
WA,2022,NISSAN,ARIYA,Pierce,Lakewood,Battery Electric Vehicle (BEV),216
WA,2023,TESLA,MODEL 3,King,Seattle,Battery Electric Vehicle (BEV),272
WA,2023,TESLA,MODEL Y,King,Bellevue,Battery Electric Vehicle (BEV),310
WA,2023,NISSAN,LEAF,Pierce,Tacoma,Battery Electric Vehicle (BEV),212
`

func TestServiceRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ev_data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(syntheticCSV), 0o644))

	outDir := filepath.Join(dir, "out")
	cfg := config.Default()
	cfg.Dataset.Path = csvPath
	cfg.Charts.OutputDir = outDir
	cfg.Charts.Prefix = "ev_data"

	svc := New(cfg)
	require.NoError(t, svc.Run(context.Background()))

	pngs, err := filepath.Glob(filepath.Join(outDir, "*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 8)
	for _, p := range pngs {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), "empty chart %s", p)
	}

	books, err := filepath.Glob(filepath.Join(outDir, "*_summary_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestServiceRunWithoutWorkbook(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ev_data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(syntheticCSV), 0o644))

	outDir := filepath.Join(dir, "out")
	cfg := config.Default()
	cfg.Dataset.Path = csvPath
	cfg.Charts.OutputDir = outDir
	cfg.Report.Disabled = true

	require.NoError(t, New(cfg).Run(context.Background()))

	books, err := filepath.Glob(filepath.Join(outDir, "*.xlsx"))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestServiceRunLoadFailureEndsQuietly(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfg := config.Default()
	cfg.Dataset.Path = filepath.Join(dir, "absent.csv")
	cfg.Charts.OutputDir = outDir

	// A failed load is logged and ends the run without an error.
	assert.NoError(t, New(cfg).Run(context.Background()))

	_, err := os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "no artifacts expected after a failed load")
}

func TestServiceRunForecastFailurePropagates(t *testing.T) {
	// A single distinct year makes the fit ill-posed.
	oneYear := `State,Model Year,Make,Model,County,City,Electric Vehicle Type,Electric Range
WA,2022,TESLA,MODEL 3,King,Seattle,Battery Electric Vehicle (BEV),266
WA,2022,NISSAN,LEAF,Pierce,Tacoma,Battery Electric Vehicle (BEV),150
`
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ev_data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(oneYear), 0o644))

	cfg := config.Default()
	cfg.Dataset.Path = csvPath
	cfg.Charts.OutputDir = filepath.Join(dir, "out")

	err := New(cfg).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forecast")
}
