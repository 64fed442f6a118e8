// Package report writes the per-run summary workbook: one sheet per
// aggregation plus the forecast horizon.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/evinsight/analysis"
	"github.com/kilianp07/evinsight/config"
)

// Write produces {prefix}_summary_{timestamp}.xlsx in the output directory
// and returns its path.
func Write(s analysis.Summary, forecasted map[int]float64, runID string, cfg config.ChartsConfig) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Adoption")
	writeSheet(f, "Adoption", []string{"Model Year", "Registrations"}, len(s.AdoptionByYear), func(i int) []any {
		return []any{s.AdoptionByYear[i].Year, s.AdoptionByYear[i].Count}
	})

	addKeyCounts(f, "Counties", "County", s.CountyCounts)
	addKeyCounts(f, "Types", "Electric Vehicle Type", s.TypeCounts)
	addKeyCounts(f, "Makes", "Make", s.MakeCounts)
	addPairs(f, "Cities", "County", "City", "Registrations", s.CityPairs, false)
	addPairs(f, "Models", "Make", "Model", "Registrations", s.ModelPairs, false)
	addPairs(f, "Range by Model", "Make", "Model", "Average Range (miles)", s.RangePairs, true)

	f.NewSheet("Range by Year")
	writeSheet(f, "Range by Year", []string{"Model Year", "Average Range (miles)"}, len(s.RangeByYear), func(i int) []any {
		return []any{s.RangeByYear[i].Year, s.RangeByYear[i].Mean}
	})

	years := make([]int, 0, len(forecasted))
	for y := range forecasted {
		years = append(years, y)
	}
	sort.Ints(years)
	f.NewSheet("Forecast")
	writeSheet(f, "Forecast", []string{"Year", "Projected Registrations"}, len(years), func(i int) []any {
		return []any{years[i], forecasted[years[i]]}
	})

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "EV registration summary",
		Description: fmt.Sprintf("run %s", runID),
		Created:     time.Now().Format(time.RFC3339),
	}); err != nil {
		return "", fmt.Errorf("set workbook properties: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_summary_%s.xlsx", cfg.Prefix, time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func addKeyCounts(f *excelize.File, sheet, keyHeader string, counts []analysis.KeyCount) {
	f.NewSheet(sheet)
	writeSheet(f, sheet, []string{keyHeader, "Registrations"}, len(counts), func(i int) []any {
		return []any{counts[i].Key, counts[i].Count}
	})
}

func addPairs(f *excelize.File, sheet, groupHeader, labelHeader, valueHeader string, pairs []analysis.PairValue, mean bool) {
	f.NewSheet(sheet)
	writeSheet(f, sheet, []string{groupHeader, labelHeader, valueHeader}, len(pairs), func(i int) []any {
		if mean {
			return []any{pairs[i].Group, pairs[i].Label, pairs[i].Value}
		}
		return []any{pairs[i].Group, pairs[i].Label, int(pairs[i].Value)}
	})
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows int, row func(int) []any) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 22)
	}
	for i := 0; i < rows; i++ {
		for j, v := range row(i) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
}
