package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/kilianp07/evinsight/analysis"
	"github.com/kilianp07/evinsight/charts"
	"github.com/kilianp07/evinsight/config"
	"github.com/kilianp07/evinsight/dataset"
	"github.com/kilianp07/evinsight/forecast"
	"github.com/kilianp07/evinsight/infra/logger"
	"github.com/kilianp07/evinsight/report"
)

// Service runs the pipeline: load, forecast, aggregate, render, report.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	runID string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg, log: logger.New("service"), runID: uuid.NewString()}
}

// Run executes the pipeline sequentially. A dataset load failure is logged
// and ends the run early without producing artifacts; the error is not
// returned, so the process exits normally. Every later failure is returned
// and aborts the run.
func (s *Service) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Infof("run %s: loading %s", s.runID, s.cfg.Dataset.Path)

	table, err := dataset.Load(s.cfg.Dataset, logger.New("dataset"))
	if err != nil {
		s.log.Errorf("load dataset: %v", err)
		return nil
	}

	counts := analysis.CountByYear(table)
	forecasted, err := forecast.Forecast(counts, s.cfg.Forecast)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	years := make([]int, 0, len(forecasted))
	for y := range forecasted {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		s.log.Infof("forecast %d: %.1f registrations", y, forecasted[y])
	}

	summary := analysis.Summarize(table, s.cfg.Analysis)
	paths, err := charts.New(s.cfg.Charts, logger.New("charts")).Render(summary, forecasted, s.cfg.Forecast)
	if err != nil {
		return err
	}

	if !s.cfg.Report.Disabled {
		path, err := report.Write(summary, forecasted, s.runID, s.cfg.Charts)
		if err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		s.log.Infof("saved %s", path)
	}

	s.log.Infof("run %s complete: %d charts", s.runID, len(paths))
	return nil
}
