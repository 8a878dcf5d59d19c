package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/soltixdb/salescast/internal/analytics"
	"github.com/soltixdb/salescast/internal/analytics/forecast"
	"github.com/soltixdb/salescast/internal/dataset"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/report"
)

// PipelineService runs the end-to-end analysis of a sales file
type PipelineService struct {
	logger    *logging.Logger
	forecasts *ForecastService
}

// NewPipelineService creates a new PipelineService
func NewPipelineService(logger *logging.Logger, forecasts *ForecastService) *PipelineService {
	return &PipelineService{
		logger:    logger,
		forecasts: forecasts,
	}
}

// PipelineRequest describes one pipeline run
type PipelineRequest struct {
	InputPath      string
	DateColumn     string
	ValueColumn    string
	Frequency      string // D, W, M; empty forecasts the raw column
	FillMethod     string
	DropDuplicates bool

	Method  string
	Periods int
	Config  forecast.Config

	ReportPath string // empty skips the report file
}

// PipelineResult is everything a run produced
type PipelineResult struct {
	Summary      dataset.Summary
	Duplicates   int
	Filled       int
	Skipped      int
	Statistics   map[string]analytics.Statistics
	Correlations analytics.CorrelationMatrix
	Series       analytics.TimeSeriesData
	Forecast     *ForecastResponse
	Report       report.Summary
	ReportPath   string
	Duration     time.Duration
}

// Run loads, cleans and describes the input, forecasts the value column and writes the
// report
func (s *PipelineService) Run(ctx context.Context, req PipelineRequest) (*PipelineResult, error) {
	start := time.Now()
	logger := s.logger.WithContext(ctx)

	table, err := dataset.Load(req.InputPath)
	if err != nil {
		return nil, wrapError(CodeLoadFailed, err)
	}
	logger.Info("Data loaded", "path", req.InputPath, "shape", table.Shape().String())

	result := &PipelineResult{}
	processor := dataset.NewProcessor(table)

	if req.DropDuplicates {
		result.Duplicates = processor.DropDuplicates()
	}
	result.Filled, err = processor.FillMissing(dataset.FillMethod(req.FillMethod))
	if err != nil {
		return nil, wrapError(CodeInvalidDataset, err)
	}
	cleaned := processor.Table()
	result.Summary = cleaned.Summary()
	logger.Info("Data cleaned",
		"duplicates_removed", result.Duplicates,
		"cells_filled", result.Filled,
		"shape", cleaned.Shape().String())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.describe(cleaned, result); err != nil {
		return nil, err
	}

	values, err := s.series(processor, req, result)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Forecast, err = s.forecasts.Execute(ctx, &ForecastRequest{
		Values:  values,
		Method:  req.Method,
		Periods: req.Periods,
		Config:  req.Config,
		Source:  req.InputPath,
	})
	if err != nil {
		return nil, err
	}

	reporter := report.NewReporter(cleaned.Shape(), result.Forecast.Model)
	result.Report = reporter.Summary()
	if req.ReportPath != "" {
		if err := reporter.Export(req.ReportPath); err != nil {
			return nil, wrapError(CodeReportFailed, err)
		}
		result.ReportPath = req.ReportPath
		logger.Info("Report written", "path", req.ReportPath)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// describe fills per-column statistics and the correlation matrix
func (s *PipelineService) describe(t *dataset.Table, result *PipelineResult) error {
	columns, err := t.NumericData()
	if err != nil {
		return wrapError(CodeInvalidDataset, err)
	}

	names := t.NumericColumns()
	result.Statistics = make(map[string]analytics.Statistics, len(names))
	for _, name := range names {
		stats, err := analytics.Describe(columns[name])
		if errors.Is(err, analytics.ErrNoData) {
			continue
		}
		result.Statistics[name] = stats
	}
	result.Correlations = analytics.Correlate(names, columns)
	return nil
}

// series returns the values to forecast, aggregated when a frequency is set.
// Missing values are skipped since no model accepts NaN.
func (s *PipelineService) series(p *dataset.Processor, req PipelineRequest, result *PipelineResult) ([]float64, error) {
	var raw []float64
	if req.Frequency != "" {
		freq, err := dataset.ParseFrequency(req.Frequency)
		if err != nil {
			return nil, wrapError(CodeInvalidParameter, err)
		}
		series, err := p.Aggregate(req.DateColumn, req.ValueColumn, freq)
		if err != nil {
			return nil, wrapError(CodeInvalidDataset, err)
		}
		result.Series = series
		raw = series.Values()
	} else {
		var err error
		raw, err = p.Table().Float64Column(req.ValueColumn)
		if err != nil {
			return nil, wrapError(CodeInvalidDataset, err)
		}
	}

	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.Skipped++
			continue
		}
		values = append(values, v)
	}
	if result.Skipped > 0 {
		s.logger.Warn("Skipped missing values", "column", req.ValueColumn, "count", result.Skipped)
	}
	return values, nil
}
