package services

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soltixdb/salescast/internal/analytics/forecast"
	"github.com/soltixdb/salescast/internal/dataset"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSampleData(t *testing.T, days int) string {
	t.Helper()
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	table := dataset.Generate(days, now, rand.New(rand.NewSource(42)))

	path := filepath.Join(t.TempDir(), "data", "sales_data.csv")
	require.NoError(t, table.WriteCSV(path))
	return path
}

func newPipelineService() *PipelineService {
	logger := logging.NewNop()
	return NewPipelineService(logger, NewForecastService(logger))
}

func basePipelineRequest(input string) PipelineRequest {
	return PipelineRequest{
		InputPath:      input,
		DateColumn:     "date",
		ValueColumn:    "sales",
		FillMethod:     "mean",
		DropDuplicates: true,
		Method:         "exponential",
		Periods:        30,
		Config:         forecast.DefaultConfig(),
	}
}

func TestPipelineService_Run(t *testing.T) {
	input := writeSampleData(t, 90)
	req := basePipelineRequest(input)
	req.ReportPath = filepath.Join(t.TempDir(), "reports", "report.txt")

	result, err := newPipelineService().Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "(90, 4)", result.Summary.Shape.String())
	assert.Equal(t, dataset.TypeObject, result.Summary.Types["region"])
	assert.Equal(t, 0, result.Duplicates)

	require.Contains(t, result.Statistics, "sales")
	require.Contains(t, result.Statistics, "customers")
	assert.Equal(t, 90, result.Statistics["sales"].Count)
	assert.Equal(t, []string{"sales", "customers"}, result.Correlations.Names)

	require.NotNil(t, result.Forecast)
	assert.Len(t, result.Forecast.Forecast, 30)
	assert.Equal(t, 72, result.Forecast.TrainSize)
	require.NotNil(t, result.Forecast.Evaluation)

	data, err := os.ReadFile(req.ReportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Sales Forecasting Report", lines[0])
	assert.Equal(t, "Data Shape: (90, 4)", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Forecast: ["))
}

func TestPipelineService_RunWeekly(t *testing.T) {
	input := writeSampleData(t, 70)
	req := basePipelineRequest(input)
	req.Frequency = "W"
	req.Periods = 4

	result, err := newPipelineService().Run(context.Background(), req)
	require.NoError(t, err)

	// 2024-01-22 (Mon) .. 2024-03-31 (Sun) covers ten Sunday-ending weeks
	assert.Equal(t, 10, result.Series.Len())
	assert.Len(t, result.Forecast.Forecast, 4)
	assert.Empty(t, result.ReportPath)
}

func TestPipelineService_DropsDuplicatesAndSkipsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "date,sales\n" +
		"2024-01-01,100\n" +
		"2024-01-01,100\n" +
		"2024-01-02,\n" +
		"2024-01-03,300\n" +
		"2024-01-04,400\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	req := basePipelineRequest(path)
	req.FillMethod = "none"
	req.Periods = 2
	req.Config.TestSize = 0

	result, err := newPipelineService().Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Forecast.TrainSize)
}

func TestPipelineService_Errors(t *testing.T) {
	input := writeSampleData(t, 30)
	service := newPipelineService()

	tests := []struct {
		name   string
		mutate func(r *PipelineRequest)
		code   string
	}{
		{"missing file", func(r *PipelineRequest) { r.InputPath = filepath.Join(t.TempDir(), "nope.csv") }, CodeLoadFailed},
		{"unknown value column", func(r *PipelineRequest) { r.ValueColumn = "revenue" }, CodeInvalidDataset},
		{"non numeric value column", func(r *PipelineRequest) { r.ValueColumn = "region" }, CodeInvalidDataset},
		{"bad fill method", func(r *PipelineRequest) { r.FillMethod = "median" }, CodeInvalidDataset},
		{"bad frequency", func(r *PipelineRequest) { r.Frequency = "Q" }, CodeInvalidParameter},
		{"bad alpha", func(r *PipelineRequest) { r.Config.Alpha = -1 }, CodeInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := basePipelineRequest(input)
			tt.mutate(&req)

			_, err := service.Run(context.Background(), req)
			var svcErr *ServiceError
			require.True(t, errors.As(err, &svcErr), "got %v", err)
			assert.Equal(t, tt.code, svcErr.Code)
		})
	}
}

func TestPipelineService_Cancelled(t *testing.T) {
	input := writeSampleData(t, 30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipelineService().Run(ctx, basePipelineRequest(input))
	assert.ErrorIs(t, err, context.Canceled)
}
