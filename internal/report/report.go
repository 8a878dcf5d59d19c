// Package report renders the plain-text forecast report written at the end of a run.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soltixdb/salescast/internal/analytics/forecast"
	"github.com/soltixdb/salescast/internal/dataset"
)

const (
	// Title is the first line of every report
	Title = "Sales Forecasting Report"
	// TimestampLayout formats the Generated line
	TimestampLayout = "2006-01-02 15:04:05"
)

// Summary is the content of a report
type Summary struct {
	Title     string        `json:"title"`
	Timestamp string        `json:"timestamp"`
	Shape     dataset.Shape `json:"shape"`
	Model     string        `json:"model,omitempty"`
	Forecast  []float64     `json:"forecast"`
}

// Reporter builds reports from a data shape and the latest forecast of a model
type Reporter struct {
	shape dataset.Shape
	model forecast.Model
	now   func() time.Time
}

// NewReporter creates a reporter. model may be nil when no forecast was run.
func NewReporter(shape dataset.Shape, model forecast.Model) *Reporter {
	return &Reporter{shape: shape, model: model, now: time.Now}
}

// Summary collects the report content at the current time
func (r *Reporter) Summary() Summary {
	s := Summary{
		Title:     Title,
		Timestamp: r.now().Format(TimestampLayout),
		Shape:     r.shape,
	}
	if r.model != nil {
		s.Model = r.model.Name()
		s.Forecast = r.model.Latest()
	}
	return s
}

// Render writes the four report lines to w
func (r *Reporter) Render(w io.Writer) error {
	s := r.Summary()
	_, err := fmt.Fprintf(w, "%s\nGenerated: %s\nData Shape: %s\nForecast: %s\n",
		s.Title, s.Timestamp, s.Shape, FormatValues(s.Forecast))
	return err
}

// Export writes the report to path, creating parent directories
func (r *Reporter) Export(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	if err := r.Render(f); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

// FormatValues renders values as "[v1, v2]", or "None" for a nil slice.
// Whole numbers keep a trailing ".0".
func FormatValues(values []float64) string {
	if values == nil {
		return "None"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Banner prints the console banner shown when a pipeline run starts
func Banner(w io.Writer) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "Sales Forecasting & Analytics Pipeline")
	fmt.Fprintln(w, line)
}
