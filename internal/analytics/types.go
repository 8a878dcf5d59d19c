// Package analytics provides descriptive statistics and the shared time-series types
// used by the dataset, forecast and report packages.
package analytics

import (
	"math"
	"time"
)

// TimeSeriesPoint represents a single time-series data point with time and value.
type TimeSeriesPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// TimeSeriesData represents a collection of time-series data points
type TimeSeriesData []TimeSeriesPoint

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the times from the time series
func (ts TimeSeriesData) Times() []time.Time {
	times := make([]time.Time, len(ts))
	for i, p := range ts {
		times[i] = p.Time
	}
	return times
}

// Len returns the number of data points
func (ts TimeSeriesData) Len() int {
	return len(ts)
}

// Mean calculates the mean of all values
func (ts TimeSeriesData) Mean() float64 {
	return mean(finite(ts.Values()))
}

// StdDev calculates the sample standard deviation of all values
func (ts TimeSeriesData) StdDev() float64 {
	return stdDev(finite(ts.Values()))
}

// finite returns the values that are neither NaN nor infinite
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
