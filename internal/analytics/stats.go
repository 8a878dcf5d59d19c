package analytics

import (
	"errors"
	"math"
	"sort"
)

// ErrNoData is returned when a column has no finite values to describe
var ErrNoData = errors.New("no finite values")

// Statistics summarises one numeric column. Missing values (NaN) are skipped.
type Statistics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe calculates count, mean, median, sample standard deviation, min and max.
// A single value has a standard deviation of 0.
func Describe(values []float64) (Statistics, error) {
	vals := finite(values)
	if len(vals) == 0 {
		return Statistics{}, ErrNoData
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Statistics{
		Count:  n,
		Mean:   mean(vals),
		Median: median,
		Std:    stdDev(vals),
		Min:    sorted[0],
		Max:    sorted[n-1],
	}, nil
}

// Pearson returns the correlation coefficient of x and y using the pairs where both
// values are finite. It returns NaN when fewer than two pairs remain or either side
// has zero variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	var xs, ys []float64
	for i := 0; i < n; i++ {
		if isFinite(x[i]) && isFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}

	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CorrelationMatrix holds pairwise Pearson coefficients between named columns
type CorrelationMatrix struct {
	Names  []string    `json:"names"`
	Values [][]float64 `json:"values"`
}

// Correlate builds the correlation matrix for columns in the order given by names.
// Every name must have an entry in columns.
func Correlate(names []string, columns map[string][]float64) CorrelationMatrix {
	m := CorrelationMatrix{
		Names:  append([]string(nil), names...),
		Values: make([][]float64, len(names)),
	}

	for i := range names {
		m.Values[i] = make([]float64, len(names))
	}
	for i, a := range names {
		for j := i; j < len(names); j++ {
			r := Pearson(columns[a], columns[names[j]])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// Get returns the coefficient for a pair of column names
func (m CorrelationMatrix) Get(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, name := range m.Names {
		if name == a {
			i = k
		}
		if name == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}
