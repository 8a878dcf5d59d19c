package forecast

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-9

// generateLinearValues creates test data with linear pattern: y = slope * x + intercept
func generateLinearValues(n int, slope, intercept float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = slope*float64(i) + intercept
	}
	return values
}

// generateSalesValues creates noisy values in the range of daily sales figures
func generateSalesValues(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(1000 + rng.Intn(4000))
	}
	return values
}

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func assertSequence(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
