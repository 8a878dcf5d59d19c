package forecast

import "fmt"

// LinearTrendModel fits an ordinary least squares line to the training partition
// and extrapolates it.
type LinearTrendModel struct {
	*Base
}

// NewLinearTrendModel creates a linear trend model
func NewLinearTrendModel(data []float64, testSize float64) (*LinearTrendModel, error) {
	base, err := NewBase(data, testSize)
	if err != nil {
		return nil, err
	}
	return &LinearTrendModel{Base: base}, nil
}

func init() {
	RegisterModel("linear", func(data []float64, config Config) (Model, error) {
		return NewLinearTrendModel(data, config.TestSize)
	})
}

// Name returns the model name
func (m *LinearTrendModel) Name() string {
	return "linear"
}

// Fit returns the slope and intercept of the least squares line over train,
// using the observation index as x.
func Fit(train []float64) (slope, intercept float64, err error) {
	if len(train) < 2 {
		return 0, 0, fmt.Errorf("%w: linear trend needs at least 2 training values, have %d",
			ErrInsufficientData, len(train))
	}

	n := float64(len(train))
	sumX, sumY, sumXY, sumX2 := 0.0, 0.0, 0.0, 0.0
	for i, y := range train {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	// Non-zero for n >= 2 since x is 0..n-1
	denominator := n*sumX2 - sumX*sumX
	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}

// Forecast extrapolates the fitted line for periods steps after the training partition
func (m *LinearTrendModel) Forecast(periods int) ([]float64, error) {
	if err := validatePeriods(periods); err != nil {
		return nil, err
	}

	train := m.TrainTestSplit().Train
	slope, intercept, err := Fit(train)
	if err != nil {
		return nil, err
	}

	future := make([]float64, periods)
	for k := range future {
		future[k] = intercept + slope*float64(len(train)+k)
	}

	m.store(future)
	return future, nil
}
