package forecast

import (
	"fmt"
	"math"
)

// ExponentialSmoothingModel implements single exponential smoothing over the
// training partition.
type ExponentialSmoothingModel struct {
	*Base
	alpha float64
}

// NewExponentialSmoothingModel creates a model for data. alpha must be in (0,1]
// and testSize in [0,1).
func NewExponentialSmoothingModel(data []float64, alpha, testSize float64) (*ExponentialSmoothingModel, error) {
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: alpha must be in (0,1], got %v", ErrInvalidParameter, alpha)
	}

	base, err := NewBase(data, testSize)
	if err != nil {
		return nil, err
	}

	return &ExponentialSmoothingModel{Base: base, alpha: alpha}, nil
}

func init() {
	RegisterModel("exponential", func(data []float64, config Config) (Model, error) {
		return NewExponentialSmoothingModel(data, config.Alpha, config.TestSize)
	})
}

// Name returns the model name
func (m *ExponentialSmoothingModel) Name() string {
	return "exponential"
}

// Alpha returns the smoothing factor
func (m *ExponentialSmoothingModel) Alpha() float64 {
	return m.alpha
}

// Smooth returns the smoothed training sequence.
//
// Each smoothed value combines the previous raw observation with the previous smoothed
// value: s[i] = alpha*x[i-1] + (1-alpha)*s[i-1], with s[0] = x[0]. The one-step lag is
// part of the output contract.
func Smooth(train []float64, alpha float64) ([]float64, error) {
	if len(train) == 0 {
		return nil, fmt.Errorf("%w: training partition is empty", ErrInsufficientData)
	}

	smoothed := make([]float64, len(train))
	smoothed[0] = train[0]
	for i := 1; i < len(train); i++ {
		smoothed[i] = alpha*train[i-1] + (1-alpha)*smoothed[i-1]
	}
	return smoothed, nil
}

// Forecast smooths the training partition and projects periods values from the last
// smoothed value.
//
// The projection applies alpha*f[k-1] + (1-alpha)*f[k-1], which references the same
// prior value twice, so the forecast stays flat after the first step. Output
// compatibility depends on evaluating it exactly this way.
func (m *ExponentialSmoothingModel) Forecast(periods int) ([]float64, error) {
	if err := validatePeriods(periods); err != nil {
		return nil, err
	}

	split := m.TrainTestSplit()
	smoothed, err := Smooth(split.Train, m.alpha)
	if err != nil {
		return nil, err
	}

	future := make([]float64, periods)
	future[0] = smoothed[len(smoothed)-1]
	for k := 1; k < periods; k++ {
		future[k] = m.alpha*future[k-1] + (1-m.alpha)*future[k-1]
	}

	m.store(future)
	return future, nil
}
