package forecast

import "fmt"

// MovingAverageModel forecasts with a trailing simple moving average. Each projected
// value becomes part of the window for the next one.
type MovingAverageModel struct {
	*Base
	window int
}

// NewMovingAverageModel creates a moving average model with the given window
func NewMovingAverageModel(data []float64, window int, testSize float64) (*MovingAverageModel, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: window_size must be at least 1, got %d", ErrInvalidParameter, window)
	}

	base, err := NewBase(data, testSize)
	if err != nil {
		return nil, err
	}

	return &MovingAverageModel{Base: base, window: window}, nil
}

func init() {
	RegisterModel("sma", func(data []float64, config Config) (Model, error) {
		return NewMovingAverageModel(data, config.WindowSize, config.TestSize)
	})
}

// Name returns the model name
func (m *MovingAverageModel) Name() string {
	return "sma"
}

// Window returns the moving average window
func (m *MovingAverageModel) Window() int {
	return m.window
}

// Forecast generates periods values from the trailing window of the training partition
func (m *MovingAverageModel) Forecast(periods int) ([]float64, error) {
	if err := validatePeriods(periods); err != nil {
		return nil, err
	}

	train := m.TrainTestSplit().Train
	if len(train) < m.window {
		return nil, fmt.Errorf("%w: window_size %d exceeds training partition of %d",
			ErrInsufficientData, m.window, len(train))
	}

	// Rolling buffer holds the last window values, observed or forecast.
	buf := make([]float64, m.window)
	copy(buf, train[len(train)-m.window:])
	sum := 0.0
	for _, v := range buf {
		sum += v
	}

	future := make([]float64, periods)
	head := 0
	for k := 0; k < periods; k++ {
		next := sum / float64(m.window)
		future[k] = next

		sum += next - buf[head]
		buf[head] = next
		head = (head + 1) % m.window
	}

	m.store(future)
	return future, nil
}
