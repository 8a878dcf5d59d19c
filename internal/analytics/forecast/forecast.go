// Package forecast implements the forecasting models used by the sales pipeline.
//
// Every model works on a single ordered sequence of float64 values. The sequence is split
// into a training prefix and a test suffix; models fit the training prefix and project
// future values. Models register themselves by name so callers never depend on a
// concrete type.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

var (
	// ErrInvalidParameter is returned for out-of-range alpha, test size, window or horizon.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInsufficientData is returned when a partition is too short to fit a model.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrLengthMismatch is returned when error metrics receive sequences of different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
)

// ErrorKind returns a display name for errors produced by this package.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidParameter):
		return "InvalidParameterError"
	case errors.Is(err, ErrInsufficientData):
		return "InsufficientDataError"
	case errors.Is(err, ErrLengthMismatch):
		return "LengthMismatchError"
	default:
		return "Error"
	}
}

// Config holds model parameters
type Config struct {
	Alpha      float64 // Smoothing factor, must be in (0,1]
	TestSize   float64 // Fraction of data held out for testing, must be in [0,1)
	WindowSize int     // Window for moving average models
}

// DefaultConfig returns default model configuration
func DefaultConfig() Config {
	return Config{
		Alpha:      0.3,
		TestSize:   0.2,
		WindowSize: 7,
	}
}

// Split is a contiguous train/test partition of a sequence.
type Split struct {
	Train []float64
	Test  []float64
}

// TrainTestSplit partitions data at floor(len(data) * (1 - testSize)).
// The input is never modified; both partitions are fresh copies.
func TrainTestSplit(data []float64, testSize float64) (Split, error) {
	if err := validateTestSize(testSize); err != nil {
		return Split{}, err
	}

	idx := int(float64(len(data)) * (1 - testSize))
	if idx > len(data) {
		idx = len(data)
	}

	train := make([]float64, idx)
	copy(train, data[:idx])
	test := make([]float64, len(data)-idx)
	copy(test, data[idx:])

	return Split{Train: train, Test: test}, nil
}

func validateTestSize(testSize float64) error {
	if math.IsNaN(testSize) || testSize < 0 || testSize >= 1 {
		return fmt.Errorf("%w: test_size must be in [0,1), got %v", ErrInvalidParameter, testSize)
	}
	return nil
}

func validatePeriods(periods int) error {
	if periods <= 0 {
		return fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidParameter, periods)
	}
	return nil
}

// Model is implemented by every forecasting strategy.
type Model interface {
	// Name returns the registered model name
	Name() string
	// Forecast returns exactly periods values following the last training observation
	Forecast(periods int) ([]float64, error)
	// TrainTestSplit partitions the model input using its configured test size
	TrainTestSplit() Split
	// Latest returns a copy of the most recent forecast, or nil
	Latest() []float64
}

// Base carries the input sequence, the test size and the latest forecast.
// Concrete models embed *Base and implement Name and Forecast.
type Base struct {
	data     []float64
	testSize float64

	mu     sync.RWMutex
	latest []float64
}

// NewBase validates testSize and keeps a private copy of data.
func NewBase(data []float64, testSize float64) (*Base, error) {
	if err := validateTestSize(testSize); err != nil {
		return nil, err
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return &Base{data: cp, testSize: testSize}, nil
}

// Len returns the number of input observations
func (b *Base) Len() int {
	return len(b.data)
}

// TestSize returns the configured test fraction
func (b *Base) TestSize() float64 {
	return b.testSize
}

// TrainTestSplit recomputes the partition on every call.
func (b *Base) TrainTestSplit() Split {
	// testSize was validated in NewBase
	split, _ := TrainTestSplit(b.data, b.testSize)
	return split
}

// Latest returns a copy of the last stored forecast.
func (b *Base) Latest() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.latest == nil {
		return nil
	}
	out := make([]float64, len(b.latest))
	copy(out, b.latest)
	return out
}

// store replaces the latest forecast; previous results are dropped.
func (b *Base) store(values []float64) {
	cp := make([]float64, len(values))
	copy(cp, values)

	b.mu.Lock()
	b.latest = cp
	b.mu.Unlock()
}

// Factory builds a model for data with the given configuration
type Factory func(data []float64, config Config) (Model, error)

var (
	registryMu    sync.RWMutex
	modelRegistry = make(map[string]Factory)
)

// RegisterModel adds a model factory to the registry
func RegisterModel(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	modelRegistry[name] = factory
}

// NewModel builds a registered model by name
func NewModel(name string, data []float64, config Config) (Model, error) {
	registryMu.RLock()
	factory, ok := modelRegistry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return factory(data, config)
}

// IsRegistered reports whether a model name is known
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := modelRegistry[name]
	return ok
}

// ListModels returns registered model names in sorted order
func ListModels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(modelRegistry))
	for name := range modelRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
