package forecast

import (
	"errors"
	"fmt"
	"testing"
)

func TestTrainTestSplit(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	split, err := TrainTestSplit(data, 0.4)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	assertSequence(t, split.Train, []float64{1, 2, 3})
	assertSequence(t, split.Test, []float64{4, 5})
}

func TestTrainTestSplit_Completeness(t *testing.T) {
	testSizes := []float64{0, 0.1, 0.2, 0.25, 0.33, 0.5, 0.75, 0.9, 0.99}

	for _, n := range []int{0, 1, 2, 5, 12, 365} {
		data := generateSalesValues(n, int64(n))
		for _, ts := range testSizes {
			t.Run(fmt.Sprintf("n=%d/test_size=%v", n, ts), func(t *testing.T) {
				split, err := TrainTestSplit(data, ts)
				if err != nil {
					t.Fatalf("TrainTestSplit failed: %v", err)
				}
				if len(split.Train)+len(split.Test) != len(data) {
					t.Fatalf("partition sizes %d+%d do not add up to %d",
						len(split.Train), len(split.Test), len(data))
				}
				joined := append(append([]float64{}, split.Train...), split.Test...)
				for i := range data {
					if joined[i] != data[i] {
						t.Fatalf("index %d: reconstructed %v, original %v", i, joined[i], data[i])
					}
				}
			})
		}
	}
}

func TestTrainTestSplit_ZeroTestSize(t *testing.T) {
	split, err := TrainTestSplit([]float64{1, 2, 3}, 0)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	if len(split.Test) != 0 {
		t.Errorf("Expected empty test partition, got %v", split.Test)
	}
	if len(split.Train) != 3 {
		t.Errorf("Expected 3 training values, got %d", len(split.Train))
	}
}

func TestTrainTestSplit_DoesNotAliasInput(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	split, err := TrainTestSplit(data, 0.5)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	split.Train[0] = 100
	split.Test[0] = 100
	if data[0] != 1 || data[2] != 3 {
		t.Errorf("input was modified through the split: %v", data)
	}
}

func TestTrainTestSplit_InvalidTestSize(t *testing.T) {
	for _, ts := range []float64{-0.1, 1, 1.5} {
		_, err := TrainTestSplit([]float64{1, 2, 3}, ts)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("test_size %v: expected ErrInvalidParameter, got %v", ts, err)
		}
	}
}

func TestEvaluateRMSE(t *testing.T) {
	rmse, err := EvaluateRMSE([]float64{1, 2, 3}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("EvaluateRMSE failed: %v", err)
	}
	if rmse != 0 {
		t.Errorf("Expected RMSE 0, got %v", rmse)
	}

	rmse, err = EvaluateRMSE([]float64{100, 200, 300}, []float64{110, 190, 310})
	if err != nil {
		t.Fatalf("EvaluateRMSE failed: %v", err)
	}
	// sqrt((100 + 100 + 100) / 3) = 10
	if rmse != 10 {
		t.Errorf("RMSE calculation incorrect: got %v, expected 10", rmse)
	}
}

func TestEvaluateRMSE_Symmetry(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		a := generateSalesValues(30, seed)
		b := generateSalesValues(30, seed+100)

		ab, err := EvaluateRMSE(a, b)
		if err != nil {
			t.Fatalf("EvaluateRMSE failed: %v", err)
		}
		ba, err := EvaluateRMSE(b, a)
		if err != nil {
			t.Fatalf("EvaluateRMSE failed: %v", err)
		}
		if ab != ba {
			t.Errorf("seed %d: RMSE(a,b)=%v differs from RMSE(b,a)=%v", seed, ab, ba)
		}

		aa, _ := EvaluateRMSE(a, a)
		if aa != 0 {
			t.Errorf("seed %d: RMSE(a,a) = %v, expected 0", seed, aa)
		}
	}
}

func TestEvaluateRMSE_LengthMismatch(t *testing.T) {
	_, err := EvaluateRMSE([]float64{1, 2, 3}, []float64{1, 2})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestEvaluateRMSE_Empty(t *testing.T) {
	rmse, err := EvaluateRMSE(nil, []float64{})
	if err != nil {
		t.Fatalf("EvaluateRMSE failed: %v", err)
	}
	if rmse != 0 {
		t.Errorf("Expected 0 for empty sequences, got %v", rmse)
	}
}

func TestEvaluateMAEAndMAPE(t *testing.T) {
	actual := []float64{100, 200, 300}
	predicted := []float64{110, 190, 310}

	mae, err := EvaluateMAE(actual, predicted)
	if err != nil {
		t.Fatalf("EvaluateMAE failed: %v", err)
	}
	if mae != 10 {
		t.Errorf("MAE calculation incorrect: got %v, expected 10", mae)
	}

	mape, err := EvaluateMAPE(actual, predicted)
	if err != nil {
		t.Fatalf("EvaluateMAPE failed: %v", err)
	}
	// (0.1 + 0.05 + 0.0333) / 3 * 100 ≈ 6.1%
	if mape < 6 || mape > 6.2 {
		t.Errorf("MAPE calculation incorrect: got %v", mape)
	}

	mape, _ = EvaluateMAPE([]float64{0, 0}, []float64{1, 2})
	if mape != 0 {
		t.Errorf("MAPE with all-zero actuals should be 0, got %v", mape)
	}

	if _, err := EvaluateMAE([]float64{1}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch from MAE, got %v", err)
	}
	if _, err := EvaluateMAPE([]float64{1}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch from MAPE, got %v", err)
	}
}

func TestModelRegistry(t *testing.T) {
	// These models are registered via init() in the forecast package
	for _, name := range []string{"exponential", "sma", "linear"} {
		model, err := NewModel(name, generateLinearValues(20, 1, 0), DefaultConfig())
		if err != nil {
			t.Errorf("Model '%s' not registered: %v", name, err)
			continue
		}
		if model.Name() != name {
			t.Errorf("Model name mismatch: expected '%s', got '%s'", name, model.Name())
		}
		if !IsRegistered(name) {
			t.Errorf("IsRegistered(%q) = false", name)
		}
	}

	names := ListModels()
	if len(names) < 3 {
		t.Errorf("Expected at least 3 registered models, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("ListModels should be sorted, got %v", names)
		}
	}
}

func TestNewModel_Unknown(t *testing.T) {
	_, err := NewModel("unknown_model", []float64{1, 2, 3}, DefaultConfig())
	if err == nil {
		t.Error("Should return error for unknown model")
	}
	if IsRegistered("unknown_model") {
		t.Error("unknown_model should not be registered")
	}
}

func TestModelsDispatchThroughInterface(t *testing.T) {
	data := generateSalesValues(60, 7)

	for _, name := range ListModels() {
		t.Run(name, func(t *testing.T) {
			model, err := NewModel(name, data, DefaultConfig())
			if err != nil {
				t.Fatalf("NewModel failed: %v", err)
			}

			if model.Latest() != nil {
				t.Errorf("Latest should be nil before the first forecast")
			}

			for _, periods := range []int{1, 2, 12, 30} {
				values, err := model.Forecast(periods)
				if err != nil {
					t.Fatalf("Forecast(%d) failed: %v", periods, err)
				}
				if len(values) != periods {
					t.Errorf("Forecast(%d) returned %d values", periods, len(values))
				}
				assertSequence(t, model.Latest(), values)
			}

			if _, err := model.Forecast(0); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Forecast(0): expected ErrInvalidParameter, got %v", err)
			}
			if _, err := model.Forecast(-3); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Forecast(-3): expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestBase_LatestIsCopy(t *testing.T) {
	model, err := NewExponentialSmoothingModel([]float64{1, 2, 3}, 0.5, 0)
	if err != nil {
		t.Fatalf("NewExponentialSmoothingModel failed: %v", err)
	}

	values, err := model.Forecast(2)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	values[0] = -1

	latest := model.Latest()
	if latest[0] == -1 {
		t.Error("Latest should not share memory with the returned forecast")
	}
	latest[1] = -1
	if model.Latest()[1] == -1 {
		t.Error("Latest should return a fresh copy on every call")
	}
}

func TestBacktest(t *testing.T) {
	data := generateLinearValues(10, 2, 5)
	model, err := NewLinearTrendModel(data, 0.2)
	if err != nil {
		t.Fatalf("NewLinearTrendModel failed: %v", err)
	}

	eval, err := Backtest(model)
	if err != nil {
		t.Fatalf("Backtest failed: %v", err)
	}

	if eval.Train != 8 || eval.Test != 2 {
		t.Errorf("Expected 8/2 partition, got %d/%d", eval.Train, eval.Test)
	}
	if eval.Model != "linear" {
		t.Errorf("Expected model 'linear', got %q", eval.Model)
	}
	// A perfect line is extrapolated without error
	assertClose(t, "rmse", eval.RMSE, 0)
	assertClose(t, "mae", eval.MAE, 0)
	assertSequence(t, eval.Predictions, []float64{21, 23})
	assertSequence(t, model.Latest(), eval.Predictions)
}

func TestBacktest_EmptyTestPartition(t *testing.T) {
	model, err := NewExponentialSmoothingModel([]float64{1, 2, 3}, 0.3, 0)
	if err != nil {
		t.Fatalf("NewExponentialSmoothingModel failed: %v", err)
	}

	_, err = Backtest(model)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: bad alpha", ErrInvalidParameter), "InvalidParameterError"},
		{fmt.Errorf("%w: empty", ErrInsufficientData), "InsufficientDataError"},
		{fmt.Errorf("%w: 3 vs 2", ErrLengthMismatch), "LengthMismatchError"},
		{errors.New("boom"), "Error"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
