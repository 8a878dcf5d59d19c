package forecast

import (
	"fmt"
	"math"
)

func checkLengths(actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return fmt.Errorf("%w: actual has %d values, predicted has %d",
			ErrLengthMismatch, len(actual), len(predicted))
	}
	return nil
}

// EvaluateRMSE calculates Root Mean Squared Error.
// Two empty sequences have an RMSE of 0.
func EvaluateRMSE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return 0, nil
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual))), nil
}

// EvaluateMAE calculates Mean Absolute Error
func EvaluateMAE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return 0, nil
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual)), nil
}

// EvaluateMAPE calculates Mean Absolute Percentage Error.
// Observations with an actual value of zero are skipped.
func EvaluateMAPE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}
	return (sum / float64(count)) * 100, nil
}

// Evaluation is the result of scoring a model against its test partition
type Evaluation struct {
	Model       string    `json:"model"`
	Train       int       `json:"train_size"`
	Test        int       `json:"test_size"`
	Predictions []float64 `json:"predictions"`
	RMSE        float64   `json:"rmse"`
	MAE         float64   `json:"mae"`
	MAPE        float64   `json:"mape"`
}

// Backtest forecasts len(test) periods and scores them against the test partition.
// Like any Forecast call it replaces the model's latest result.
func Backtest(m Model) (*Evaluation, error) {
	split := m.TrainTestSplit()
	if len(split.Test) == 0 {
		return nil, fmt.Errorf("%w: test partition is empty", ErrInsufficientData)
	}

	predicted, err := m.Forecast(len(split.Test))
	if err != nil {
		return nil, err
	}

	rmse, err := EvaluateRMSE(split.Test, predicted)
	if err != nil {
		return nil, err
	}
	mae, err := EvaluateMAE(split.Test, predicted)
	if err != nil {
		return nil, err
	}
	mape, err := EvaluateMAPE(split.Test, predicted)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		Model:       m.Name(),
		Train:       len(split.Train),
		Test:        len(split.Test),
		Predictions: predicted,
		RMSE:        rmse,
		MAE:         mae,
		MAPE:        mape,
	}, nil
}
