package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// MethodsResponse lists the registered forecast methods
type MethodsResponse struct {
	Methods []string `json:"methods"`
	Default string   `json:"default"`
}

// ForecastEvaluation is the backtest section of a forecast response
type ForecastEvaluation struct {
	Actual    []float64 `json:"actual"`
	Predicted []float64 `json:"predicted"`
	RMSE      float64   `json:"rmse"`
	MAE       float64   `json:"mae"`
	MAPE      float64   `json:"mape"`
}

// ForecastResponse represents a forecast result
type ForecastResponse struct {
	ID          string              `json:"id"`
	Method      string              `json:"method"`
	Periods     int                 `json:"periods"`
	Forecast    []float64           `json:"forecast"`
	TrainSize   int                 `json:"train_size"`
	TestSize    int                 `json:"test_size"`
	Evaluation  *ForecastEvaluation `json:"evaluation,omitempty"`
	GeneratedAt string              `json:"generated_at"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
