// Package models holds the HTTP request and response bodies.
package models

// ForecastRequest is the body of POST /v1/forecast.
// Omitted fields fall back to the server's forecast defaults; values that are present,
// including a zero periods, are passed through to the model.
type ForecastRequest struct {
	Values     []float64 `json:"values" validate:"required,min=1"`
	Method     string    `json:"method" validate:"omitempty,max=32"`
	Periods    *int      `json:"periods" validate:"omitempty,lte=3650"`
	Alpha      *float64  `json:"alpha" validate:"omitempty,gt=0,lte=1"`
	TestSize   *float64  `json:"test_size" validate:"omitempty,gte=0,lt=1"`
	WindowSize int       `json:"window_size" validate:"gte=0"`
	Source     string    `json:"source" validate:"max=128"`
}
