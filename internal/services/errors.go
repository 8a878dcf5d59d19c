// Package services provides the business logic layer between handlers, the CLI and the
// forecasting core.
package services

import (
	"errors"

	"github.com/soltixdb/salescast/internal/analytics/forecast"
)

// Error codes returned by services
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeLengthMismatch   = "LENGTH_MISMATCH"
	CodeInvalidMethod    = "INVALID_METHOD"
	CodeLoadFailed       = "LOAD_FAILED"
	CodeInvalidDataset   = "INVALID_DATASET"
	CodeReportFailed     = "REPORT_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`

	err error
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *ServiceError) Unwrap() error {
	return e.err
}

// IsClientError reports whether the error was caused by the caller's input
func (e *ServiceError) IsClientError() bool {
	return e.Code != CodeInternal && e.Code != CodeReportFailed
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// wrapError attaches a code to err, keeping it reachable through errors.Is
func wrapError(code string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: err.Error(), err: err}
}

// fromForecastError maps forecast package errors to service codes
func fromForecastError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	switch {
	case errors.Is(err, forecast.ErrInvalidParameter):
		return wrapError(CodeInvalidParameter, err)
	case errors.Is(err, forecast.ErrInsufficientData):
		return wrapError(CodeInsufficientData, err)
	case errors.Is(err, forecast.ErrLengthMismatch):
		return wrapError(CodeLengthMismatch, err)
	default:
		return wrapError(CodeInternal, err)
	}
}

// ErrorKind returns the display name of an error for CLI output
func ErrorKind(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case CodeInvalidMethod:
			return "InvalidMethodError"
		case CodeLoadFailed:
			return "LoadError"
		case CodeInvalidDataset:
			return "DatasetError"
		case CodeReportFailed:
			return "ReportError"
		}
	}
	return forecast.ErrorKind(err)
}
