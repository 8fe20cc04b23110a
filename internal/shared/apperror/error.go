package apperror

import "fmt"

type AppError struct {
	Code       string   // Error code (e.g., INVALID_INPUT)
	Message    string   // User-friendly message
	HTTPStatus int      // HTTP status code
	Details    []string // Per-field messages for the response details list
	Err        error    // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails returns a copy of the error carrying field-level messages.
// The original sentinel stays untouched so it keeps working with errors.Is.
func (e *AppError) WithDetails(details []string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}
