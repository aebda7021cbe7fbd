// Package error defines domain-specific errors for the PayTrack application.
package error

import "errors"

// Savings advice domain errors.
var (
	// ErrAdviceServiceNotConfigured is returned when no AI API key is configured.
	ErrAdviceServiceNotConfigured = errors.New("advice service not configured")

	// ErrAdviceGenerationFailed is returned when the AI provider fails to produce advice.
	ErrAdviceGenerationFailed = errors.New("advice generation failed")

	// ErrAdviceRateLimited is returned when the AI provider rejects the request for quota reasons.
	ErrAdviceRateLimited = errors.New("advice service rate limited")

	// ErrAdviceEmptyResponse is returned when the AI provider returns no usable content.
	ErrAdviceEmptyResponse = errors.New("advice service returned empty response")
)

// AdviceErrorCode defines error codes for savings advice errors.
// Format: ADV-XXYYYY where XX is category and YYYY is specific error.
type AdviceErrorCode string

const (
	// Availability errors (01XXXX)
	ErrCodeAdviceNotConfigured AdviceErrorCode = "ADV-010001"
	ErrCodeAdviceRateLimited   AdviceErrorCode = "ADV-010002"

	// Generation errors (02XXXX)
	ErrCodeAdviceGenerationFailed AdviceErrorCode = "ADV-020001"
	ErrCodeAdviceEmptyResponse    AdviceErrorCode = "ADV-020002"
)

// AdviceError represents a savings advice error with code and message.
type AdviceError struct {
	Code    AdviceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdviceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdviceError) Unwrap() error {
	return e.Err
}

// NewAdviceError creates a new AdviceError with the given code and message.
func NewAdviceError(code AdviceErrorCode, message string, err error) *AdviceError {
	return &AdviceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
