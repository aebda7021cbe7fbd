// Package error defines domain-specific errors for the PayTrack application.
package error

import "errors"

// Overspending analysis domain errors.
var (
	// ErrPayScheduleNotConfigured is returned when the user has no pay schedule set up.
	ErrPayScheduleNotConfigured = errors.New("pay schedule not configured")

	// ErrInvalidPeriodsRequested is returned when the requested period count is not positive.
	ErrInvalidPeriodsRequested = errors.New("periods requested must be a positive integer")

	// ErrScheduleNotConverged is returned when no completed period can be derived
	// from the schedule anchor within the iteration ceiling.
	ErrScheduleNotConverged = errors.New("pay schedule anchor does not produce a completed period")

	// ErrNoPeriodsToSummarize is returned when the summarizer receives zero analyzed periods.
	ErrNoPeriodsToSummarize = errors.New("no periods to summarize")

	// ErrInvalidAsOfDate is returned when the analysis reference date is missing.
	ErrInvalidAsOfDate = errors.New("as-of date is required")
)

// AnalysisErrorCode defines error codes for overspending analysis errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalysisErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriodsRequested AnalysisErrorCode = "ANL-010001"
	ErrCodeInvalidFrequency        AnalysisErrorCode = "ANL-010002"
	ErrCodeScheduleNotConverged    AnalysisErrorCode = "ANL-010003"
	ErrCodeInvalidAsOfDate         AnalysisErrorCode = "ANL-010004"

	// Setup errors (02XXXX)
	ErrCodeScheduleNotConfigured AnalysisErrorCode = "ANL-020001"

	// Internal errors (99XXXX)
	ErrCodeNoPeriodsToSummarize AnalysisErrorCode = "ANL-990001"
	ErrCodeAnalysisInternal     AnalysisErrorCode = "ANL-990002"
)

// AnalysisError represents an overspending analysis error with code and message.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError with the given code and message.
func NewAnalysisError(code AnalysisErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
