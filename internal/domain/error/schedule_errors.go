// Package error defines domain-specific errors for the PayTrack application.
package error

import "errors"

// Pay schedule domain errors.
var (
	// ErrInvalidPayFrequency is returned when the pay frequency is not a recognized value.
	ErrInvalidPayFrequency = errors.New("invalid pay frequency")

	// ErrInvalidLastPayDate is returned when the last pay date is missing or malformed.
	ErrInvalidLastPayDate = errors.New("invalid last pay date")

	// ErrInvalidPeriodBounds is returned when a period's end date precedes its start date.
	ErrInvalidPeriodBounds = errors.New("invalid period bounds")

	// ErrPayScheduleNotFound is returned when no pay schedule exists for the user.
	ErrPayScheduleNotFound = errors.New("pay schedule not found")
)

// ScheduleErrorCode defines error codes for pay schedule errors.
// Format: SCH-XXYYYY where XX is category and YYYY is specific error.
type ScheduleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPayFrequency ScheduleErrorCode = "SCH-010001"
	ErrCodeInvalidLastPayDate  ScheduleErrorCode = "SCH-010002"
	ErrCodeInvalidPeriodBounds ScheduleErrorCode = "SCH-010003"

	// Lookup errors (02XXXX)
	ErrCodePayScheduleNotFound ScheduleErrorCode = "SCH-020001"
)

// ScheduleError represents a pay schedule error with code and message.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewScheduleError creates a new ScheduleError with the given code and message.
func NewScheduleError(code ScheduleErrorCode, message string, err error) *ScheduleError {
	return &ScheduleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
