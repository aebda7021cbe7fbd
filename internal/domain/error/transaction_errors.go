// Package error defines domain-specific errors for the PayTrack application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category does not exist.
	ErrCategoryNotFoundForTransaction = errors.New("category not found for transaction")

	// ErrCategoryNotOwnedByUser is returned when the referenced category belongs to another user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrTransactionNameTooLong is returned when the transaction name exceeds the maximum length.
	ErrTransactionNameTooLong = errors.New("transaction name too long")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrInvalidTransactionDate is returned when the transaction date is missing or malformed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010001"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010002"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010003"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeTxnCategoryNotOwned      TransactionErrorCode = "TXN-010005"
	ErrCodeTransactionNameTooLong   TransactionErrorCode = "TXN-010006"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010007"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010008"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
