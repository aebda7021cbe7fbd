// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

const (
	// MaxTransactionNameLength is the maximum allowed length for transaction names.
	MaxTransactionNameLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Notes       string
	IsRecurring bool
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	reportCache     adapter.ReportCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
// reportCache may be nil.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
	}
}

// Execute performs the transaction creation. The amount is stored as given;
// no sign convention is enforced.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate required fields
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"name is required",
			nil,
		)
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	// Validate name length
	if len(name) > MaxTransactionNameLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxTransactionNameLength),
			domainerror.ErrTransactionNameTooLong,
		)
	}

	// Validate notes length
	if len(input.Notes) > MaxNotesLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	// Validate category if provided; transactions may stay uncategorized
	var category *entity.BudgetCategory
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}

		// Verify category ownership
		if cat.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}

		category = cat
	}

	// Create transaction entity
	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		name,
		input.Amount,
		input.CategoryID,
		input.Notes,
		input.IsRecurring,
	)

	// Save transaction to database
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// The transaction may fall inside an analyzed period
	invalidateReports(ctx, uc.reportCache, input.UserID)

	// Build output
	output := &CreateTransactionOutput{
		Transaction: newTransactionOutput(transaction, category),
	}

	return output, nil
}

// invalidateReports drops the user's cached analysis reports after a mutation.
// Cache failures are logged, never surfaced.
func invalidateReports(ctx context.Context, cache adapter.ReportCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate cached reports", "userID", userID, "error", err)
	}
}
