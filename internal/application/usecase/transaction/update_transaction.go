// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Name          *string
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove category
	Notes         *string
	IsRecurring   *bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	reportCache     adapter.ReportCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
// reportCache may be nil.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	// Find the existing transaction
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	// Check if user is authorized to update this transaction
	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	// Update fields if provided
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionDate,
				"date must be a valid calendar date",
				domainerror.ErrInvalidTransactionDate,
			)
		}
		transaction.Date = *input.Date
	}

	if input.Name != nil {
		if len(*input.Name) > MaxTransactionNameLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNameTooLong,
				fmt.Sprintf("name must not exceed %d characters", MaxTransactionNameLength),
				domainerror.ErrTransactionNameTooLong,
			)
		}
		transaction.Name = *input.Name
	}

	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}

	// Handle category update
	var category *entity.BudgetCategory
	if input.ClearCategory {
		transaction.CategoryID = nil
	} else if input.CategoryID != nil {
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

		transaction.CategoryID = input.CategoryID
		category = cat
	} else if transaction.CategoryID != nil {
		// Load existing category for response
		cat, err := uc.categoryRepo.FindByID(ctx, *transaction.CategoryID)
		if err == nil {
			category = cat
		}
	}

	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNotesTooLong,
				fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
				domainerror.ErrNotesTooLong,
			)
		}
		transaction.Notes = *input.Notes
	}

	if input.IsRecurring != nil {
		transaction.IsRecurring = *input.IsRecurring
	}

	// Update timestamp
	transaction.UpdatedAt = time.Now().UTC()

	// Save changes
	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	// Date, amount, and category changes all move analysis results
	invalidateReports(ctx, uc.reportCache, input.UserID)

	// Build output
	output := &UpdateTransactionOutput{
		Transaction: newTransactionOutput(transaction, category),
	}

	return output, nil
}
