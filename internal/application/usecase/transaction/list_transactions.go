// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Search      string
	Page        int
	Limit       int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID
	Category    *CategoryOutput
	Notes       string
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	// Build filter
	filter := adapter.TransactionFilter{
		UserID:      input.UserID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CategoryIDs: input.CategoryIDs,
		Search:      input.Search,
	}

	// Build pagination
	pagination := adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	}

	// Fetch transactions
	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	// Build output
	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}

	for i, txnWithCat := range result.Transactions {
		output.Transactions[i] = newTransactionOutput(txnWithCat.Transaction, txnWithCat.Category)
	}

	return output, nil
}

// newTransactionOutput maps a transaction and its optional category to the
// output shape shared by the transaction use cases.
func newTransactionOutput(txn *entity.Transaction, category *entity.BudgetCategory) *TransactionOutput {
	output := &TransactionOutput{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Date:        txn.Date,
		Name:        txn.Name,
		Amount:      txn.Amount,
		CategoryID:  txn.CategoryID,
		Notes:       txn.Notes,
		IsRecurring: txn.IsRecurring,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if category != nil {
		output.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
		}
	}

	return output
}
