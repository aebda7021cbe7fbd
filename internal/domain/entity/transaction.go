// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger entry in the PayTrack system.
// Amount is signed and the stored sign convention is not assumed: expenses
// may arrive negative or positive depending on the importing source, so
// spend aggregation always operates on the magnitude.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID // nil means uncategorized
	Notes       string
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	name string,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	notes string,
	isRecurring bool,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Name:        name,
		Amount:      amount,
		CategoryID:  categoryID,
		Notes:       notes,
		IsRecurring: isRecurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *BudgetCategory
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
