// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/paytrack/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Amount      float64 `json:"amount" binding:"required"`
	CategoryID  *string `json:"category_id,omitempty"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	IsRecurring bool    `json:"is_recurring,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string  `json:"date,omitempty"`
	Name          *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *float64 `json:"amount,omitempty"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ClearCategory bool     `json:"clear_category,omitempty"`
	Notes         *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	IsRecurring   *bool    `json:"is_recurring,omitempty"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	UserID      string                       `json:"user_id"`
	Date        string                       `json:"date"`
	Name        string                       `json:"name"`
	Amount      string                       `json:"amount"`
	CategoryID  *string                      `json:"category_id,omitempty"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	Notes       string                       `json:"notes"`
	IsRecurring bool                         `json:"is_recurring"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID.String(),
		UserID:      txn.UserID.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Name:        txn.Name,
		Amount:      txn.Amount.String(),
		Notes:       txn.Notes,
		IsRecurring: txn.IsRecurring,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if txn.CategoryID != nil {
		categoryIDStr := txn.CategoryID.String()
		response.CategoryID = &categoryIDStr
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
		}
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
