// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/usecase/transaction"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests. Date, category, search, and
// pagination filters all arrive as query parameters; unparseable filter
// values are ignored rather than rejected.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if raw := ctx.Query("start_date"); raw != "" {
		if startDate, err := time.Parse("2006-01-02", raw); err == nil {
			input.StartDate = &startDate
		}
	}
	if raw := ctx.Query("end_date"); raw != "" {
		if endDate, err := time.Parse("2006-01-02", raw); err == nil {
			input.EndDate = &endDate
		}
	}

	// category_id accepts a comma separated list
	if raw := ctx.Query("category_id"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(part)); err == nil {
				input.CategoryIDs = append(input.CategoryIDs, id)
			}
		}
	}

	if raw := ctx.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			input.Page = page
		}
	}
	if raw := ctx.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transactions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, ok := c.parseTransactionDate(ctx, req.Date)
	if !ok {
		return
	}

	categoryID, ok := c.parseCategoryID(ctx, req.CategoryID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        date,
		Name:        req.Name,
		Amount:      decimal.NewFromFloat(req.Amount),
		CategoryID:  categoryID,
		Notes:       req.Notes,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Name:          req.Name,
		Notes:         req.Notes,
		IsRecurring:   req.IsRecurring,
		ClearCategory: req.ClearCategory,
	}

	if req.Date != nil {
		date, ok := c.parseTransactionDate(ctx, *req.Date)
		if !ok {
			return
		}
		input.Date = &date
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}

	categoryID, ok := c.parseCategoryID(ctx, req.CategoryID)
	if !ok {
		return
	}
	input.CategoryID = categoryID

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseTransactionDate parses a YYYY-MM-DD transaction date. It writes the
// 400 response itself and reports whether parsing succeeded.
func (c *TransactionController) parseTransactionDate(ctx *gin.Context, raw string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return time.Time{}, false
	}
	return date, true
}

// parseCategoryID parses an optional category reference from a request body.
// A nil or empty value means the transaction stays uncategorized.
func (c *TransactionController) parseCategoryID(ctx *gin.Context, raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return nil, false
	}
	return &id, true
}

// handleTransactionError maps domain transaction errors onto HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(transactionErrorStatus(txnErr.Code), dto.ErrorResponse{
		Error: txnErr.Message,
		Code:  string(txnErr.Code),
	})
}

func transactionErrorStatus(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeTransactionNameTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
