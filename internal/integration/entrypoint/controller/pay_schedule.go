// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paytrack/backend/internal/application/usecase/payschedule"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/integration/entrypoint/dto"
)

// PayScheduleController handles pay schedule endpoints.
type PayScheduleController struct {
	getUseCase    *payschedule.GetPayScheduleUseCase
	upsertUseCase *payschedule.UpsertPayScheduleUseCase
}

// NewPayScheduleController creates a new pay schedule controller instance.
func NewPayScheduleController(
	getUseCase *payschedule.GetPayScheduleUseCase,
	upsertUseCase *payschedule.UpsertPayScheduleUseCase,
) *PayScheduleController {
	return &PayScheduleController{
		getUseCase:    getUseCase,
		upsertUseCase: upsertUseCase,
	}
}

// Get handles GET /pay-schedule requests.
func (c *PayScheduleController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), payschedule.GetPayScheduleInput{
		UserID: userID,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPayScheduleResponse(output.Schedule))
}

// Upsert handles PUT /pay-schedule requests. A user has at most one schedule,
// so the handler creates or replaces it in place.
func (c *PayScheduleController) Upsert(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpsertPayScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPayFrequency),
		})
		return
	}

	lastPayDate, err := time.Parse("2006-01-02", req.LastPayDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid last_pay_date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidLastPayDate),
		})
		return
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), payschedule.UpsertPayScheduleInput{
		UserID:      userID,
		Frequency:   req.Frequency,
		LastPayDate: lastPayDate,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	// Created schedules and replaced schedules answer differently
	statusCode := http.StatusOK
	if output.Created {
		statusCode = http.StatusCreated
	}

	ctx.JSON(statusCode, dto.ToPayScheduleResponse(output.Schedule))
}

// handleScheduleError maps domain schedule errors onto HTTP responses.
func (c *PayScheduleController) handleScheduleError(ctx *gin.Context, err error) {
	var schErr *domainerror.ScheduleError
	if !errors.As(err, &schErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(scheduleErrorStatus(schErr.Code), dto.ErrorResponse{
		Error: schErr.Message,
		Code:  string(schErr.Code),
	})
}

func scheduleErrorStatus(code domainerror.ScheduleErrorCode) int {
	switch code {
	case domainerror.ErrCodePayScheduleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPayFrequency,
		domainerror.ErrCodeInvalidLastPayDate,
		domainerror.ErrCodeInvalidPeriodBounds:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
