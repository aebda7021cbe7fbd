// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paytrack/backend/internal/application/usecase/advice"
	"github.com/paytrack/backend/internal/application/usecase/analysis"
	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/integration/entrypoint/dto"
)

// defaultAnalysisPeriods is the number of completed pay periods analyzed when
// the request does not say otherwise.
const defaultAnalysisPeriods = "6"

// AnalysisController handles overspending analysis endpoints.
type AnalysisController struct {
	runUseCase     *analysis.RunOverspendingAnalysisUseCase
	adviceUseCase  *advice.GenerateAdviceUseCase
	digestUseCase  *analysis.QueueDigestUseCase
	historyUseCase *analysis.ListHistoryUseCase
}

// NewAnalysisController creates a new analysis controller instance.
func NewAnalysisController(
	runUseCase *analysis.RunOverspendingAnalysisUseCase,
	adviceUseCase *advice.GenerateAdviceUseCase,
	digestUseCase *analysis.QueueDigestUseCase,
	historyUseCase *analysis.ListHistoryUseCase,
) *AnalysisController {
	return &AnalysisController{
		runUseCase:     runUseCase,
		adviceUseCase:  adviceUseCase,
		digestUseCase:  digestUseCase,
		historyUseCase: historyUseCase,
	}
}

// Report handles GET /analysis/overspending requests.
func (c *AnalysisController) Report(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	periods, asOf, ok := c.parseAnalysisWindow(ctx)
	if !ok {
		return
	}

	output, err := c.runUseCase.Execute(ctx.Request.Context(), analysis.RunOverspendingAnalysisInput{
		UserID:  userID,
		Periods: periods,
		AsOf:    asOf,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverspendingReportResponse(output))
}

// Advice handles GET /analysis/overspending/advice requests.
func (c *AnalysisController) Advice(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	periods, asOf, ok := c.parseAnalysisWindow(ctx)
	if !ok {
		return
	}

	output, err := c.adviceUseCase.Execute(ctx.Request.Context(), advice.GenerateAdviceInput{
		UserID:  userID,
		Periods: periods,
		AsOf:    asOf,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAdviceResponse(output))
}

// QueueDigest handles POST /analysis/overspending/digest requests. The
// analysis runs synchronously; the email is queued for the background worker.
func (c *AnalysisController) QueueDigest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	periods, asOf, ok := c.parseAnalysisWindow(ctx)
	if !ok {
		return
	}

	output, err := c.digestUseCase.Execute(ctx.Request.Context(), analysis.QueueDigestInput{
		UserID:  userID,
		Periods: periods,
		AsOf:    asOf,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.ToQueueDigestResponse(output))
}

// History handles GET /analysis/overspending/history requests.
func (c *AnalysisController) History(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	// Parse limit (use case applies default and ceiling)
	limit := 0
	if rawLimit := ctx.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), analysis.ListHistoryInput{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportHistoryResponse(output.Snapshots))
}

// parseAnalysisWindow parses the periods and as_of query parameters shared by
// the analysis endpoints. It writes the error response itself and reports
// whether parsing succeeded. When as_of is absent the analysis runs against
// the current date.
func (c *AnalysisController) parseAnalysisWindow(ctx *gin.Context) (int, time.Time, bool) {
	periods, err := strconv.Atoi(ctx.DefaultQuery("periods", defaultAnalysisPeriods))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid periods parameter",
			Code:  string(domainerror.ErrCodeInvalidPeriodsRequested),
		})
		return 0, time.Time{}, false
	}

	asOf := time.Now().UTC()
	if rawAsOf := ctx.Query("as_of"); rawAsOf != "" {
		asOf, err = time.Parse("2006-01-02", rawAsOf)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid as_of format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidAsOfDate),
			})
			return 0, time.Time{}, false
		}
	}

	return periods, asOf, true
}

// handleAnalysisError maps analysis, advice, digest, and lookup errors onto
// HTTP responses.
func (c *AnalysisController) handleAnalysisError(ctx *gin.Context, err error) {
	var anlErr *domainerror.AnalysisError
	if errors.As(err, &anlErr) {
		ctx.JSON(analysisErrorStatus(anlErr.Code), dto.ErrorResponse{
			Error: anlErr.Message,
			Code:  string(anlErr.Code),
		})
		return
	}

	var advErr *domainerror.AdviceError
	if errors.As(err, &advErr) {
		ctx.JSON(adviceErrorStatus(advErr.Code), dto.ErrorResponse{
			Error: advErr.Message,
			Code:  string(advErr.Code),
		})
		return
	}

	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		statusCode := http.StatusInternalServerError
		if emailErr.Code == domainerror.ErrCodeNotificationsDisabled {
			statusCode = http.StatusConflict
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := http.StatusInternalServerError
		if authErr.Code == domainerror.ErrCodeUserNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func analysisErrorStatus(code domainerror.AnalysisErrorCode) int {
	switch code {
	case domainerror.ErrCodeScheduleNotConfigured:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPeriodsRequested,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidAsOfDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeScheduleNotConverged:
		return http.StatusConflict
	case domainerror.ErrCodeNoPeriodsToSummarize,
		domainerror.ErrCodeAnalysisInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func adviceErrorStatus(code domainerror.AdviceErrorCode) int {
	switch code {
	case domainerror.ErrCodeAdviceNotConfigured:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAdviceRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAdviceGenerationFailed,
		domainerror.ErrCodeAdviceEmptyResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
