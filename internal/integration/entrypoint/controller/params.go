// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/paytrack/backend/internal/domain/error"
	"github.com/paytrack/backend/internal/integration/entrypoint/dto"
	"github.com/paytrack/backend/internal/integration/entrypoint/middleware"
)

// requireUserID pulls the authenticated user ID out of the request context.
// It writes the 401 response itself and reports whether the ID was present.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses the :id path parameter as a UUID. It writes the 400
// response itself and reports whether parsing succeeded.
func parseIDParam(ctx *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + resource + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
