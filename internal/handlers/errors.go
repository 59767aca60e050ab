package handlers

import (
	"errors"
	"net/http"

	"canvas_shop_backend/internal/clients"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors to API errors. message is shown for 500s.
func respondServiceError(c *gin.Context, err error, message string) {
	var statusErr *clients.StatusError
	switch {
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found.", err.Error()))
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidOrderStatus):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed.", err.Error()))
	case errors.Is(err, services.ErrTransitionNotAllowed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Status change not allowed for your role.", err.Error()))
	case errors.Is(err, services.ErrDuplicate), errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrAWBExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Conflict with existing data.", err.Error()))
	case errors.Is(err, services.ErrNoAWB):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Order has no AWB yet.", err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
	case errors.Is(err, services.ErrUserInactive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Account is disabled.", ""))
	case errors.Is(err, services.ErrCheckoutTimeout), errors.Is(err, clients.ErrTimeout):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusGatewayTimeout, utils.ErrCodeTimeout, "The request took too long. Please try again.", err.Error()))
	case errors.Is(err, clients.ErrCourierNotConfigured), errors.Is(err, clients.ErrPhotosNotConfigured), errors.Is(err, services.ErrPhotosUnavailable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeNotConfigured, "Integration is not configured.", err.Error()))
	case errors.As(err, &statusErr):
		utils.LogError(err, message)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeBadGateway, message, statusErr.Error()))
	default:
		utils.LogError(err, message)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "Internal error"))
	}
}

func respondNotFound(c *gin.Context, what string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, what+" not found.", ""))
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return false
	}
	return true
}
