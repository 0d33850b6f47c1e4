package apperrors

import (
	"creatorhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler writes AppErrors as JSON.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if h.Debug {
			appErr = appErr.WithDetails(err.Error())
		}
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "server error",
			"code", appErr.Code,
			"error", appErr.Error(),
		)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// debugErrors exposes raw error text for non-AppErrors; switched off in production.
var debugErrors = false

// SetDebug toggles error details for unexpected errors.
func SetDebug(debug bool) {
	debugErrors = debug
}

func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
