package middleware

import (
	"errors"
	"net/http"
	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/pkg/apperror"
	"talent-onboarding-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Err != nil {
					logger.Log.Warn("Request failed", "status", appErr.Code, "message", appErr.Message, "error", appErr.Err, "path", c.FullPath())
				}
				if appErr.Code == http.StatusServiceUnavailable {
					c.Header("Retry-After", "1")
				}
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				// SECURITY: Never expose internal error details to clients.
				logger.Log.Error("Internal Server Error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
