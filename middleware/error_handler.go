package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/filebright/filebright-backend/errors"
	"github.com/filebright/filebright-backend/logger"
)

// ErrorHandler translates errors attached to the gin context into JSON
// responses. AppErrors carry their own status; anything else becomes a 500
// with no internal detail leaked.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status := appErr.GetHTTPStatus()
			log.Warnw("Request failed",
				"type", appErr.Type,
				"message", appErr.Message,
				"status", status,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"requestId", c.GetString(RequestIDKey),
			)

			response := gin.H{
				"type":    string(appErr.Type),
				"message": appErr.Message,
				"code":    strconv.Itoa(status),
			}
			if appErr.Detail != "" && (gin.IsDebugging() ||
				appErr.Type == apperrors.ValidationError ||
				appErr.Type == apperrors.UnsupportedMediaError) {
				response["details"] = appErr.Detail
			}
			c.JSON(status, response)
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding failed", "error", err, "path", c.Request.URL.Path)
			c.JSON(400, gin.H{
				"type":    string(apperrors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			})
			return
		}

		log.Errorw("Unhandled error",
			"error", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"requestId", c.GetString(RequestIDKey),
		)
		c.JSON(500, gin.H{
			"type":    string(apperrors.ServerError),
			"message": "An internal error occurred",
			"code":    "500",
		})
	}
}
