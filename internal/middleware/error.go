package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homebook/internal/errors"
	"homebook/internal/logger"
)

// RenderError writes err as {"error":{"code","message"}}. AppErrors keep
// their status, code and message; their internal cause is logged and never
// sent. Any other error is logged and answered with a generic internal error.
func RenderError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"request_id", RequestID(c),
			"path", c.Request.URL.Path,
		)
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// abortWithError stops the chain with the standard error body.
func abortWithError(c *gin.Context, err *apperrors.AppError) {
	RenderError(c, err)
}

// ErrorHandler returns a Gin middleware that renders errors attached to the
// context with c.Error, unless a response has already been written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RenderError(c, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into a logged INTERNAL_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		RenderError(c, apperrors.ErrInternalServer)
	})
}

// NotFound answers unknown routes in the standard error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		RenderError(c, apperrors.WithMessage(apperrors.ErrNotFound, http.StatusText(http.StatusNotFound)))
	}
}
