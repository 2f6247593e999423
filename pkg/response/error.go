package response

import (
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/log"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusOf maps a service error to the HTTP status and the public message
// written into the envelope. Errors outside apperror are never echoed back.
func StatusOf(err error) (int, string) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "internal error"
	}
	switch {
	case errors.Is(err, apperror.ErrUnauthenticated):
		return http.StatusUnauthorized, appErr.Message
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, appErr.Message
	case errors.Is(err, apperror.ErrInvalidArgument):
		return http.StatusBadRequest, appErr.Message
	case errors.Is(err, apperror.ErrConflictRetryable):
		return http.StatusConflict, appErr.Message
	}
	return http.StatusInternalServerError, appErr.Message
}

// Error writes err using the envelope. 5xx causes are logged.
func Error(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.L.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Fail(c, status, msg)
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.FullPath()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
					Code: http.StatusInternalServerError,
					Msg:  "internal error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			Error(c, c.Errors.Last().Err)
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
