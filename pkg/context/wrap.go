package context

import (
	"Inkwell/pkg/apperror"
	"Inkwell/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID          = "user_id"
	CtxTokenIdentifier = "token_identifier"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			// response already written by the handler
			if c.Writer.Written() {
				return
			}
			response.Error(c, err)
		}
	}
}

// GetUserID returns the actor id resolved by the auth middleware.
func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, apperror.Unauthenticated("missing actor")
	}

	uid, ok := v.(uint64)
	if !ok || uid == 0 {
		return 0, apperror.Unauthenticated("invalid actor")
	}

	return uid, nil
}
