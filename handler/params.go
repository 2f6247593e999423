package handler

import (
	"Inkwell/pkg/apperror"
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID parses a positive id path parameter.
func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidArgument(name, "invalid "+name)
	}
	return id, nil
}

// bindQuery decodes query parameters into req; binding failures are
// InvalidArgument.
func bindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return apperror.InvalidArgument("query", err.Error())
	}
	return nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.InvalidArgument("body", err.Error())
	}
	return nil
}
