package handler

import (
	"Inkwell/middleware"
	"Inkwell/models"
	"Inkwell/pkg/context"
	"Inkwell/pkg/response"
	"Inkwell/service"
	"Inkwell/types"

	"github.com/gin-gonic/gin"
)

type Comment struct {
	Auth           *middleware.Authenticator
	CounterService service.ICounterService
}

func (h *Comment) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/comments", h.Auth.Handler())
	g.PUT("/:id/status", context.Wrap(h.Moderate))
	g.DELETE("/:id", context.Wrap(h.Delete))
}

// Moderate 审核评论
func (h *Comment) Moderate(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.ModerateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	comment, err := h.CounterService.ModerateComment(c.Request.Context(), userID, commentID, models.CommentStatus(req.Status))
	if err != nil {
		return err
	}
	response.Success(c, comment)
	return nil
}

// Delete 删除评论
func (h *Comment) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.CounterService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
