package handler

import (
	"Inkwell/middleware"
	"Inkwell/pkg/context"
	"Inkwell/pkg/response"
	"Inkwell/service"
	"Inkwell/types"

	"github.com/gin-gonic/gin"
)

type Follow struct {
	Auth          *middleware.Authenticator
	FollowService service.IFollowService
}

func (f *Follow) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/follow", f.Auth.Handler())
	g.POST("/:user_id/toggle", context.Wrap(f.Toggle))
	g.GET("/:user_id/status", context.Wrap(f.Status))
	g.GET("/followers", context.Wrap(f.Followers))
	g.GET("/following", context.Wrap(f.Following))
}

// Toggle 关注/取消关注
func (f *Follow) Toggle(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	targetID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	following, err := f.FollowService.ToggleFollow(c.Request.Context(), userID, targetID)
	if err != nil {
		return err
	}
	response.Success(c, types.ToggleFollowResponse{Following: following})
	return nil
}

func (f *Follow) Status(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	targetID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	ok, err := f.FollowService.IsFollowing(c.Request.Context(), userID, targetID)
	if err != nil {
		return err
	}
	response.Success(c, types.FollowStatusResponse{IsFollowing: ok})
	return nil
}

// Followers 我的粉丝
func (f *Follow) Followers(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ListFollowRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, err := f.FollowService.ListFollowers(c.Request.Context(), userID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

// Following 我的关注
func (f *Follow) Following(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ListFollowRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, err := f.FollowService.ListFollowing(c.Request.Context(), userID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}
