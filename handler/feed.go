package handler

import (
	"Inkwell/middleware"
	"Inkwell/pkg/context"
	"Inkwell/pkg/response"
	"Inkwell/service"
	"Inkwell/types"

	"github.com/gin-gonic/gin"
)

type Feed struct {
	Auth        *middleware.Authenticator
	FeedService service.IFeedService
}

func (f *Feed) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/feed", f.Auth.Handler())
	g.GET("", context.Wrap(f.Feed))
	g.GET("/trending", context.Wrap(f.Trending))
	g.GET("/suggested", context.Wrap(f.Suggested))
}

// Feed 关注流
func (f *Feed) Feed(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.FeedRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	page, err := f.FeedService.GetFeed(c.Request.Context(), userID, req.Limit, req.Cursor)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (f *Feed) Trending(c *gin.Context) error {
	var req types.LimitRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	posts, err := f.FeedService.GetTrendingPosts(c.Request.Context(), req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, posts)
	return nil
}

func (f *Feed) Suggested(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.LimitRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	users, err := f.FeedService.GetSuggestedUsers(c.Request.Context(), userID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, users)
	return nil
}
