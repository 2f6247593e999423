package handler

import (
	"Inkwell/middleware"
	"Inkwell/pkg/context"
	"Inkwell/pkg/response"
	"Inkwell/service"
	"Inkwell/types"

	"github.com/gin-gonic/gin"
)

// Dashboard serves the author's own analytics.
type Dashboard struct {
	Auth             *middleware.Authenticator
	AnalyticsService service.IAnalyticsService
}

func (d *Dashboard) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/dashboard", d.Auth.Handler())
	g.GET("/analytics", context.Wrap(d.Analytics))
	g.GET("/daily-views", context.Wrap(d.DailyViews))
	g.GET("/activity", context.Wrap(d.Activity))
	g.GET("/posts", context.Wrap(d.Posts))
}

func (d *Dashboard) Analytics(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	stats, err := d.AnalyticsService.GetAnalytics(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}

func (d *Dashboard) DailyViews(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	days, err := d.AnalyticsService.GetDailyViews(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, days)
	return nil
}

func (d *Dashboard) Activity(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.LimitRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	acts, err := d.AnalyticsService.GetRecentActivity(c.Request.Context(), userID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, acts)
	return nil
}

func (d *Dashboard) Posts(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.LimitRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	posts, err := d.AnalyticsService.GetPostsWithAnalytics(c.Request.Context(), userID, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, posts)
	return nil
}
