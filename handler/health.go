package handler

import (
	"Inkwell/pkg/response"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health exposes liveness and metrics; both routes are unauthenticated.
type Health struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func (h *Health) RegisterRouter(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Health) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok"}
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	// redis only backs a cache, so it degrades instead of failing the check
	if h.Redis != nil {
		status["redis"] = "ok"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "degraded"
		}
	}
	response.Success(c, status)
}
