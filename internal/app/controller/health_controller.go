package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/pkg/redis"
)

type HealthController struct {
	redisEnabled bool
}

func NewHealthController(redisEnabled bool) *HealthController {
	return &HealthController{redisEnabled: redisEnabled}
}

// Health reports liveness and, when Redis backs the drafts, its reachability.
// GET /health
func (ctrl *HealthController) Health(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"message": "Gym panel is running",
	}
	if !ctrl.redisEnabled {
		c.JSON(http.StatusOK, body)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := redis.Ping(ctx); err != nil {
		body["status"] = "degraded"
		body["redis"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["redis"] = "ok"
	c.JSON(http.StatusOK, body)
}
