package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/fieldsim/gridiron/internal/engine"
)

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	engine      *engine.Engine
	redisClient *redis.Client // nil when Redis is disabled
}

// NewHealthHandler creates the health handler. redisClient may be nil.
func NewHealthHandler(eng *engine.Engine, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		engine:      eng,
		redisClient: redisClient,
	}
}

// GetHealth handles GET /health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	checks := map[string]string{
		"engine": "ok",
	}
	status := "healthy"

	if h.redisClient != nil {
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
			status = "degraded"
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"service":   "season-rating-service",
		"season":    h.engine.Season(),
		"players":   h.engine.PlayerCount(),
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// GetReady handles GET /ready.
func (h *HealthHandler) GetReady(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ready": true})
}
