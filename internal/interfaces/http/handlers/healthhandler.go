package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check reports process liveness plus the state of backing services. The
// endpoint stays 200 while degraded so load balancers keep routing; the body
// tells operators which dependency is down.
func (h *HealthHandler) Check(c *gin.Context) {
	checks := gin.H{}
	status := "healthy"

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			checks["database"] = "down"
			status = "degraded"
		} else {
			checks["database"] = "up"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "down"
			status = "degraded"
		} else {
			checks["redis"] = "up"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "hearth",
		"checks":  checks,
	})
}
