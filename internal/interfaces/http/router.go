package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/application/churn"
	"github.com/hearth-labs/hearth/internal/application/retention"
	"github.com/hearth-labs/hearth/internal/infrastructure/config"
	"github.com/hearth-labs/hearth/internal/interfaces/http/handlers"
	"github.com/hearth-labs/hearth/internal/interfaces/http/middleware"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// Router wires the HTTP surface over the churn and retention services.
type Router struct {
	engine           *gin.Engine
	churnHandler     *handlers.ChurnHandler
	retentionHandler *handlers.RetentionHandler
	healthHandler    *handlers.HealthHandler
	log              logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies.
func NewRouter(
	churnService *churn.Service,
	retentionService *retention.Service,
	sweepGuard handlers.SweepGuard,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:           gin.New(),
		churnHandler:     handlers.NewChurnHandler(churnService, sweepGuard),
		retentionHandler: handlers.NewRetentionHandler(retentionService, sweepGuard),
		healthHandler:    handlers.NewHealthHandler(db, redisClient),
		log:              log,
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS([]string{"*"}))

	r.engine.GET("/health", r.healthHandler.Check)

	v1 := r.engine.Group("/api/v1")

	churnRoutes := v1.Group("/churn")
	{
		churnRoutes.GET("/customers/:id/assessment", r.churnHandler.GetAssessment)
		churnRoutes.POST("/rescore", r.churnHandler.Rescore)
		churnRoutes.GET("/report", r.churnHandler.GetReport)
	}

	retentionRoutes := v1.Group("/retention")
	{
		retentionRoutes.POST("/actions", r.retentionHandler.ExecuteAction)
		retentionRoutes.POST("/campaigns", r.retentionHandler.RunCampaign)
		retentionRoutes.POST("/campaigns/sweep", r.retentionHandler.RunSweep)
		retentionRoutes.GET("/stats", r.retentionHandler.GetStats)
		retentionRoutes.GET("/customers/:id/attempts", r.retentionHandler.ListAttempts)
	}
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
