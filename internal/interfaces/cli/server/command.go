package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	churnApp "github.com/hearth-labs/hearth/internal/application/churn"
	retentionApp "github.com/hearth-labs/hearth/internal/application/retention"
	retentionUsecases "github.com/hearth-labs/hearth/internal/application/retention/usecases"
	"github.com/hearth-labs/hearth/internal/infrastructure/cache"
	"github.com/hearth-labs/hearth/internal/infrastructure/config"
	"github.com/hearth-labs/hearth/internal/infrastructure/database"
	"github.com/hearth-labs/hearth/internal/infrastructure/email"
	"github.com/hearth-labs/hearth/internal/infrastructure/migration"
	"github.com/hearth-labs/hearth/internal/infrastructure/notify"
	"github.com/hearth-labs/hearth/internal/infrastructure/repository"
	"github.com/hearth-labs/hearth/internal/infrastructure/scheduler"
	httpRouter "github.com/hearth-labs/hearth/internal/interfaces/http"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
	noScheduler bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Hearth HTTP server with churn scoring and retention endpoints.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run gorm auto-migration on startup (not recommended for production)")
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Disable the in-process rescore and campaign sweeps")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Biztime.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended")
		}
		if err := migration.AutoMigrate(database.Get()); err != nil {
			log.Fatalw("auto-migration failed", "error", err)
		}
		log.Infow("auto-migration completed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err, "address", cfg.Redis.GetAddr())
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	db := database.Get()
	userRepo := repository.NewUserRepository(db, log)
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	engagementRepo := repository.NewEngagementRepository(db, log)
	attemptRepo := repository.NewRetentionAttemptRepository(db, log)
	billingRepo := repository.NewBillingRepository(db, log)

	emailService := email.NewSMTPEmailService(cfg.Email)
	gateway := notify.NewGatewayClient(cfg.SMS, log)
	cooldown := cache.NewActionCooldown(redisClient)
	assessments := cache.NewAssessmentCache(redisClient, cache.DefaultAssessmentTTL)
	sweepLock := cache.NewSweepLock(redisClient)

	bookingWindow := time.Duration(cfg.Retention.BookingWindowDays) * 24 * time.Hour
	churnService := churnApp.NewService(subscriptionRepo, engagementRepo, attemptRepo, assessments, bookingWindow, log)

	retentionService := retentionApp.NewService(
		userRepo, subscriptionRepo, billingRepo, attemptRepo,
		emailService, gateway, gateway, cooldown,
		retentionUsecases.ActionAmounts{
			Discount: cfg.Retention.DiscountAmount,
			Credit:   cfg.Retention.CreditAmount,
		},
		retentionUsecases.CampaignConfig{
			HighRiskThreshold:      cfg.Retention.HighRiskThreshold,
			CriticalThreshold:      cfg.Retention.CriticalThreshold,
			BatchLimit:             cfg.Retention.CampaignBatchLimit,
			LifetimeValueThreshold: cfg.Retention.LifetimeValueThreshold,
			Cooldown:               time.Duration(cfg.Retention.CooldownDays) * 24 * time.Hour,
		},
		log,
	)

	if !noScheduler {
		schedulerManager, err := scheduler.NewSchedulerManager(log)
		if err != nil {
			log.Fatalw("failed to create scheduler", "error", err)
		}
		if err := schedulerManager.RegisterRetentionJobs(
			churnService,
			retentionService,
			sweepLock,
			time.Duration(cfg.Retention.RescoreIntervalMinutes)*time.Minute,
			time.Duration(cfg.Retention.CampaignIntervalHours)*time.Hour,
		); err != nil {
			log.Fatalw("failed to register retention jobs", "error", err)
		}
		schedulerManager.Start()
		defer func() {
			if err := schedulerManager.Stop(); err != nil {
				log.Errorw("failed to stop scheduler", "error", err)
			}
		}()
	}

	router := httpRouter.NewRouter(churnService, retentionService, sweepLock, db, redisClient, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
