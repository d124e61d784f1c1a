package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	churnApp "github.com/hearth-labs/hearth/internal/application/churn"
	retentionApp "github.com/hearth-labs/hearth/internal/application/retention"
	retentionUsecases "github.com/hearth-labs/hearth/internal/application/retention/usecases"
	"github.com/hearth-labs/hearth/internal/infrastructure/cache"
	"github.com/hearth-labs/hearth/internal/infrastructure/config"
	"github.com/hearth-labs/hearth/internal/infrastructure/database"
	"github.com/hearth-labs/hearth/internal/infrastructure/email"
	"github.com/hearth-labs/hearth/internal/infrastructure/notify"
	"github.com/hearth-labs/hearth/internal/infrastructure/repository"
	"github.com/hearth-labs/hearth/internal/infrastructure/scheduler"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// The worker runs the rescore and campaign sweeps without serving HTTP. Use
// it when the API tier runs with --no-scheduler so only one deployment owns
// the background jobs.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting retention worker", "environment", env)

	if err := biztime.Init(cfg.Biztime.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
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
	sweepLock := cache.NewSweepLock(redisClient)

	bookingWindow := time.Duration(cfg.Retention.BookingWindowDays) * 24 * time.Hour
	churnService := churnApp.NewService(subscriptionRepo, engagementRepo, attemptRepo, nil, bookingWindow, log)

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
	log.Infow("retention worker started",
		"rescore_interval_minutes", cfg.Retention.RescoreIntervalMinutes,
		"campaign_interval_hours", cfg.Retention.CampaignIntervalHours)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	if err := schedulerManager.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}
	log.Infow("retention worker stopped")
}
