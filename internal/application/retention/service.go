package retention

import (
	"context"

	"github.com/hearth-labs/hearth/internal/application/retention/usecases"
	"github.com/hearth-labs/hearth/internal/domain/billing"
	retentiondomain "github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/domain/user"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// Service is the application facade for retention workflows.
type Service struct {
	executeAction *usecases.ExecuteActionUseCase
	campaignSweep *usecases.CampaignSweepUseCase
	runCampaign   *usecases.RunCampaignUseCase
	stats         *usecases.RetentionStatsUseCase
	attemptRepo   retentiondomain.AttemptRepository
	logger        logger.Interface
}

func NewService(
	userRepo user.Repository,
	subscriptionRepo subscription.Repository,
	billingRepo billing.Repository,
	attemptRepo retentiondomain.AttemptRepository,
	email usecases.EmailSender,
	sms usecases.SMSSender,
	calls usecases.CallScheduler,
	cooldown usecases.CooldownGuard,
	amounts usecases.ActionAmounts,
	campaignConfig usecases.CampaignConfig,
	logger logger.Interface,
) *Service {
	executeAction := usecases.NewExecuteActionUseCase(
		userRepo, subscriptionRepo, billingRepo, attemptRepo,
		email, sms, calls, amounts, logger,
	)

	return &Service{
		executeAction: executeAction,
		campaignSweep: usecases.NewCampaignSweepUseCase(subscriptionRepo, userRepo, executeAction, cooldown, campaignConfig, logger),
		runCampaign:   usecases.NewRunCampaignUseCase(executeAction, logger),
		stats:         usecases.NewRetentionStatsUseCase(attemptRepo, logger),
		attemptRepo:   attemptRepo,
		logger:        logger,
	}
}

// ExecuteAction performs one retention action for one customer.
func (s *Service) ExecuteAction(ctx context.Context, action retentiondomain.Action, userID uint) error {
	return s.executeAction.Execute(ctx, action, userID, retentiondomain.WorkflowManual)
}

// RunCampaignSweep runs the scheduled high-risk campaign.
func (s *Service) RunCampaignSweep(ctx context.Context) (usecases.CampaignSummary, error) {
	return s.campaignSweep.Execute(ctx)
}

// RunCampaign executes one action against an explicit customer list.
func (s *Service) RunCampaign(ctx context.Context, action retentiondomain.Action, customerIDs []uint) usecases.CampaignRunResult {
	return s.runCampaign.Execute(ctx, action, customerIDs)
}

// Attempts returns the most recent retention attempts for a customer.
func (s *Service) Attempts(ctx context.Context, userID uint, limit int) ([]*retentiondomain.Attempt, error) {
	return s.attemptRepo.ListByUserID(ctx, userID, limit)
}

// Stats aggregates the attempt audit trail.
func (s *Service) Stats(ctx context.Context, windowDays int) (usecases.RetentionStats, error) {
	return s.stats.Execute(ctx, windowDays)
}
