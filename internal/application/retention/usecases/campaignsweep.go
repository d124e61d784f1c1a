package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/domain/user"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// CampaignConfig holds the segmentation rules for the scheduled campaign.
type CampaignConfig struct {
	HighRiskThreshold      float64
	CriticalThreshold      float64
	BatchLimit             int
	LifetimeValueThreshold float64
	Cooldown               time.Duration
}

// BandResult counts campaign outcomes for one risk band.
type BandResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// CampaignSummary reports the outcome of one campaign sweep.
type CampaignSummary struct {
	Critical BandResult `json:"critical"`
	High     BandResult `json:"high"`
	Skipped  int        `json:"skipped"`
}

// CampaignSweepUseCase runs the scheduled retention campaign: it pulls the
// highest-risk active subscriptions, partitions them into critical and high
// bands, and dispatches the band's interventions per customer. Customers
// contacted within the cooldown window are skipped.
type CampaignSweepUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	executeAction    *ExecuteActionUseCase
	cooldown         CooldownGuard
	config           CampaignConfig
	logger           logger.Interface
}

func NewCampaignSweepUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	executeAction *ExecuteActionUseCase,
	cooldown CooldownGuard,
	config CampaignConfig,
	logger logger.Interface,
) *CampaignSweepUseCase {
	return &CampaignSweepUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		executeAction:    executeAction,
		cooldown:         cooldown,
		config:           config,
		logger:           logger,
	}
}

// Execute runs one campaign sweep. One customer's failure never blocks the
// rest of the batch.
func (uc *CampaignSweepUseCase) Execute(ctx context.Context) (CampaignSummary, error) {
	subs, err := uc.subscriptionRepo.FindHighRisk(ctx, uc.config.HighRiskThreshold, uc.config.BatchLimit)
	if err != nil {
		return CampaignSummary{}, fmt.Errorf("failed to load high-risk subscriptions: %w", err)
	}

	var summary CampaignSummary

	for _, sub := range subs {
		if !uc.acquireCooldown(ctx, sub.UserID()) {
			summary.Skipped++
			continue
		}

		if sub.ChurnRiskScore() >= uc.config.CriticalThreshold {
			if uc.runCriticalBand(ctx, sub.UserID()) {
				summary.Critical.Processed++
			} else {
				summary.Critical.Failed++
			}
		} else {
			if uc.runHighBand(ctx, sub) {
				summary.High.Processed++
			} else {
				summary.High.Failed++
			}
		}
	}

	uc.logger.Infow("retention campaign sweep completed",
		"candidates", len(subs),
		"critical_processed", summary.Critical.Processed,
		"critical_failed", summary.Critical.Failed,
		"high_processed", summary.High.Processed,
		"high_failed", summary.High.Failed,
		"skipped", summary.Skipped,
	)

	return summary, nil
}

// runCriticalBand executes the full escalation sequence: credit first, then
// a personal call, then email. Every action runs even if an earlier one
// failed; the customer counts as failed when any action failed.
func (uc *CampaignSweepUseCase) runCriticalBand(ctx context.Context, userID uint) bool {
	ok := true
	for _, action := range []retention.Action{retention.ActionCredit, retention.ActionCall, retention.ActionEmail} {
		if err := uc.executeAction.Execute(ctx, action, userID, retention.WorkflowCriticalBand); err != nil {
			uc.logger.Warnw("critical band action failed",
				"action", action,
				"user_id", userID,
				"error", err,
			)
			ok = false
		}
	}
	return ok
}

// runHighBand selects exactly one action by priority: high lifetime value
// gets a discount, priority-tier customers get a credit, everyone else gets
// the win-back email.
func (uc *CampaignSweepUseCase) runHighBand(ctx context.Context, sub *subscription.Subscription) bool {
	u, err := uc.userRepo.GetByID(ctx, sub.UserID())
	if err != nil || u == nil {
		uc.logger.Warnw("high band user lookup failed",
			"user_id", sub.UserID(),
			"error", err,
		)
		return false
	}

	var action retention.Action
	switch {
	case u.LifetimeValue() > uc.config.LifetimeValueThreshold:
		action = retention.ActionDiscount
	case sub.Tier().IsPremium():
		action = retention.ActionCredit
	default:
		action = retention.ActionEmail
	}

	if err := uc.executeAction.Execute(ctx, action, sub.UserID(), retention.WorkflowHighBand); err != nil {
		uc.logger.Warnw("high band action failed",
			"action", action,
			"user_id", sub.UserID(),
			"error", err,
		)
		return false
	}
	return true
}

// acquireCooldown claims the customer's contact window. A guard failure is
// logged and treated as acquirable so a cache outage cannot halt campaigns.
func (uc *CampaignSweepUseCase) acquireCooldown(ctx context.Context, userID uint) bool {
	if uc.cooldown == nil || uc.config.Cooldown <= 0 {
		return true
	}
	acquired, err := uc.cooldown.TryAcquire(ctx, userID, uc.config.Cooldown)
	if err != nil {
		uc.logger.Warnw("cooldown check failed, proceeding", "user_id", userID, "error", err)
		return true
	}
	if !acquired {
		uc.logger.Debugw("customer in retention cooldown, skipping", "user_id", userID)
	}
	return acquired
}
