package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
	"github.com/hearth-labs/hearth/internal/shared/sweep"
)

// RescoreSummary reports the outcome of one re-scoring sweep.
type RescoreSummary struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// RescoreSubscriptionsUseCase re-scores every active subscription and
// persists the new score. One subscriber's failure never aborts the sweep;
// failures are folded into the summary instead.
type RescoreSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	engagement       churn.EngagementReader
	bookingWindow    time.Duration
	now              func() time.Time
	logger           logger.Interface
}

func NewRescoreSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	engagement churn.EngagementReader,
	bookingWindow time.Duration,
	logger logger.Interface,
) *RescoreSubscriptionsUseCase {
	if bookingWindow <= 0 {
		bookingWindow = DefaultBookingWindow
	}
	return &RescoreSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		engagement:       engagement,
		bookingWindow:    bookingWindow,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// WithClock overrides the clock. Test hook.
func (uc *RescoreSubscriptionsUseCase) WithClock(now func() time.Time) *RescoreSubscriptionsUseCase {
	uc.now = now
	return uc
}

// Execute runs one full re-scoring sweep over all active subscriptions.
func (uc *RescoreSubscriptionsUseCase) Execute(ctx context.Context) (RescoreSummary, error) {
	subs, err := uc.subscriptionRepo.FindActive(ctx)
	if err != nil {
		return RescoreSummary{}, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	now := uc.now()
	results := make([]sweep.Result[uint], 0, len(subs))

	for _, sub := range subs {
		if err := uc.rescoreOne(ctx, sub, now); err != nil {
			uc.logger.Warnw("failed to rescore subscription",
				"subscription_id", sub.ID(),
				"user_id", sub.UserID(),
				"error", err,
			)
			results = append(results, sweep.Fail(sub.ID(), err))
			continue
		}
		results = append(results, sweep.Ok(sub.ID()))
	}

	summary := sweep.Summarize(results)

	uc.logger.Infow("rescore sweep completed",
		"updated", summary.Succeeded,
		"failed", summary.Failed,
		"total", summary.Total,
	)

	return RescoreSummary{
		Updated: summary.Succeeded,
		Failed:  summary.Failed,
		Total:   summary.Total,
	}, nil
}

func (uc *RescoreSubscriptionsUseCase) rescoreOne(ctx context.Context, sub *subscription.Subscription, now time.Time) error {
	snap, err := buildSnapshot(ctx, uc.engagement, sub, now, uc.bookingWindow)
	if err != nil {
		return err
	}

	assessment := churn.Score(now, snap)

	if err := sub.UpdateRiskScore(assessment.Score); err != nil {
		return err
	}

	if err := uc.subscriptionRepo.UpdateRiskScore(ctx, sub); err != nil {
		// A concurrent writer won the race; count it as a failure rather
		// than silently overwriting.
		if errors.Is(err, subscription.ErrVersionConflict) {
			return fmt.Errorf("score update lost to concurrent write: %w", err)
		}
		return fmt.Errorf("failed to persist risk score: %w", err)
	}

	return nil
}
