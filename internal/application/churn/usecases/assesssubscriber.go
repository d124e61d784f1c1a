package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// DefaultBookingWindow is the trailing window for the recent-booking count.
const DefaultBookingWindow = 60 * 24 * time.Hour

// AssessSubscriberUseCase computes a churn risk assessment for one customer.
// An account without an active subscription short-circuits to the fixed
// empty assessment; a missing user is treated the same way.
type AssessSubscriberUseCase struct {
	subscriptionRepo subscription.Repository
	engagement       churn.EngagementReader
	bookingWindow    time.Duration
	now              func() time.Time
	logger           logger.Interface
}

func NewAssessSubscriberUseCase(
	subscriptionRepo subscription.Repository,
	engagement churn.EngagementReader,
	bookingWindow time.Duration,
	logger logger.Interface,
) *AssessSubscriberUseCase {
	if bookingWindow <= 0 {
		bookingWindow = DefaultBookingWindow
	}
	return &AssessSubscriberUseCase{
		subscriptionRepo: subscriptionRepo,
		engagement:       engagement,
		bookingWindow:    bookingWindow,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// WithClock overrides the clock. Test hook.
func (uc *AssessSubscriberUseCase) WithClock(now func() time.Time) *AssessSubscriberUseCase {
	uc.now = now
	return uc
}

// Execute scores the user's active subscription.
func (uc *AssessSubscriberUseCase) Execute(ctx context.Context, userID uint) (churn.RiskAssessment, error) {
	sub, err := uc.subscriptionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return churn.RiskAssessment{}, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		uc.logger.Debugw("no active subscription, returning empty assessment", "user_id", userID)
		return churn.EmptyAssessment(), nil
	}

	now := uc.now()
	snap, err := buildSnapshot(ctx, uc.engagement, sub, now, uc.bookingWindow)
	if err != nil {
		return churn.RiskAssessment{}, err
	}

	assessment := churn.Score(now, snap)

	uc.logger.Debugw("subscriber assessed",
		"user_id", userID,
		"subscription_id", sub.ID(),
		"score", assessment.Score,
		"level", assessment.Level,
	)

	return assessment, nil
}
