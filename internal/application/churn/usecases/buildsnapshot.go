package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
)

// buildSnapshot assembles the scorer input for one subscription. The booking
// count is the only time-dependent read; everything else is historical state.
func buildSnapshot(
	ctx context.Context,
	engagement churn.EngagementReader,
	sub *subscription.Subscription,
	now time.Time,
	bookingWindow time.Duration,
) (churn.SubscriberSnapshot, error) {
	var snap churn.SubscriberSnapshot

	pauseCount, err := engagement.CountPauses(ctx, sub.ID())
	if err != nil {
		return snap, fmt.Errorf("failed to count pauses: %w", err)
	}

	perkUsage, err := engagement.GetPerkUsage(ctx, sub.ID())
	if err != nil {
		return snap, fmt.Errorf("failed to load perk usage: %w", err)
	}

	propertyCount, err := engagement.CountAdditionalProperties(ctx, sub.UserID())
	if err != nil {
		return snap, fmt.Errorf("failed to count properties: %w", err)
	}

	rewardCredits, err := engagement.SumRewardCredits(ctx, sub.UserID())
	if err != nil {
		return snap, fmt.Errorf("failed to sum reward credits: %w", err)
	}

	recentBookings, err := engagement.CountBookingsSince(ctx, sub.UserID(), now.Add(-bookingWindow))
	if err != nil {
		return snap, fmt.Errorf("failed to count recent bookings: %w", err)
	}

	return churn.SubscriberSnapshot{
		SubscriptionCreatedAt:   sub.StartDate(),
		PaymentFrequency:        sub.Frequency(),
		PauseCount:              pauseCount,
		PerkUsage:               perkUsage,
		AdditionalPropertyCount: propertyCount,
		TotalRewardCredits:      rewardCredits,
		RecentBookingCount:      recentBookings,
		Tier:                    sub.Tier(),
	}, nil
}
