package churn

import (
	"context"
	"time"
)

// EngagementReader supplies the account activity counters a snapshot needs.
// Implementations query the relational store; the scorer itself never does.
type EngagementReader interface {
	CountPauses(ctx context.Context, subscriptionID uint) (int, error)
	GetPerkUsage(ctx context.Context, subscriptionID uint) (PerkUsage, error)
	CountAdditionalProperties(ctx context.Context, userID uint) (int, error)
	SumRewardCredits(ctx context.Context, userID uint) (float64, error)
	CountBookingsSince(ctx context.Context, userID uint, since time.Time) (int, error)
}
