package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/shared/logger"
	"github.com/stretchr/testify/require"
)

type mockSubscriptionRepository struct {
	CreateFunc            func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFunc           func(ctx context.Context, id uint) (*subscription.Subscription, error)
	GetActiveByUserIDFunc func(ctx context.Context, userID uint) (*subscription.Subscription, error)
	FindActiveFunc        func(ctx context.Context) ([]*subscription.Subscription, error)
	FindHighRiskFunc      func(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error)
	UpdateFunc            func(ctx context.Context, sub *subscription.Subscription) error
	UpdateRiskScoreFunc   func(ctx context.Context, sub *subscription.Subscription) error
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	if m.GetActiveByUserIDFunc != nil {
		return m.GetActiveByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) FindActive(ctx context.Context) ([]*subscription.Subscription, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) FindHighRisk(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error) {
	if m.FindHighRiskFunc != nil {
		return m.FindHighRiskFunc(ctx, minScore, limit)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) UpdateRiskScore(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateRiskScoreFunc != nil {
		return m.UpdateRiskScoreFunc(ctx, sub)
	}
	return nil
}

// mockEngagementReader answers with fixed neutral counters unless a func
// field overrides the read.
type mockEngagementReader struct {
	CountPausesFunc               func(ctx context.Context, subscriptionID uint) (int, error)
	GetPerkUsageFunc              func(ctx context.Context, subscriptionID uint) (churn.PerkUsage, error)
	CountAdditionalPropertiesFunc func(ctx context.Context, userID uint) (int, error)
	SumRewardCreditsFunc          func(ctx context.Context, userID uint) (float64, error)
	CountBookingsSinceFunc        func(ctx context.Context, userID uint, since time.Time) (int, error)
}

func (m *mockEngagementReader) CountPauses(ctx context.Context, subscriptionID uint) (int, error) {
	if m.CountPausesFunc != nil {
		return m.CountPausesFunc(ctx, subscriptionID)
	}
	return 0, nil
}

func (m *mockEngagementReader) GetPerkUsage(ctx context.Context, subscriptionID uint) (churn.PerkUsage, error) {
	if m.GetPerkUsageFunc != nil {
		return m.GetPerkUsageFunc(ctx, subscriptionID)
	}
	return churn.PerkUsage{PriorityBookingUsed: true, DiscountUsed: true}, nil
}

func (m *mockEngagementReader) CountAdditionalProperties(ctx context.Context, userID uint) (int, error) {
	if m.CountAdditionalPropertiesFunc != nil {
		return m.CountAdditionalPropertiesFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockEngagementReader) SumRewardCredits(ctx context.Context, userID uint) (float64, error) {
	if m.SumRewardCreditsFunc != nil {
		return m.SumRewardCreditsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockEngagementReader) CountBookingsSince(ctx context.Context, userID uint, since time.Time) (int, error) {
	if m.CountBookingsSinceFunc != nil {
		return m.CountBookingsSinceFunc(ctx, userID, since)
	}
	return 1, nil
}

type mockAttemptRepository struct {
	CountSinceFunc func(ctx context.Context, since time.Time) (int64, error)
}

func (m *mockAttemptRepository) Create(ctx context.Context, attempt *retention.Attempt) error {
	return nil
}

func (m *mockAttemptRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]*retention.Attempt, error) {
	return nil, nil
}

func (m *mockAttemptRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSinceFunc != nil {
		return m.CountSinceFunc(ctx, since)
	}
	return 0, nil
}

func (m *mockAttemptRepository) StatsSince(ctx context.Context, since time.Time) ([]retention.ActionCount, error) {
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func newActiveSubscription(t *testing.T, id, userID uint, startDate time.Time, score float64) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:             id,
		UserID:         userID,
		Tier:           vo.TierHomecare,
		Frequency:      vo.FrequencyMonthly,
		Status:         vo.StatusActive,
		StartDate:      startDate,
		ChurnRiskScore: score,
		Version:        1,
		CreatedAt:      startDate,
		UpdatedAt:      startDate,
	})
	require.NoError(t, err)
	return sub
}
