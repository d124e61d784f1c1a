package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/billing"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/domain/user"
	"github.com/hearth-labs/hearth/internal/shared/logger"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

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

type mockBillingRepository struct {
	CreateAdjustmentFunc func(ctx context.Context, adjustment *billing.Adjustment) error
	GrantCreditFunc      func(ctx context.Context, tx *billing.CreditTransaction) error

	adjustments []*billing.Adjustment
	credits     []*billing.CreditTransaction
}

func (m *mockBillingRepository) CreateAdjustment(ctx context.Context, adjustment *billing.Adjustment) error {
	if m.CreateAdjustmentFunc != nil {
		return m.CreateAdjustmentFunc(ctx, adjustment)
	}
	m.adjustments = append(m.adjustments, adjustment)
	return nil
}

func (m *mockBillingRepository) GrantCredit(ctx context.Context, tx *billing.CreditTransaction) error {
	if m.GrantCreditFunc != nil {
		return m.GrantCreditFunc(ctx, tx)
	}
	m.credits = append(m.credits, tx)
	return nil
}

type mockAttemptRepository struct {
	CreateFunc     func(ctx context.Context, attempt *retention.Attempt) error
	CountSinceFunc func(ctx context.Context, since time.Time) (int64, error)
	StatsSinceFunc func(ctx context.Context, since time.Time) ([]retention.ActionCount, error)

	attempts []*retention.Attempt
}

func (m *mockAttemptRepository) Create(ctx context.Context, attempt *retention.Attempt) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attempt)
	}
	m.attempts = append(m.attempts, attempt)
	return nil
}

func (m *mockAttemptRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]*retention.Attempt, error) {
	var out []*retention.Attempt
	for _, a := range m.attempts {
		if a.UserID() == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttemptRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSinceFunc != nil {
		return m.CountSinceFunc(ctx, since)
	}
	return int64(len(m.attempts)), nil
}

func (m *mockAttemptRepository) StatsSince(ctx context.Context, since time.Time) ([]retention.ActionCount, error) {
	if m.StatsSinceFunc != nil {
		return m.StatsSinceFunc(ctx, since)
	}
	return nil, nil
}

type mockEmailSender struct {
	SendRetentionEmailFunc func(to, name string) error
	SendWinBackEmailFunc   func(to, name string) error

	retentionSent []string
	winBackSent   []string
}

func (m *mockEmailSender) SendRetentionEmail(to, name string) error {
	if m.SendRetentionEmailFunc != nil {
		return m.SendRetentionEmailFunc(to, name)
	}
	m.retentionSent = append(m.retentionSent, to)
	return nil
}

func (m *mockEmailSender) SendWinBackEmail(to, name string) error {
	if m.SendWinBackEmailFunc != nil {
		return m.SendWinBackEmailFunc(to, name)
	}
	m.winBackSent = append(m.winBackSent, to)
	return nil
}

type mockSMSSender struct {
	SendRetentionSMSFunc func(ctx context.Context, phone, message string) error

	sent []string
}

func (m *mockSMSSender) SendRetentionSMS(ctx context.Context, phone, message string) error {
	if m.SendRetentionSMSFunc != nil {
		return m.SendRetentionSMSFunc(ctx, phone, message)
	}
	m.sent = append(m.sent, phone)
	return nil
}

type mockCallScheduler struct {
	ScheduleRetentionCallFunc func(ctx context.Context, userID uint, name, phone string) error

	scheduled []uint
}

func (m *mockCallScheduler) ScheduleRetentionCall(ctx context.Context, userID uint, name, phone string) error {
	if m.ScheduleRetentionCallFunc != nil {
		return m.ScheduleRetentionCallFunc(ctx, userID, name, phone)
	}
	m.scheduled = append(m.scheduled, userID)
	return nil
}

type mockCooldownGuard struct {
	TryAcquireFunc func(ctx context.Context, userID uint, ttl time.Duration) (bool, error)
}

func (m *mockCooldownGuard) TryAcquire(ctx context.Context, userID uint, ttl time.Duration) (bool, error) {
	if m.TryAcquireFunc != nil {
		return m.TryAcquireFunc(ctx, userID, ttl)
	}
	return true, nil
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

func newTestUser(t *testing.T, id uint, lifetimeValue float64) *user.User {
	t.Helper()
	u, err := user.Reconstruct(id, "customer@example.com", "Jamie Park", "+15550100", lifetimeValue, time.Now().AddDate(-1, 0, 0))
	require.NoError(t, err)
	return u
}

func newTestSubscription(t *testing.T, id, userID uint, tier vo.Tier, score float64) *subscription.Subscription {
	t.Helper()
	now := time.Now()
	sub, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:             id,
		UserID:         userID,
		Tier:           tier,
		Frequency:      vo.FrequencyMonthly,
		Status:         vo.StatusActive,
		StartDate:      now.AddDate(0, -6, 0),
		ChurnRiskScore: score,
		Version:        1,
		CreatedAt:      now.AddDate(0, -6, 0),
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	return sub
}

func defaultAmounts() ActionAmounts {
	return ActionAmounts{Discount: 25, Credit: 50}
}

func defaultCampaignConfig() CampaignConfig {
	return CampaignConfig{
		HighRiskThreshold:      60,
		CriticalThreshold:      80,
		BatchLimit:             50,
		LifetimeValueThreshold: 500,
		Cooldown:               7 * 24 * time.Hour,
	}
}
