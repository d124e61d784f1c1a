package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/billing"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type campaignFixture struct {
	userRepo *mockUserRepository
	subRepo  *mockSubscriptionRepository
	billing  *mockBillingRepository
	attempts *mockAttemptRepository
	email    *mockEmailSender
	sms      *mockSMSSender
	calls    *mockCallScheduler
	cooldown *mockCooldownGuard
	uc       *CampaignSweepUseCase

	users map[uint]*user.User
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()
	f := &campaignFixture{
		userRepo: &mockUserRepository{},
		subRepo:  &mockSubscriptionRepository{},
		billing:  &mockBillingRepository{},
		attempts: &mockAttemptRepository{},
		email:    &mockEmailSender{},
		sms:      &mockSMSSender{},
		calls:    &mockCallScheduler{},
		cooldown: &mockCooldownGuard{},
		users:    make(map[uint]*user.User),
	}
	f.userRepo.GetByIDFunc = func(ctx context.Context, id uint) (*user.User, error) {
		return f.users[id], nil
	}

	executeAction := NewExecuteActionUseCase(
		f.userRepo, f.subRepo, f.billing, f.attempts,
		f.email, f.sms, f.calls, defaultAmounts(), &mockLogger{},
	)
	f.uc = NewCampaignSweepUseCase(f.subRepo, f.userRepo, executeAction, f.cooldown, defaultCampaignConfig(), &mockLogger{})
	return f
}

func (f *campaignFixture) addUser(t *testing.T, id uint, lifetimeValue float64) {
	t.Helper()
	f.users[id] = newTestUser(t, id, lifetimeValue)
}

func (f *campaignFixture) setCandidates(subs ...*subscription.Subscription) {
	f.subRepo.FindHighRiskFunc = func(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error) {
		return subs, nil
	}
}

func TestCampaignSweep_CriticalBandRunsAllThreeActions(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 1, 0)
	sub := newTestSubscription(t, 10, 1, vo.TierHomecare, 85)
	f.setCandidates(sub)
	f.subRepo.GetActiveByUserIDFunc = func(ctx context.Context, userID uint) (*subscription.Subscription, error) {
		return sub, nil
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Critical.Processed)
	assert.Equal(t, 0, summary.Critical.Failed)
	assert.Equal(t, 0, summary.High.Processed)

	// Credit, call, and email each exactly once.
	assert.Len(t, f.billing.credits, 1)
	assert.Equal(t, []uint{1}, f.calls.scheduled)
	assert.Len(t, f.email.retentionSent, 1)
	assert.Empty(t, f.billing.adjustments)

	require.Len(t, f.attempts.attempts, 3)
	for _, attempt := range f.attempts.attempts {
		assert.Equal(t, retention.WorkflowCriticalBand, attempt.Workflow())
	}
}

func TestCampaignSweep_HighValueCustomerGetsDiscountOnly(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 2, 600)
	f.setCandidates(newTestSubscription(t, 11, 2, vo.TierHomecare, 65))

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.High.Processed)
	assert.Equal(t, 0, summary.Critical.Processed)

	require.Len(t, f.billing.adjustments, 1)
	assert.Equal(t, uint(2), f.billing.adjustments[0].UserID())
	assert.Empty(t, f.billing.credits)
	assert.Empty(t, f.email.retentionSent)
	assert.Empty(t, f.email.winBackSent)
	assert.Empty(t, f.calls.scheduled)
}

func TestCampaignSweep_PriorityTierGetsCredit(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 3, 100)
	sub := newTestSubscription(t, 12, 3, vo.TierPriority, 70)
	f.setCandidates(sub)
	f.subRepo.GetActiveByUserIDFunc = func(ctx context.Context, userID uint) (*subscription.Subscription, error) {
		return sub, nil
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.High.Processed)
	assert.Len(t, f.billing.credits, 1)
	assert.Empty(t, f.billing.adjustments)
}

func TestCampaignSweep_DefaultHighBandActionIsWinBackEmail(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 4, 100)
	f.setCandidates(newTestSubscription(t, 13, 4, vo.TierStarter, 62))

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.High.Processed)
	assert.Len(t, f.email.winBackSent, 1)
	assert.Empty(t, f.email.retentionSent)
	assert.Empty(t, f.billing.adjustments)
	assert.Empty(t, f.billing.credits)
}

func TestCampaignSweep_CooldownSkipsCustomer(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 5, 600)
	f.setCandidates(newTestSubscription(t, 14, 5, vo.TierHomecare, 90))
	f.cooldown.TryAcquireFunc = func(ctx context.Context, userID uint, ttl time.Duration) (bool, error) {
		return false, nil
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Critical.Processed)
	assert.Empty(t, f.attempts.attempts)
}

func TestCampaignSweep_CooldownOutageDoesNotHaltCampaign(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 6, 600)
	f.setCandidates(newTestSubscription(t, 15, 6, vo.TierHomecare, 65))
	f.cooldown.TryAcquireFunc = func(ctx context.Context, userID uint, ttl time.Duration) (bool, error) {
		return false, errors.New("redis: connection refused")
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.High.Processed)
}

func TestCampaignSweep_OneCustomerFailureDoesNotBlockOthers(t *testing.T) {
	f := newCampaignFixture(t)
	f.addUser(t, 7, 600)
	f.addUser(t, 8, 600)
	f.setCandidates(
		newTestSubscription(t, 16, 7, vo.TierHomecare, 72),
		newTestSubscription(t, 17, 8, vo.TierHomecare, 68),
	)
	f.billing.CreateAdjustmentFunc = func(ctx context.Context, adjustment *billing.Adjustment) error {
		if adjustment.UserID() == 7 {
			return errors.New("billing provider unavailable")
		}
		return nil
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.High.Processed)
	assert.Equal(t, 1, summary.High.Failed)
}

func TestCampaignSweep_RepositoryErrorAborts(t *testing.T) {
	f := newCampaignFixture(t)
	f.subRepo.FindHighRiskFunc = func(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error) {
		return nil, errors.New("connection reset")
	}

	_, err := f.uc.Execute(context.Background())

	require.Error(t, err)
}

func TestCampaignSweep_QueryUsesConfiguredThresholdAndLimit(t *testing.T) {
	f := newCampaignFixture(t)
	var gotMin float64
	var gotLimit int
	f.subRepo.FindHighRiskFunc = func(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error) {
		gotMin, gotLimit = minScore, limit
		return nil, nil
	}

	_, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 60.0, gotMin)
	assert.Equal(t, 50, gotLimit)
}
