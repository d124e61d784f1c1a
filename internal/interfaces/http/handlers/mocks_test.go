package handlers

import (
	"context"
	"testing"
	"time"

	churnApp "github.com/hearth-labs/hearth/internal/application/churn"
	retentionApp "github.com/hearth-labs/hearth/internal/application/retention"
	"github.com/hearth-labs/hearth/internal/application/retention/usecases"
	"github.com/hearth-labs/hearth/internal/domain/billing"
	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/domain/user"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// =====================================================================
// Domain-level mocks: handlers are tested through real services wired
// over these fakes, so requests exercise binding, dispatch, and the
// response envelope end to end.
// =====================================================================

type mockUserRepository struct {
	users map[uint]*user.User
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

type mockSubscriptionRepository struct {
	active  map[uint]*subscription.Subscription
	actives []*subscription.Subscription
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	return m.active[userID], nil
}

func (m *mockSubscriptionRepository) FindActive(ctx context.Context) ([]*subscription.Subscription, error) {
	return m.actives, nil
}

func (m *mockSubscriptionRepository) FindHighRisk(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) UpdateRiskScore(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

type mockEngagementReader struct{}

func (m *mockEngagementReader) CountPauses(ctx context.Context, subscriptionID uint) (int, error) {
	return 0, nil
}

func (m *mockEngagementReader) GetPerkUsage(ctx context.Context, subscriptionID uint) (churn.PerkUsage, error) {
	return churn.PerkUsage{PriorityBookingUsed: true, DiscountUsed: true}, nil
}

func (m *mockEngagementReader) CountAdditionalProperties(ctx context.Context, userID uint) (int, error) {
	return 0, nil
}

func (m *mockEngagementReader) SumRewardCredits(ctx context.Context, userID uint) (float64, error) {
	return 0, nil
}

func (m *mockEngagementReader) CountBookingsSince(ctx context.Context, userID uint, since time.Time) (int, error) {
	return 1, nil
}

type mockAttemptRepository struct {
	attempts []*retention.Attempt
}

func (m *mockAttemptRepository) Create(ctx context.Context, attempt *retention.Attempt) error {
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
	return int64(len(m.attempts)), nil
}

func (m *mockAttemptRepository) StatsSince(ctx context.Context, since time.Time) ([]retention.ActionCount, error) {
	return []retention.ActionCount{
		{Action: "email", Delivered: 3, Failed: 1},
	}, nil
}

type mockBillingRepository struct {
	adjustments []*billing.Adjustment
	credits     []*billing.CreditTransaction
}

func (m *mockBillingRepository) CreateAdjustment(ctx context.Context, adjustment *billing.Adjustment) error {
	m.adjustments = append(m.adjustments, adjustment)
	return nil
}

func (m *mockBillingRepository) GrantCredit(ctx context.Context, tx *billing.CreditTransaction) error {
	m.credits = append(m.credits, tx)
	return nil
}

type mockEmailSender struct {
	retentionSent []string
	winBackSent   []string
}

func (m *mockEmailSender) SendRetentionEmail(to, name string) error {
	m.retentionSent = append(m.retentionSent, to)
	return nil
}

func (m *mockEmailSender) SendWinBackEmail(to, name string) error {
	m.winBackSent = append(m.winBackSent, to)
	return nil
}

type mockGateway struct {
	smsSent        []string
	callsScheduled []uint
}

func (m *mockGateway) SendRetentionSMS(ctx context.Context, phone, message string) error {
	m.smsSent = append(m.smsSent, phone)
	return nil
}

func (m *mockGateway) ScheduleRetentionCall(ctx context.Context, userID uint, name, phone string) error {
	m.callsScheduled = append(m.callsScheduled, userID)
	return nil
}

type mockCooldownGuard struct{}

func (m *mockCooldownGuard) TryAcquire(ctx context.Context, userID uint, ttl time.Duration) (bool, error) {
	return true, nil
}

// =====================================================================
// Fixtures
// =====================================================================

type serviceFixture struct {
	churnService     *churnApp.Service
	retentionService *retentionApp.Service
	attemptRepo      *mockAttemptRepository
	billingRepo      *mockBillingRepository
	email            *mockEmailSender
	gateway          *mockGateway
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	knownUser, err := user.Reconstruct(1, "customer@example.com", "Jamie Park", "+15550100", 300, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("reconstruct user: %v", err)
	}

	sub, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:             7,
		UserID:         1,
		Tier:           vo.TierHomecare,
		Frequency:      vo.FrequencyMonthly,
		Status:         vo.StatusActive,
		StartDate:      time.Now().AddDate(0, -6, 0),
		ChurnRiskScore: 72,
		Version:        1,
		CreatedAt:      time.Now().AddDate(0, -6, 0),
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		t.Fatalf("reconstruct subscription: %v", err)
	}

	userRepo := &mockUserRepository{users: map[uint]*user.User{1: knownUser}}
	subRepo := &mockSubscriptionRepository{
		active:  map[uint]*subscription.Subscription{1: sub},
		actives: []*subscription.Subscription{sub},
	}
	attemptRepo := &mockAttemptRepository{}
	billingRepo := &mockBillingRepository{}
	emailSender := &mockEmailSender{}
	gateway := &mockGateway{}
	log := logger.NewLogger()

	churnService := churnApp.NewService(subRepo, &mockEngagementReader{}, attemptRepo, nil, 60*24*time.Hour, log)

	retentionService := retentionApp.NewService(
		userRepo, subRepo, billingRepo, attemptRepo,
		emailSender, gateway, gateway, &mockCooldownGuard{},
		usecases.ActionAmounts{Discount: 25, Credit: 50},
		usecases.CampaignConfig{
			HighRiskThreshold:      60,
			CriticalThreshold:      80,
			BatchLimit:             50,
			LifetimeValueThreshold: 500,
			Cooldown:               7 * 24 * time.Hour,
		},
		log,
	)

	return &serviceFixture{
		churnService:     churnService,
		retentionService: retentionService,
		attemptRepo:      attemptRepo,
		billingRepo:      billingRepo,
		email:            emailSender,
		gateway:          gateway,
	}
}
