package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hearth-labs/hearth/internal/domain/billing"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionPauseModel{},
		&models.PerkUsageModel{},
		&models.PropertyModel{},
		&models.RewardCreditModel{},
		&models.BookingModel{},
		&models.RetentionAttemptModel{},
		&models.BillingAdjustmentModel{},
		&models.CreditTransactionModel{},
	))

	return db
}

func testLog() logger.Interface {
	return logger.NewLogger()
}

func seedSubscription(t *testing.T, db *gorm.DB, userID uint, score float64, status string) uint {
	t.Helper()
	model := &models.SubscriptionModel{
		UserID:         userID,
		Tier:           string(vo.TierHomecare),
		Frequency:      string(vo.FrequencyMonthly),
		Status:         status,
		StartDate:      time.Now().AddDate(0, -6, 0),
		ChurnRiskScore: score,
		Version:        1,
	}
	require.NoError(t, db.Create(model).Error)
	return model.ID
}

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLog())
	ctx := context.Background()

	sub, err := subscription.NewSubscription(1, vo.TierPriority, vo.FrequencyYearly, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sub))
	require.NotZero(t, sub.ID())

	loaded, err := repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, vo.TierPriority, loaded.Tier())
	assert.Equal(t, vo.StatusActive, loaded.Status())
	assert.Equal(t, 1, loaded.Version())
}

func TestSubscriptionRepository_GetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLog())

	loaded, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSubscriptionRepository_GetActiveByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLog())
	ctx := context.Background()

	seedSubscription(t, db, 5, 30, string(vo.StatusCancelled))
	activeID := seedSubscription(t, db, 5, 45, string(vo.StatusActive))

	loaded, err := repo.GetActiveByUserID(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, activeID, loaded.ID())

	none, err := repo.GetActiveByUserID(ctx, 77)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSubscriptionRepository_FindHighRiskOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLog())
	ctx := context.Background()

	seedSubscription(t, db, 1, 95, string(vo.StatusActive))
	seedSubscription(t, db, 2, 61, string(vo.StatusActive))
	seedSubscription(t, db, 3, 59.99, string(vo.StatusActive)) // below threshold
	seedSubscription(t, db, 4, 82, string(vo.StatusActive))
	seedSubscription(t, db, 5, 90, string(vo.StatusPaused)) // not active

	subs, err := repo.FindHighRisk(ctx, 60, 2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, 95.0, subs[0].ChurnRiskScore())
	assert.Equal(t, 82.0, subs[1].ChurnRiskScore())
}

func TestSubscriptionRepository_UpdateRiskScoreVersionCheck(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLog())
	ctx := context.Background()

	id := seedSubscription(t, db, 1, 40, string(vo.StatusActive))

	first, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, first.UpdateRiskScore(70))
	require.NoError(t, repo.UpdateRiskScore(ctx, first))

	// The second copy still holds the stale version; its write must lose.
	require.NoError(t, second.UpdateRiskScore(55))
	err = repo.UpdateRiskScore(ctx, second)
	assert.ErrorIs(t, err, subscription.ErrVersionConflict)

	loaded, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 70.0, loaded.ChurnRiskScore())
	assert.Equal(t, 2, loaded.Version())
}

func TestEngagementRepository_Counters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db, testLog())
	ctx := context.Background()

	subID := seedSubscription(t, db, 9, 0, string(vo.StatusActive))

	require.NoError(t, db.Create(&models.SubscriptionPauseModel{SubscriptionID: subID, PausedAt: time.Now()}).Error)
	require.NoError(t, db.Create(&models.SubscriptionPauseModel{SubscriptionID: subID, PausedAt: time.Now()}).Error)

	require.NoError(t, db.Create(&models.PerkUsageModel{
		SubscriptionID:      subID,
		PriorityBookingUsed: true,
		DiscountUsed:        true,
		FreeServiceUsed:     true,
	}).Error)

	require.NoError(t, db.Create(&models.PropertyModel{UserID: 9, Address: "12 Main St", IsPrimary: true}).Error)
	require.NoError(t, db.Create(&models.PropertyModel{UserID: 9, Address: "9 Lake Rd"}).Error)

	require.NoError(t, db.Create(&models.RewardCreditModel{UserID: 9, Amount: 30, Source: "referral"}).Error)
	require.NoError(t, db.Create(&models.RewardCreditModel{UserID: 9, Amount: 25, Source: "review"}).Error)

	require.NoError(t, db.Create(&models.BookingModel{UserID: 9, ServiceType: "hvac", ScheduledAt: time.Now().AddDate(0, 0, -10), Status: "completed"}).Error)
	require.NoError(t, db.Create(&models.BookingModel{UserID: 9, ServiceType: "plumbing", ScheduledAt: time.Now().AddDate(0, 0, -90), Status: "completed"}).Error)

	pauses, err := repo.CountPauses(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, 2, pauses)

	perks, err := repo.GetPerkUsage(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, 0.75, perks.Score())

	properties, err := repo.CountAdditionalProperties(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, properties)

	credits, err := repo.SumRewardCredits(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 55.0, credits)

	bookings, err := repo.CountBookingsSince(ctx, 9, time.Now().AddDate(0, 0, -60))
	require.NoError(t, err)
	assert.Equal(t, 1, bookings)
}

func TestEngagementRepository_MissingPerkRowMeansNoneUsed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db, testLog())

	perks, err := repo.GetPerkUsage(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, 0.0, perks.Score())
}

func TestRetentionAttemptRepository_CreateListStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRetentionAttemptRepository(db, testLog())
	ctx := context.Background()

	sent, err := retention.NewAttempt(1, retention.ActionEmail, retention.WorkflowManual, map[string]interface{}{"campaign": "spring"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sent))
	require.NotZero(t, sent.ID())

	failed, err := retention.NewFailedAttempt(1, retention.ActionCall, retention.WorkflowCriticalBand, assert.AnError)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, failed))

	other, err := retention.NewAttempt(2, retention.ActionDiscount, retention.WorkflowHighBand, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	listed, err := repo.ListByUserID(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	count, err := repo.CountSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	stats, err := repo.StatsSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	byAction := make(map[retention.Action]retention.ActionCount, len(stats))
	for _, s := range stats {
		byAction[s.Action] = s
	}
	assert.Equal(t, int64(1), byAction[retention.ActionEmail].Delivered)
	assert.Equal(t, int64(1), byAction[retention.ActionCall].Failed)
	assert.Equal(t, int64(0), byAction[retention.ActionCall].Delivered)
	assert.Equal(t, int64(1), byAction[retention.ActionDiscount].Delivered)
}

func TestBillingRepository_GrantCreditIncrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	billingRepo := NewBillingRepository(db, testLog())
	subRepo := NewSubscriptionRepository(db, testLog())
	ctx := context.Background()

	subID := seedSubscription(t, db, 3, 0, string(vo.StatusActive))

	creditTx, err := billing.NewCreditTransaction(3, subID, 50, "retention")
	require.NoError(t, err)
	require.NoError(t, billingRepo.GrantCredit(ctx, creditTx))
	require.NotZero(t, creditTx.ID())

	loaded, err := subRepo.GetByID(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, loaded.AvailableCredits())
}

func TestBillingRepository_GrantCreditUnknownSubscriptionRollsBack(t *testing.T) {
	db := setupTestDB(t)
	billingRepo := NewBillingRepository(db, testLog())
	ctx := context.Background()

	creditTx, err := billing.NewCreditTransaction(3, 999, 50, "retention")
	require.NoError(t, err)
	require.Error(t, billingRepo.GrantCredit(ctx, creditTx))

	var count int64
	require.NoError(t, db.Model(&models.CreditTransactionModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBillingRepository_CreateAdjustment(t *testing.T) {
	db := setupTestDB(t)
	billingRepo := NewBillingRepository(db, testLog())

	adjustment, err := billing.NewAdjustment(4, 25, "retention discount")
	require.NoError(t, err)
	require.NoError(t, billingRepo.CreateAdjustment(context.Background(), adjustment))
	require.NotZero(t, adjustment.ID())
}
