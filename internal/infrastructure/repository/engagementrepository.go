package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// EngagementRepositoryImpl answers the activity counters the risk scorer
// needs. All reads are aggregate queries; no entities cross this boundary.
type EngagementRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewEngagementRepository(db *gorm.DB, logger logger.Interface) churn.EngagementReader {
	return &EngagementRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *EngagementRepositoryImpl) CountPauses(ctx context.Context, subscriptionID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriptionPauseModel{}).
		Where("subscription_id = ?", subscriptionID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count subscription pauses", "subscription_id", subscriptionID, "error", err)
		return 0, fmt.Errorf("failed to count pauses: %w", err)
	}
	return int(count), nil
}

// GetPerkUsage returns the perk flags; a subscription without a row has
// simply never used any perk.
func (r *EngagementRepositoryImpl) GetPerkUsage(ctx context.Context, subscriptionID uint) (churn.PerkUsage, error) {
	var model models.PerkUsageModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return churn.PerkUsage{}, nil
		}
		r.logger.Errorw("failed to load perk usage", "subscription_id", subscriptionID, "error", err)
		return churn.PerkUsage{}, fmt.Errorf("failed to load perk usage: %w", err)
	}

	return churn.PerkUsage{
		PriorityBookingUsed:  model.PriorityBookingUsed,
		DiscountUsed:         model.DiscountUsed,
		FreeServiceUsed:      model.FreeServiceUsed,
		EmergencyServiceUsed: model.EmergencyServiceUsed,
	}, nil
}

// CountAdditionalProperties counts covered homes beyond the primary
// residence.
func (r *EngagementRepositoryImpl) CountAdditionalProperties(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("user_id = ?", userID).
		Where("is_primary = ?", false).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count properties", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return int(count), nil
}

func (r *EngagementRepositoryImpl) SumRewardCredits(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.RewardCreditModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		r.logger.Errorw("failed to sum reward credits", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to sum reward credits: %w", err)
	}
	return total, nil
}

func (r *EngagementRepositoryImpl) CountBookingsSince(ctx context.Context, userID uint, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("user_id = ?", userID).
		Where("scheduled_at >= ?", since).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count recent bookings", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count recent bookings: %w", err)
	}
	return int(count), nil
}
