package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/mappers"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created successfully", "id", model.ID, "user_id", model.UserID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetActiveByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", string(vo.StatusActive)).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get active subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) FindActive(ctx context.Context) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("status = ?", string(vo.StatusActive)).
		Order("id ASC").
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to find active subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find active subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) FindHighRisk(ctx context.Context, minScore float64, limit int) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("status = ?", string(vo.StatusActive)).
		Where("churn_risk_score >= ?", minScore).
		Order("churn_risk_score DESC").
		Limit(limit).
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to find high-risk subscriptions", "min_score", minScore, "error", err)
		return nil, fmt.Errorf("failed to find high-risk subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "id", sub.ID(), "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"tier":              model.Tier,
			"frequency":         model.Frequency,
			"status":            model.Status,
			"start_date":        model.StartDate,
			"churn_risk_score":  model.ChurnRiskScore,
			"available_credits": model.AvailableCredits,
			"cancelled_at":      model.CancelledAt,
			"cancel_reason":     model.CancelReason,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	return nil
}

// UpdateRiskScore persists the score with an optimistic version check.
// The aggregate bumped its version in memory; the row must still hold the
// previous one or the update lost a race.
func (r *SubscriptionRepositoryImpl) UpdateRiskScore(ctx context.Context, sub *subscription.Subscription) error {
	result := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Where("version = ?", sub.Version()-1).
		Updates(map[string]interface{}{
			"churn_risk_score": sub.ChurnRiskScore(),
			"version":          sub.Version(),
			"updated_at":       sub.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update risk score", "id", sub.ID(), "error", result.Error)
		return fmt.Errorf("failed to update risk score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrVersionConflict
	}

	return nil
}
