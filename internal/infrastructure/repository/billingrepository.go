package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/domain/billing"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

type BillingRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewBillingRepository(db *gorm.DB, logger logger.Interface) billing.Repository {
	return &BillingRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *BillingRepositoryImpl) CreateAdjustment(ctx context.Context, adjustment *billing.Adjustment) error {
	model := &models.BillingAdjustmentModel{
		UserID:    adjustment.UserID(),
		Amount:    adjustment.Amount(),
		Reason:    adjustment.Reason(),
		CreatedAt: adjustment.CreatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create billing adjustment", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create billing adjustment: %w", err)
	}

	if err := adjustment.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set adjustment ID: %w", err)
	}

	r.logger.Infow("billing adjustment created", "id", model.ID, "user_id", model.UserID, "amount", model.Amount)
	return nil
}

// GrantCredit inserts the transaction row and increments the subscription's
// available-credit counter in one database transaction. Either both land or
// neither does.
func (r *BillingRepositoryImpl) GrantCredit(ctx context.Context, creditTx *billing.CreditTransaction) error {
	model := &models.CreditTransactionModel{
		UserID:         creditTx.UserID(),
		SubscriptionID: creditTx.SubscriptionID(),
		Amount:         creditTx.Amount(),
		Source:         creditTx.Source(),
		CreatedAt:      creditTx.CreatedAt(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create credit transaction: %w", err)
		}

		result := tx.Model(&models.SubscriptionModel{}).
			Where("id = ?", model.SubscriptionID).
			Update("available_credits", gorm.Expr("available_credits + ?", model.Amount))
		if result.Error != nil {
			return fmt.Errorf("failed to increment available credits: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("subscription %d not found for credit grant", model.SubscriptionID)
		}

		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to grant credit", "user_id", model.UserID, "subscription_id", model.SubscriptionID, "error", err)
		return err
	}

	if err := creditTx.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set credit transaction ID: %w", err)
	}

	r.logger.Infow("credit granted", "id", model.ID, "subscription_id", model.SubscriptionID, "amount", model.Amount)
	return nil
}
