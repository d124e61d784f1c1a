package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/mappers"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

type RetentionAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RetentionAttemptMapper
	logger logger.Interface
}

func NewRetentionAttemptRepository(db *gorm.DB, logger logger.Interface) retention.AttemptRepository {
	return &RetentionAttemptRepositoryImpl{
		db:     db,
		mapper: mappers.NewRetentionAttemptMapper(),
		logger: logger,
	}
}

func (r *RetentionAttemptRepositoryImpl) Create(ctx context.Context, attempt *retention.Attempt) error {
	model, err := r.mapper.ToModel(attempt)
	if err != nil {
		r.logger.Errorw("failed to map retention attempt to model", "error", err)
		return fmt.Errorf("failed to map retention attempt: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create retention attempt", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create retention attempt: %w", err)
	}

	if err := attempt.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set attempt ID: %w", err)
	}

	return nil
}

func (r *RetentionAttemptRepositoryImpl) ListByUserID(ctx context.Context, userID uint, limit int) ([]*retention.Attempt, error) {
	var attemptModels []*models.RetentionAttemptModel

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&attemptModels).Error; err != nil {
		r.logger.Errorw("failed to list retention attempts", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list retention attempts: %w", err)
	}

	return r.mapper.ToEntities(attemptModels)
}

func (r *RetentionAttemptRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RetentionAttemptModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count retention attempts", "error", err)
		return 0, fmt.Errorf("failed to count retention attempts: %w", err)
	}
	return count, nil
}

// StatsSince aggregates the audit trail per action. The grouping happens in
// the database; the rows come back already folded.
func (r *RetentionAttemptRepositoryImpl) StatsSince(ctx context.Context, since time.Time) ([]retention.ActionCount, error) {
	var rows []struct {
		Action    string
		Delivered int64
		Failed    int64
	}

	err := r.db.WithContext(ctx).Model(&models.RetentionAttemptModel{}).
		Select(
			"action, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS delivered, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS failed",
			string(retention.AttemptStatusSent),
			string(retention.AttemptStatusFailed),
		).
		Where("created_at >= ?", since).
		Group("action").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate retention attempts", "error", err)
		return nil, fmt.Errorf("failed to aggregate retention attempts: %w", err)
	}

	counts := make([]retention.ActionCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, retention.ActionCount{
			Action:    retention.Action(row.Action),
			Delivered: row.Delivered,
			Failed:    row.Failed,
		})
	}
	return counts, nil
}
