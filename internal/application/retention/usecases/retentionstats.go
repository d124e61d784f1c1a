package usecases

import (
	"context"
	"fmt"

	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// RetentionStats aggregates the attempt audit trail over a trailing window.
type RetentionStats struct {
	WindowDays    int              `json:"window_days"`
	TotalAttempts int64            `json:"total_attempts"`
	Delivered     int64            `json:"delivered"`
	Failed        int64            `json:"failed"`
	ByAction      map[string]int64 `json:"by_action"`
}

// RetentionStatsUseCase computes campaign statistics from the persisted
// attempt table rather than estimates.
type RetentionStatsUseCase struct {
	attemptRepo retention.AttemptRepository
	logger      logger.Interface
}

func NewRetentionStatsUseCase(attemptRepo retention.AttemptRepository, logger logger.Interface) *RetentionStatsUseCase {
	return &RetentionStatsUseCase{
		attemptRepo: attemptRepo,
		logger:      logger,
	}
}

// Execute aggregates attempts over the trailing windowDays days.
func (uc *RetentionStatsUseCase) Execute(ctx context.Context, windowDays int) (RetentionStats, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	counts, err := uc.attemptRepo.StatsSince(ctx, biztime.DaysAgoUTC(windowDays))
	if err != nil {
		return RetentionStats{}, fmt.Errorf("failed to aggregate retention attempts: %w", err)
	}

	stats := RetentionStats{
		WindowDays: windowDays,
		ByAction:   make(map[string]int64),
	}
	for _, c := range counts {
		stats.Delivered += c.Delivered
		stats.Failed += c.Failed
		stats.ByAction[c.Action.String()] = c.Delivered + c.Failed
	}
	stats.TotalAttempts = stats.Delivered + stats.Failed

	return stats, nil
}
