package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetentionStats_Aggregates(t *testing.T) {
	biztime.MustInit("")

	attempts := &mockAttemptRepository{}
	attempts.StatsSinceFunc = func(ctx context.Context, since time.Time) ([]retention.ActionCount, error) {
		return []retention.ActionCount{
			{Action: retention.ActionEmail, Delivered: 12, Failed: 3},
			{Action: retention.ActionDiscount, Delivered: 4, Failed: 0},
			{Action: retention.ActionCall, Delivered: 1, Failed: 1},
		}, nil
	}

	uc := NewRetentionStatsUseCase(attempts, &mockLogger{})
	stats, err := uc.Execute(context.Background(), 30)

	require.NoError(t, err)
	assert.Equal(t, 30, stats.WindowDays)
	assert.Equal(t, int64(21), stats.TotalAttempts)
	assert.Equal(t, int64(17), stats.Delivered)
	assert.Equal(t, int64(4), stats.Failed)
	assert.Equal(t, int64(15), stats.ByAction["email"])
	assert.Equal(t, int64(4), stats.ByAction["discount"])
	assert.Equal(t, int64(2), stats.ByAction["call"])
}

func TestRetentionStats_DefaultWindow(t *testing.T) {
	biztime.MustInit("")

	var gotSince time.Time
	attempts := &mockAttemptRepository{}
	attempts.StatsSinceFunc = func(ctx context.Context, since time.Time) ([]retention.ActionCount, error) {
		gotSince = since
		return nil, nil
	}

	uc := NewRetentionStatsUseCase(attempts, &mockLogger{})
	stats, err := uc.Execute(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 30, stats.WindowDays)
	assert.Equal(t, int64(0), stats.TotalAttempts)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), gotSince, time.Minute)
}
