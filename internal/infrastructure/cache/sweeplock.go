package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// SweepLock is a Redis lock that keeps scheduled sweeps single-flight
// across instances. The in-process scheduler already serializes jobs
// within one instance; this guards multi-instance deployments.
type SweepLock struct {
	client *redis.Client
}

func NewSweepLock(client *redis.Client) *SweepLock {
	return &SweepLock{client: client}
}

func (l *SweepLock) buildKey(job string) string {
	return constants.RedisKeySweepLock + job
}

// TryLock acquires the named job lock for ttl. Returns false when another
// instance holds it.
func (l *SweepLock) TryLock(ctx context.Context, job string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.buildKey(job), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	return acquired, nil
}

// Unlock releases the named job lock.
func (l *SweepLock) Unlock(ctx context.Context, job string) error {
	if err := l.client.Del(ctx, l.buildKey(job)).Err(); err != nil {
		return fmt.Errorf("failed to release sweep lock: %w", err)
	}
	return nil
}
