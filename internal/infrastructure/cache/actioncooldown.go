package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// ActionCooldown is the Redis-backed contact-window guard for retention
// campaigns. One key per customer; while it lives, campaigns skip them.
type ActionCooldown struct {
	client *redis.Client
}

func NewActionCooldown(client *redis.Client) *ActionCooldown {
	return &ActionCooldown{client: client}
}

func (c *ActionCooldown) buildKey(userID uint) string {
	return fmt.Sprintf("%s%d", constants.RedisKeyRetentionCooldown, userID)
}

// TryAcquire atomically claims the customer's contact window using SetNX.
// Returns false when the customer was already contacted within the window.
// SetNX prevents TOCTOU races between concurrent campaign instances.
func (c *ActionCooldown) TryAcquire(ctx context.Context, userID uint, ttl time.Duration) (bool, error) {
	acquired, err := c.client.SetNX(ctx, c.buildKey(userID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire retention cooldown: %w", err)
	}
	return acquired, nil
}

// Release drops the cooldown early, e.g. after a campaign rollback.
func (c *ActionCooldown) Release(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.buildKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to release retention cooldown: %w", err)
	}
	return nil
}
