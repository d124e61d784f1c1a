package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// DefaultAssessmentTTL bounds how stale a served assessment can be.
const DefaultAssessmentTTL = 5 * time.Minute

// AssessmentCache is a short-lived read-through cache for on-demand risk
// assessments, keyed by user. A miss returns (nil, nil).
type AssessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAssessmentCache(client *redis.Client, ttl time.Duration) *AssessmentCache {
	if ttl <= 0 {
		ttl = DefaultAssessmentTTL
	}
	return &AssessmentCache{client: client, ttl: ttl}
}

func (c *AssessmentCache) buildKey(userID uint) string {
	return fmt.Sprintf("%s%d", constants.RedisKeyAssessmentCache, userID)
}

func (c *AssessmentCache) Get(ctx context.Context, userID uint) (*churn.RiskAssessment, error) {
	raw, err := c.client.Get(ctx, c.buildKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached assessment: %w", err)
	}

	var assessment churn.RiskAssessment
	if err := json.Unmarshal(raw, &assessment); err != nil {
		return nil, fmt.Errorf("failed to decode cached assessment: %w", err)
	}
	return &assessment, nil
}

func (c *AssessmentCache) Set(ctx context.Context, userID uint, assessment churn.RiskAssessment) error {
	raw, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}
	if err := c.client.Set(ctx, c.buildKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache assessment: %w", err)
	}
	return nil
}

// Invalidate drops the cached assessment, e.g. after a rescore sweep.
func (c *AssessmentCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.buildKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached assessment: %w", err)
	}
	return nil
}
