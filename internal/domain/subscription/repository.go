package subscription

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by version-checked updates when the row was
// modified by a concurrent writer since the aggregate was loaded.
var ErrVersionConflict = errors.New("subscription was modified concurrently")

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)

	// GetActiveByUserID returns the user's current active subscription,
	// or nil when none exists.
	GetActiveByUserID(ctx context.Context, userID uint) (*Subscription, error)

	// FindActive returns all active subscriptions.
	FindActive(ctx context.Context) ([]*Subscription, error)

	// FindHighRisk returns up to limit active subscriptions whose stored
	// churn risk score is at least minScore, ordered by score descending.
	FindHighRisk(ctx context.Context, minScore float64, limit int) ([]*Subscription, error)

	Update(ctx context.Context, sub *Subscription) error

	// UpdateRiskScore persists the aggregate's score with an optimistic
	// version check. Returns ErrVersionConflict on a lost update.
	UpdateRiskScore(ctx context.Context, sub *Subscription) error
}
