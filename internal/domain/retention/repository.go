package retention

import (
	"context"
	"time"
)

// ActionCount aggregates attempts per action and delivery status.
type ActionCount struct {
	Action    Action
	Delivered int64
	Failed    int64
}

// AttemptRepository is the durable audit trail for retention interventions.
// Rows are append-only; nothing updates or deletes them.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *Attempt) error
	ListByUserID(ctx context.Context, userID uint, limit int) ([]*Attempt, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	StatsSince(ctx context.Context, since time.Time) ([]ActionCount, error)
}
