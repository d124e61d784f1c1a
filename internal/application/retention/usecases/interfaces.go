package usecases

import (
	"context"
	"time"
)

// EmailSender delivers retention emails. Delivery failures are reported to
// the caller, which records them in the attempt log.
type EmailSender interface {
	SendRetentionEmail(to, name string) error
	SendWinBackEmail(to, name string) error
}

// SMSSender delivers retention text messages through the SMS gateway.
type SMSSender interface {
	SendRetentionSMS(ctx context.Context, phone, message string) error
}

// CallScheduler books a personal outreach call with the care team.
type CallScheduler interface {
	ScheduleRetentionCall(ctx context.Context, userID uint, name, phone string) error
}

// CooldownGuard prevents re-targeting a customer who was contacted recently.
// TryAcquire atomically claims the cooldown window; false means skip.
type CooldownGuard interface {
	TryAcquire(ctx context.Context, userID uint, ttl time.Duration) (bool, error)
}
