package billing

import (
	"fmt"
	"time"
)

// Adjustment is a one-off discount applied to a customer's next invoice.
// Retention discounts are created pre-approved; no review step exists.
type Adjustment struct {
	id        uint
	userID    uint
	amount    float64
	reason    string
	createdAt time.Time
}

// NewAdjustment creates a billing adjustment for the given amount in dollars.
func NewAdjustment(userID uint, amount float64, reason string) (*Adjustment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("adjustment amount must be positive")
	}
	if reason == "" {
		return nil, fmt.Errorf("adjustment reason is required")
	}

	return &Adjustment{
		userID:    userID,
		amount:    amount,
		reason:    reason,
		createdAt: time.Now(),
	}, nil
}

func (a *Adjustment) ID() uint             { return a.id }
func (a *Adjustment) UserID() uint         { return a.userID }
func (a *Adjustment) Amount() float64      { return a.amount }
func (a *Adjustment) Reason() string       { return a.reason }
func (a *Adjustment) CreatedAt() time.Time { return a.createdAt }

// SetID sets the adjustment ID (only for persistence layer use)
func (a *Adjustment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("adjustment ID is already set")
	}
	a.id = id
	return nil
}
