package billing

import (
	"fmt"
	"time"
)

// CreditTransaction records service credit granted to a subscription.
// The subscription's available-credit counter is incremented in the same
// database transaction that inserts this row.
type CreditTransaction struct {
	id             uint
	userID         uint
	subscriptionID uint
	amount         float64
	source         string
	createdAt      time.Time
}

// NewCreditTransaction creates a credit grant.
func NewCreditTransaction(userID, subscriptionID uint, amount float64, source string) (*CreditTransaction, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive")
	}

	return &CreditTransaction{
		userID:         userID,
		subscriptionID: subscriptionID,
		amount:         amount,
		source:         source,
		createdAt:      time.Now(),
	}, nil
}

func (c *CreditTransaction) ID() uint             { return c.id }
func (c *CreditTransaction) UserID() uint         { return c.userID }
func (c *CreditTransaction) SubscriptionID() uint { return c.subscriptionID }
func (c *CreditTransaction) Amount() float64      { return c.amount }
func (c *CreditTransaction) Source() string       { return c.source }
func (c *CreditTransaction) CreatedAt() time.Time { return c.createdAt }

// SetID sets the transaction ID (only for persistence layer use)
func (c *CreditTransaction) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("credit transaction ID is already set")
	}
	c.id = id
	return nil
}
