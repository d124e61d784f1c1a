package models

import (
	"time"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// BillingAdjustmentModel is a one-off discount against the next invoice.
type BillingAdjustmentModel struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"not null;index:idx_adjustment_user"`
	Amount    float64 `gorm:"not null"`
	Reason    string  `gorm:"not null;size:255"`
	CreatedAt time.Time
}

func (BillingAdjustmentModel) TableName() string {
	return constants.TableBillingAdjustments
}

// CreditTransactionModel records a service-credit grant. The subscription's
// available_credits counter is incremented in the same transaction.
type CreditTransactionModel struct {
	ID             uint    `gorm:"primarykey"`
	UserID         uint    `gorm:"not null;index:idx_credit_user"`
	SubscriptionID uint    `gorm:"not null;index:idx_credit_subscription"`
	Amount         float64 `gorm:"not null"`
	Source         string  `gorm:"not null;size:50"`
	CreatedAt      time.Time
}

func (CreditTransactionModel) TableName() string {
	return constants.TableCreditTransactions
}
