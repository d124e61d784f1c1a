package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// SubscriptionModel is the persistence model for home-care subscriptions.
// This is the anti-corruption layer between domain and database.
type SubscriptionModel struct {
	ID               uint      `gorm:"primarykey"`
	UserID           uint      `gorm:"not null;index:idx_user_subscription"`
	Tier             string    `gorm:"not null;size:20"`
	Frequency        string    `gorm:"not null;size:20"`
	Status           string    `gorm:"not null;size:20;index:idx_status"`
	StartDate        time.Time `gorm:"not null"`
	ChurnRiskScore   float64   `gorm:"not null;default:0;index:idx_churn_risk"`
	AvailableCredits float64   `gorm:"not null;default:0"`
	CancelledAt      *time.Time
	CancelReason     *string `gorm:"size:500"`
	Version          int     `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
