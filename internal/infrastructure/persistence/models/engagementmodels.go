package models

import (
	"time"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// SubscriptionPauseModel records one pause event on a subscription.
type SubscriptionPauseModel struct {
	ID             uint       `gorm:"primarykey"`
	SubscriptionID uint       `gorm:"not null;index:idx_pause_subscription"`
	PausedAt       time.Time  `gorm:"not null"`
	ResumedAt      *time.Time `gorm:""`
	Reason         *string    `gorm:"size:255"`
	CreatedAt      time.Time
}

func (SubscriptionPauseModel) TableName() string {
	return constants.TableSubscriptionPauses
}

// PerkUsageModel records which plan perks a subscription has ever used.
// One row per subscription, flags flip to true and stay true.
type PerkUsageModel struct {
	ID                   uint `gorm:"primarykey"`
	SubscriptionID       uint `gorm:"uniqueIndex;not null"`
	PriorityBookingUsed  bool `gorm:"not null;default:false"`
	DiscountUsed         bool `gorm:"not null;default:false"`
	FreeServiceUsed      bool `gorm:"not null;default:false"`
	EmergencyServiceUsed bool `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (PerkUsageModel) TableName() string {
	return constants.TablePerkUsages
}

// PropertyModel is one covered home. The first property per user is the
// primary residence; any further rows count as additional coverage.
type PropertyModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index:idx_property_user"`
	Address   string `gorm:"not null;size:500"`
	IsPrimary bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (PropertyModel) TableName() string {
	return constants.TableProperties
}

// RewardCreditModel is one earned loyalty reward.
type RewardCreditModel struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"not null;index:idx_reward_user"`
	Amount    float64 `gorm:"not null"`
	Source    string  `gorm:"not null;size:50"`
	CreatedAt time.Time
}

func (RewardCreditModel) TableName() string {
	return constants.TableRewardCredits
}

// BookingModel is one scheduled maintenance visit.
type BookingModel struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uint      `gorm:"not null;index:idx_booking_user"`
	ServiceType string    `gorm:"not null;size:50"`
	ScheduledAt time.Time `gorm:"not null;index:idx_booking_scheduled"`
	Status      string    `gorm:"not null;size:20"`
	CreatedAt   time.Time
}

func (BookingModel) TableName() string {
	return constants.TableBookings
}
