package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// UserModel is the persistence model for customer accounts. The churn and
// retention flows only read it; account management lives elsewhere.
type UserModel struct {
	ID            uint    `gorm:"primarykey"`
	Email         string  `gorm:"uniqueIndex;not null;size:255"`
	Name          string  `gorm:"not null;size:100"`
	Phone         string  `gorm:"size:20"`
	LifetimeValue float64 `gorm:"not null;default:0;comment:total revenue in dollars"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
