package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/hearth-labs/hearth/internal/shared/constants"
)

// RetentionAttemptModel is the durable audit trail of retention
// interventions. Rows are append-only.
type RetentionAttemptModel struct {
	ID           uint    `gorm:"primarykey"`
	UserID       uint    `gorm:"not null;index:idx_attempt_user"`
	Action       string  `gorm:"not null;size:20;index:idx_attempt_action"`
	Workflow     string  `gorm:"not null;size:20"`
	Status       string  `gorm:"not null;size:10"`
	ErrorMessage *string `gorm:"size:1000"`
	Metadata     datatypes.JSON
	CreatedAt    time.Time `gorm:"index:idx_attempt_created"`
}

func (RetentionAttemptModel) TableName() string {
	return constants.TableRetentionAttempts
}
