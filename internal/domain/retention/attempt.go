package retention

import (
	"fmt"
	"time"
)

// Workflow identifies which retention flow produced an attempt.
type Workflow string

const (
	WorkflowCriticalBand Workflow = "critical_band"
	WorkflowHighBand     Workflow = "high_band"
	WorkflowManual       Workflow = "manual"
)

// AttemptStatus records whether an intervention was delivered.
type AttemptStatus string

const (
	AttemptStatusSent   AttemptStatus = "sent"
	AttemptStatusFailed AttemptStatus = "failed"
)

// Attempt is an append-only audit record of a retention intervention.
// Every action execution writes one, successful or not.
type Attempt struct {
	id           uint
	userID       uint
	action       Action
	workflow     Workflow
	status       AttemptStatus
	errorMessage *string
	metadata     map[string]interface{}
	createdAt    time.Time
}

// NewAttempt creates a sent attempt record.
func NewAttempt(userID uint, action Action, workflow Workflow, metadata map[string]interface{}) (*Attempt, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !validActions[action] {
		return nil, fmt.Errorf("unknown retention action: %s", action)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Attempt{
		userID:    userID,
		action:    action,
		workflow:  workflow,
		status:    AttemptStatusSent,
		metadata:  metadata,
		createdAt: time.Now(),
	}, nil
}

// NewFailedAttempt creates a failed attempt record carrying the cause.
func NewFailedAttempt(userID uint, action Action, workflow Workflow, cause error) (*Attempt, error) {
	attempt, err := NewAttempt(userID, action, workflow, nil)
	if err != nil {
		return nil, err
	}
	msg := cause.Error()
	attempt.status = AttemptStatusFailed
	attempt.errorMessage = &msg
	return attempt, nil
}

// ReconstructAttempt rebuilds an attempt from persistence.
func ReconstructAttempt(
	id, userID uint,
	action Action,
	workflow Workflow,
	status AttemptStatus,
	errorMessage *string,
	metadata map[string]interface{},
	createdAt time.Time,
) (*Attempt, error) {
	if id == 0 {
		return nil, fmt.Errorf("attempt ID cannot be zero")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Attempt{
		id:           id,
		userID:       userID,
		action:       action,
		workflow:     workflow,
		status:       status,
		errorMessage: errorMessage,
		metadata:     metadata,
		createdAt:    createdAt,
	}, nil
}

func (a *Attempt) ID() uint                           { return a.id }
func (a *Attempt) UserID() uint                       { return a.userID }
func (a *Attempt) Action() Action                     { return a.action }
func (a *Attempt) Workflow() Workflow                 { return a.workflow }
func (a *Attempt) Status() AttemptStatus              { return a.status }
func (a *Attempt) ErrorMessage() *string              { return a.errorMessage }
func (a *Attempt) Metadata() map[string]interface{}   { return a.metadata }
func (a *Attempt) CreatedAt() time.Time               { return a.createdAt }

// SetID sets the attempt ID (only for persistence layer use)
func (a *Attempt) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attempt ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attempt ID cannot be zero")
	}
	a.id = id
	return nil
}

// Delivered reports whether the intervention went out.
func (a *Attempt) Delivered() bool {
	return a.status == AttemptStatusSent
}
