package subscription

import (
	"fmt"
	"time"

	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
)

// Subscription represents the home-care subscription aggregate root.
type Subscription struct {
	id               uint
	userID           uint
	tier             vo.Tier
	frequency        vo.PaymentFrequency
	status           vo.SubscriptionStatus
	startDate        time.Time
	churnRiskScore   float64
	availableCredits float64
	cancelledAt      *time.Time
	cancelReason     *string
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSubscription creates a new active subscription for a user.
func NewSubscription(userID uint, tier vo.Tier, frequency vo.PaymentFrequency, startDate time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if _, err := vo.NewTier(tier.String()); err != nil {
		return nil, err
	}
	if _, err := vo.NewPaymentFrequency(frequency.String()); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Subscription{
		userID:    userID,
		tier:      tier,
		frequency: frequency,
		status:    vo.StatusActive,
		startDate: startDate,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructParams carries the full persisted state of a subscription.
type ReconstructParams struct {
	ID               uint
	UserID           uint
	Tier             vo.Tier
	Frequency        vo.PaymentFrequency
	Status           vo.SubscriptionStatus
	StartDate        time.Time
	ChurnRiskScore   float64
	AvailableCredits float64
	CancelledAt      *time.Time
	CancelReason     *string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Reconstruct rebuilds a subscription from persistence.
func Reconstruct(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:               p.ID,
		userID:           p.UserID,
		tier:             p.Tier,
		frequency:        p.Frequency,
		status:           p.Status,
		startDate:        p.StartDate,
		churnRiskScore:   p.ChurnRiskScore,
		availableCredits: p.AvailableCredits,
		cancelledAt:      p.CancelledAt,
		cancelReason:     p.CancelReason,
		version:          p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) UserID() uint                  { return s.userID }
func (s *Subscription) Tier() vo.Tier                 { return s.tier }
func (s *Subscription) Frequency() vo.PaymentFrequency { return s.frequency }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) StartDate() time.Time          { return s.startDate }
func (s *Subscription) ChurnRiskScore() float64       { return s.churnRiskScore }
func (s *Subscription) AvailableCredits() float64     { return s.availableCredits }
func (s *Subscription) CancelledAt() *time.Time       { return s.cancelledAt }
func (s *Subscription) CancelReason() *string         { return s.cancelReason }
func (s *Subscription) Version() int                  { return s.version }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsActive reports whether the subscription is currently usable.
func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// UpdateRiskScore overwrites the stored churn risk score.
func (s *Subscription) UpdateRiskScore(score float64) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("risk score must be within [0, 100], got %.2f", score)
	}
	s.churnRiskScore = score
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// AddCredits increases the available service credit balance.
func (s *Subscription) AddCredits(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	s.availableCredits += amount
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// Pause suspends an active subscription.
func (s *Subscription) Pause() error {
	if s.status == vo.StatusPaused {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusPaused) {
		return fmt.Errorf("cannot pause subscription with status %s", s.status)
	}
	s.status = vo.StatusPaused
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// Resume reactivates a paused subscription.
func (s *Subscription) Resume() error {
	if s.status == vo.StatusActive {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot resume subscription with status %s", s.status)
	}
	s.status = vo.StatusActive
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// Cancel cancels a subscription with a reason.
func (s *Subscription) Cancel(reason string) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("cannot cancel subscription with status %s", s.status)
	}
	if reason == "" {
		return fmt.Errorf("cancel reason is required")
	}

	now := time.Now()
	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.cancelReason = &reason
	s.updatedAt = now
	s.version++
	return nil
}
