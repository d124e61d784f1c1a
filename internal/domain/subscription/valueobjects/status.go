package valueobjects

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusPaused    SubscriptionStatus = "paused"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// ValidStatuses is the set of statuses accepted from persistence
var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusPaused:    true,
	StatusCancelled: true,
	StatusExpired:   true,
}

// allowed transitions; cancelled and expired are terminal
var statusTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusActive: {StatusPaused, StatusCancelled, StatusExpired},
	StatusPaused: {StatusActive, StatusCancelled, StatusExpired},
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the status may move to target.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}
