package retention

import "fmt"

// Action is one of the closed set of retention interventions.
type Action string

const (
	ActionEmail    Action = "email"
	ActionCall     Action = "call"
	ActionDiscount Action = "discount"
	ActionCredit   Action = "credit"
)

var validActions = map[Action]bool{
	ActionEmail:    true,
	ActionCall:     true,
	ActionDiscount: true,
	ActionCredit:   true,
}

// ParseAction validates an action value. "sms" is accepted as an alias for
// call: both go through the phone-outreach path.
func ParseAction(value string) (Action, error) {
	if value == "sms" {
		return ActionCall, nil
	}
	a := Action(value)
	if !validActions[a] {
		return "", fmt.Errorf("unknown retention action: %s", value)
	}
	return a, nil
}

func (a Action) String() string {
	return string(a)
}
