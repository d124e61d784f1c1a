package valueobjects

import "fmt"

// Tier represents the subscription plan tier.
type Tier string

const (
	TierStarter  Tier = "starter"
	TierHomecare Tier = "homecare"
	TierPriority Tier = "priority"
)

var validTiers = map[Tier]bool{
	TierStarter:  true,
	TierHomecare: true,
	TierPriority: true,
}

// NewTier parses and validates a tier value.
func NewTier(value string) (Tier, error) {
	t := Tier(value)
	if !validTiers[t] {
		return "", fmt.Errorf("invalid subscription tier: %s", value)
	}
	return t, nil
}

func (t Tier) String() string {
	return string(t)
}

// IsPremium reports whether the tier is the top plan.
func (t Tier) IsPremium() bool {
	return t == TierPriority
}

// IsBasic reports whether the tier is the entry plan.
func (t Tier) IsBasic() bool {
	return t == TierStarter
}
