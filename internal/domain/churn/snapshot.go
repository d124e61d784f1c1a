package churn

import (
	"time"

	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
)

// PerkUsage records which plan perks a subscriber has ever used.
type PerkUsage struct {
	PriorityBookingUsed  bool
	DiscountUsed         bool
	FreeServiceUsed      bool
	EmergencyServiceUsed bool
}

// Score returns the fraction of perks used, in [0, 1].
func (p PerkUsage) Score() float64 {
	used := 0
	for _, b := range []bool{p.PriorityBookingUsed, p.DiscountUsed, p.FreeServiceUsed, p.EmergencyServiceUsed} {
		if b {
			used++
		}
	}
	return float64(used) / 4
}

// SubscriberSnapshot is the read-only account state the risk scorer operates
// on. It is assembled from several stores immediately before scoring and
// discarded afterwards.
type SubscriberSnapshot struct {
	SubscriptionCreatedAt   time.Time
	PaymentFrequency        vo.PaymentFrequency
	PauseCount              int
	PerkUsage               PerkUsage
	AdditionalPropertyCount int
	TotalRewardCredits      float64
	RecentBookingCount      int
	Tier                    vo.Tier
}

// SubscriptionAgeMonths approximates subscription age as elapsed time over
// 30-day months. Deliberately not calendar-aware.
func (s SubscriberSnapshot) SubscriptionAgeMonths(now time.Time) float64 {
	return now.Sub(s.SubscriptionCreatedAt).Hours() / (24 * 30)
}
