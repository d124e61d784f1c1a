package churn

import (
	"math"
	"time"
)

// Factor names. Recommendation selection keys on some of these, so they are
// part of the scorer's contract, not just display strings.
const (
	FactorNewSubscription     = "New subscription"
	FactorLoyalCustomer       = "Loyal customer"
	FactorAnnualPayment       = "Annual payment"
	FactorMultiplePauses      = "Multiple pauses"
	FactorPreviousPause       = "Previous pause"
	FactorLowPerkUtilization  = "Low perk utilization"
	FactorHighPerkUtilization = "High perk utilization"
	FactorMultipleProperties  = "Multiple properties"
	FactorRewardEngagement    = "High reward engagement"
	FactorNoRecentBookings    = "No recent bookings"
	FactorActiveBookings      = "Active booking behavior"
	FactorPremiumTier         = "Premium tier"
	FactorBasicTier           = "Basic tier"
)

// baseScore is the neutral midpoint the factor deltas are applied to.
// Factor magnitudes are only meaningful relative to this baseline.
const baseScore = 50.0

// Score computes the churn risk assessment for a subscriber snapshot.
// It is a pure function of the snapshot and the supplied clock instant:
// identical inputs always produce identical assessments.
func Score(now time.Time, snap SubscriberSnapshot) RiskAssessment {
	var risk, protective []Factor

	addRisk := func(name string, points float64, desc string) {
		risk = append(risk, Factor{Name: name, Points: points, Description: desc})
	}
	addProtective := func(name string, points float64, desc string) {
		protective = append(protective, Factor{Name: name, Points: -points, Description: desc})
	}

	ageMonths := snap.SubscriptionAgeMonths(now)
	if ageMonths < 3 {
		addRisk(FactorNewSubscription, 25, "subscription is less than 3 months old")
	} else if ageMonths > 12 {
		addProtective(FactorLoyalCustomer, 10, "subscriber for more than a year")
	}

	if snap.PaymentFrequency.IsAnnual() {
		addProtective(FactorAnnualPayment, 15, "committed to annual billing")
	}

	// pause count of exactly 2 contributes nothing
	if snap.PauseCount > 2 {
		addRisk(FactorMultiplePauses, 20, "subscription paused more than twice")
	} else if snap.PauseCount == 1 {
		addRisk(FactorPreviousPause, 10, "subscription was paused once before")
	}

	usage := snap.PerkUsage.Score()
	if usage < 0.3 {
		addRisk(FactorLowPerkUtilization, 15, "most plan perks have never been used")
	} else if usage > 0.7 {
		addProtective(FactorHighPerkUtilization, 10, "most plan perks are in use")
	}

	if snap.AdditionalPropertyCount > 0 {
		addProtective(FactorMultipleProperties, 20, "covers more than one property")
	}

	if snap.TotalRewardCredits > 50 {
		addProtective(FactorRewardEngagement, 10, "actively earning reward credits")
	}

	if snap.RecentBookingCount == 0 {
		addRisk(FactorNoRecentBookings, 20, "no bookings in the trailing 60 days")
	} else if snap.RecentBookingCount > 3 {
		addProtective(FactorActiveBookings, 5, "frequent recent bookings")
	}

	if snap.Tier.IsPremium() {
		addProtective(FactorPremiumTier, 10, "on the priority plan")
	} else if snap.Tier.IsBasic() {
		addRisk(FactorBasicTier, 5, "on the starter plan")
	}

	score := baseScore
	for _, f := range risk {
		score += f.Points
	}
	for _, f := range protective {
		score += f.Points
	}
	score = round2(clamp(score, 0, 100))

	assessment := RiskAssessment{
		Score:             score,
		Level:             LevelForScore(score),
		RiskFactors:       risk,
		ProtectiveFactors: protective,
	}
	assessment.Recommendation = recommend(assessment)
	return assessment
}

// recommend chooses a fixed recommendation keyed on the risk level and the
// presence of specific named risk factors.
func recommend(a RiskAssessment) string {
	switch a.Level {
	case LevelCritical:
		return "Immediate outreach required: schedule a personal call and apply a service credit."
	case LevelHigh:
		if a.HasRiskFactor(FactorLowPerkUtilization) {
			return "Walk the customer through unused plan perks and how to book them."
		}
		if a.HasRiskFactor(FactorNoRecentBookings) {
			return "Offer a discounted maintenance visit to restart booking activity."
		}
		return "Enroll the customer in the win-back email sequence."
	case LevelMedium:
		return "Monitor the account and include it in the next engagement newsletter."
	default:
		return "No action needed; the account is healthy."
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
