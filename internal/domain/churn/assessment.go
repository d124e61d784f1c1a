package churn

// RiskLevel buckets a numeric risk score into an actionable severity.
type RiskLevel string

const (
	LevelMinimal  RiskLevel = "minimal"
	LevelLow      RiskLevel = "low"
	LevelMedium   RiskLevel = "medium"
	LevelHigh     RiskLevel = "high"
	LevelCritical RiskLevel = "critical"
)

// Score thresholds for risk levels. Boundaries are inclusive-low:
// a score of exactly 80 is critical, exactly 60 is high.
const (
	CriticalThreshold = 80.0
	HighThreshold     = 60.0
	MediumThreshold   = 40.0
	LowThreshold      = 20.0
)

// LevelForScore maps a score to its risk level, evaluated high to low.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= CriticalThreshold:
		return LevelCritical
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	case score >= LowThreshold:
		return LevelLow
	default:
		return LevelMinimal
	}
}

func (l RiskLevel) String() string {
	return string(l)
}

// Factor is a named condition that contributed to the risk score.
// Points are signed: positive for risk factors, negative for protective ones.
type Factor struct {
	Name        string  `json:"name"`
	Points      float64 `json:"points"`
	Description string  `json:"description"`
}

// RiskAssessment is the full scoring result. Only the numeric score is
// persisted; the rest is returned to callers and discarded.
type RiskAssessment struct {
	Score             float64   `json:"score"`
	Level             RiskLevel `json:"level"`
	RiskFactors       []Factor  `json:"risk_factors"`
	ProtectiveFactors []Factor  `json:"protective_factors"`
	Recommendation    string    `json:"recommendation"`
}

// HasRiskFactor reports whether a named risk factor contributed to the score.
func (a RiskAssessment) HasRiskFactor(name string) bool {
	for _, f := range a.RiskFactors {
		if f.Name == name {
			return true
		}
	}
	return false
}

// NoSubscriptionRecommendation is returned for accounts without an active
// subscription; scoring is skipped entirely for those.
const NoSubscriptionRecommendation = "No active subscription"

// EmptyAssessment returns the fixed zero assessment for accounts that have
// no active subscription.
func EmptyAssessment() RiskAssessment {
	return RiskAssessment{
		Score:          0,
		Level:          LevelMinimal,
		Recommendation: NoSubscriptionRecommendation,
	}
}
