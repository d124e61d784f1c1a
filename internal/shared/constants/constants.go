package constants

// Database table names.
const (
	TableUsers              = "users"
	TableSubscriptions      = "subscriptions"
	TableSubscriptionPauses = "subscription_pauses"
	TablePerkUsages         = "perk_usages"
	TableProperties         = "properties"
	TableRewardCredits      = "reward_credits"
	TableBookings           = "bookings"
	TableRetentionAttempts  = "retention_attempts"
	TableBillingAdjustments = "billing_adjustments"
	TableCreditTransactions = "credit_transactions"
)

// Redis key prefixes.
const (
	RedisKeyRetentionCooldown = "retention:cooldown:"
	RedisKeyAssessmentCache   = "churn:assessment:"
	RedisKeySweepLock         = "retention:sweep:lock:"
)
