package valueobjects

import "fmt"

// PaymentFrequency represents how often a subscription is billed.
type PaymentFrequency string

const (
	FrequencyMonthly PaymentFrequency = "monthly"
	FrequencyYearly  PaymentFrequency = "yearly"
)

var validFrequencies = map[PaymentFrequency]bool{
	FrequencyMonthly: true,
	FrequencyYearly:  true,
}

// NewPaymentFrequency parses and validates a payment frequency value.
func NewPaymentFrequency(value string) (PaymentFrequency, error) {
	f := PaymentFrequency(value)
	if !validFrequencies[f] {
		return "", fmt.Errorf("invalid payment frequency: %s", value)
	}
	return f, nil
}

func (f PaymentFrequency) String() string {
	return string(f)
}

// IsAnnual reports whether the subscription is billed yearly.
func (f PaymentFrequency) IsAnnual() bool {
	return f == FrequencyYearly
}
