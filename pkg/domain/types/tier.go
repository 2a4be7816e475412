package types

import "fmt"

// RiskTier represents the classified risk level derived from a score
type RiskTier string

const (
	TierLow      RiskTier = "LOW"
	TierModerate RiskTier = "MODERATE"
	TierHigh     RiskTier = "HIGH"
	TierVeryHigh RiskTier = "VERY_HIGH"
	TierExtreme  RiskTier = "EXTREME"

	// TierNone is returned when no classification applies (e.g. manual score of 0)
	TierNone RiskTier = ""
)

// AllRiskTiers returns all valid risk tiers, lowest first
func AllRiskTiers() []RiskTier {
	return []RiskTier{
		TierLow,
		TierModerate,
		TierHigh,
		TierVeryHigh,
		TierExtreme,
	}
}

// IsValid checks if the risk tier is valid
func (t RiskTier) IsValid() bool {
	switch t {
	case TierLow,
		TierModerate,
		TierHigh,
		TierVeryHigh,
		TierExtreme:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the tier, lowest first.
// TierNone ranks below TierLow.
func (t RiskTier) Rank() int {
	switch t {
	case TierLow:
		return 1
	case TierModerate:
		return 2
	case TierHigh:
		return 3
	case TierVeryHigh:
		return 4
	case TierExtreme:
		return 5
	default:
		return 0
	}
}

// String returns the string representation of the risk tier
func (t RiskTier) String() string {
	return string(t)
}

// ParseRiskTier parses a string into a RiskTier
func ParseRiskTier(s string) (RiskTier, error) {
	tier := RiskTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid risk tier: %s", s)
	}
	return tier, nil
}
