package types

import "fmt"

// ConditionType represents how a multiplier rule condition is evaluated
// against a characteristic value
type ConditionType string

const (
	ConditionBoolean   ConditionType = "boolean"
	ConditionThreshold ConditionType = "threshold"
	ConditionRange     ConditionType = "range"
)

// AllConditionTypes returns all valid condition types
func AllConditionTypes() []ConditionType {
	return []ConditionType{
		ConditionBoolean,
		ConditionThreshold,
		ConditionRange,
	}
}

// IsValid checks if the condition type is valid
func (c ConditionType) IsValid() bool {
	switch c {
	case ConditionBoolean,
		ConditionThreshold,
		ConditionRange:
		return true
	default:
		return false
	}
}

// String returns the string representation of the condition type
func (c ConditionType) String() string {
	return string(c)
}

// ParseConditionType parses a string into a ConditionType
func ParseConditionType(s string) (ConditionType, error) {
	ct := ConditionType(s)
	if !ct.IsValid() {
		return "", fmt.Errorf("invalid condition type: %s", s)
	}
	return ct, nil
}
