package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// Condition is the tagged variant describing when a multiplier rule applies.
// Exactly one shape is meaningful per type:
//   - boolean: matches iff the characteristic value is boolean true
//   - threshold: matches iff the numeric value is >= Threshold
//   - range: matches iff Min <= value <= Max
type Condition struct {
	Type      types.ConditionType
	Threshold float64
	Min       float64
	Max       float64
}

// BooleanCondition returns a condition matching a true boolean characteristic
func BooleanCondition() Condition {
	return Condition{Type: types.ConditionBoolean}
}

// ThresholdCondition returns a condition matching numeric values >= threshold
func ThresholdCondition(threshold float64) Condition {
	return Condition{Type: types.ConditionThreshold, Threshold: threshold}
}

// RangeCondition returns a condition matching numeric values in [min, max]
func RangeCondition(min, max float64) Condition {
	return Condition{Type: types.ConditionRange, Min: min, Max: max}
}

// Validate checks the condition shape. Violations are configuration errors,
// rejected at load time.
func (c Condition) Validate() error {
	if !c.Type.IsValid() {
		return goerr.Wrap(ErrInvalidRule, "unknown condition type", goerr.V("type", c.Type))
	}
	if c.Type == types.ConditionRange && c.Min > c.Max {
		return goerr.Wrap(ErrInvalidRule, "range condition requires min <= max",
			goerr.V("min", c.Min), goerr.V("max", c.Max))
	}
	return nil
}

// Matches evaluates the condition against a characteristic value. A type
// mismatch (e.g. boolean value against a threshold condition) returns an
// error wrapping ErrInvalidCharacteristic; the caller skips the rule.
func (c Condition) Matches(v CharacteristicValue) (bool, error) {
	switch c.Type {
	case types.ConditionBoolean:
		b, err := v.AsBool()
		if err != nil {
			return false, err
		}
		return b, nil

	case types.ConditionThreshold:
		n, err := v.AsNumber()
		if err != nil {
			return false, err
		}
		return n >= c.Threshold, nil

	case types.ConditionRange:
		n, err := v.AsNumber()
		if err != nil {
			return false, err
		}
		return c.Min <= n && n <= c.Max, nil

	default:
		return false, goerr.Wrap(ErrInvalidRule, "unknown condition type", goerr.V("type", c.Type))
	}
}

// MultiplierRule is a conditional amplification factor applied to a hazard's
// composite risk when the keyed characteristic satisfies the condition.
type MultiplierRule struct {
	Name              string
	CharacteristicKey types.CharacteristicKey
	Condition         Condition
	Factor            float64
	ApplicableHazards []types.HazardID
	Priority          int
	Active            bool
	Reasoning         string
}

// Validate checks rule invariants. Factor must amplify (> 1.0), the rule
// must key a characteristic, and it must name at least one hazard.
func (r *MultiplierRule) Validate() error {
	if r.Name == "" {
		return goerr.Wrap(ErrInvalidRule, "rule name is required")
	}
	if err := r.CharacteristicKey.Validate(); err != nil {
		return goerr.Wrap(err, "invalid characteristic key", goerr.V("rule", r.Name))
	}
	if err := r.Condition.Validate(); err != nil {
		return goerr.Wrap(err, "invalid condition", goerr.V("rule", r.Name))
	}
	if r.Factor <= 1.0 {
		return goerr.Wrap(ErrInvalidRule, "multiplier factor must be greater than 1.0",
			goerr.V("rule", r.Name), goerr.V("factor", r.Factor))
	}
	if len(r.ApplicableHazards) == 0 {
		return goerr.Wrap(ErrInvalidRule, "rule must apply to at least one hazard",
			goerr.V("rule", r.Name))
	}
	for _, h := range r.ApplicableHazards {
		if err := h.Validate(); err != nil {
			return goerr.Wrap(err, "invalid applicable hazard", goerr.V("rule", r.Name))
		}
	}
	return nil
}

// AppliesTo reports whether the rule covers the given hazard
func (r *MultiplierRule) AppliesTo(hazardID types.HazardID) bool {
	for _, h := range r.ApplicableHazards {
		if h == hazardID {
			return true
		}
	}
	return false
}

// AppliedRule is one entry of the user-facing explanation trace: a matched
// rule that contributed its factor to the combined multiplier.
type AppliedRule struct {
	Name      string  `json:"name"`
	Factor    float64 `json:"factor"`
	Reasoning string  `json:"reasoning"`
}

// MultiplierResult is the outcome of evaluating all applicable rules for one
// hazard: the clamped combined factor and the exact set of rules that fired.
type MultiplierResult struct {
	CombinedMultiplier float64       `json:"combined_multiplier"`
	AppliedRules       []AppliedRule `json:"applied_rules"`
}
