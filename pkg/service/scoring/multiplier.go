package scoring

import (
	"context"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

// MaxCombinedMultiplier caps the product of matched rule factors. The
// ceiling prevents runaway compounding when many characteristics are
// simultaneously true.
const MaxCombinedMultiplier = 2.0

// EvaluateMultipliers evaluates the hazard's applicable rules against the
// supplied characteristics. Rules must arrive ordered ascending by priority
// (the accessor contract). Two matching rules sharing a characteristic key
// never both fire: the one with the lowest priority number wins, so a single
// underlying factor is never double-counted.
//
// A rule whose condition cannot be evaluated against the supplied value
// type is skipped and logged, never aborts the computation. A rule whose
// characteristic is absent does not match ("unknown", not "false").
func EvaluateMultipliers(ctx context.Context, rules []*model.MultiplierRule, chars model.Characteristics) model.MultiplierResult {
	result := model.MultiplierResult{
		CombinedMultiplier: 1.0,
		AppliedRules:       []model.AppliedRule{},
	}

	claimed := make(map[types.CharacteristicKey]bool, len(rules))
	raw := 1.0

	for _, rule := range rules {
		value, ok := chars[rule.CharacteristicKey]
		if !ok {
			continue
		}

		matched, err := rule.Condition.Matches(value)
		if err != nil {
			logging.From(ctx).Warn("skipping multiplier rule: condition not evaluable against supplied value",
				"rule", rule.Name,
				"characteristic", rule.CharacteristicKey,
				"condition", rule.Condition.Type,
				"error", err)
			continue
		}
		if !matched {
			continue
		}

		// Conflict rule: rules are priority-ordered, so the first match
		// per characteristic key claims it.
		if claimed[rule.CharacteristicKey] {
			continue
		}
		claimed[rule.CharacteristicKey] = true

		raw *= rule.Factor
		result.AppliedRules = append(result.AppliedRules, model.AppliedRule{
			Name:      rule.Name,
			Factor:    rule.Factor,
			Reasoning: rule.Reasoning,
		})
	}

	result.CombinedMultiplier = raw
	if result.CombinedMultiplier > MaxCombinedMultiplier {
		result.CombinedMultiplier = MaxCombinedMultiplier
	}
	return result
}
