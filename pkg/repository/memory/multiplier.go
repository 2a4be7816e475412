package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

type multiplierRuleRepository struct {
	mu    sync.RWMutex
	rules map[string]*model.MultiplierRule
}

func newMultiplierRuleRepository() *multiplierRuleRepository {
	return &multiplierRuleRepository{
		rules: make(map[string]*model.MultiplierRule),
	}
}

func copyRule(rule *model.MultiplierRule) *model.MultiplierRule {
	copied := *rule
	copied.ApplicableHazards = append([]types.HazardID(nil), rule.ApplicableHazards...)
	return &copied
}

func (r *multiplierRuleRepository) Put(ctx context.Context, rule *model.MultiplierRule) error {
	if err := rule.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store multiplier rule")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[rule.Name] = copyRule(rule)
	return nil
}

func (r *multiplierRuleRepository) ListByHazard(ctx context.Context, hazardID types.HazardID) ([]*model.MultiplierRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []*model.MultiplierRule
	for _, rule := range r.rules {
		if !rule.Active || !rule.AppliesTo(hazardID) {
			continue
		}
		rules = append(rules, copyRule(rule))
	}

	// Ascending by priority, name as deterministic tie-break
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
	return rules, nil
}

func (r *multiplierRuleRepository) List(ctx context.Context) ([]*model.MultiplierRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]*model.MultiplierRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, copyRule(rule))
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name < rules[j].Name
	})
	return rules, nil
}
