package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type multiplierRuleDocument struct {
	Name              string   `firestore:"name"`
	CharacteristicKey string   `firestore:"characteristic_key"`
	ConditionType     string   `firestore:"condition_type"`
	Threshold         float64  `firestore:"threshold"`
	Min               float64  `firestore:"min"`
	Max               float64  `firestore:"max"`
	Factor            float64  `firestore:"factor"`
	ApplicableHazards []string `firestore:"applicable_hazards"`
	Priority          int      `firestore:"priority"`
	Active            bool     `firestore:"active"`
	Reasoning         string   `firestore:"reasoning"`
}

type multiplierRuleRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMultiplierRuleRepository(client *firestore.Client) *multiplierRuleRepository {
	return &multiplierRuleRepository{client: client}
}

func (r *multiplierRuleRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_multiplier_rules"
	}
	return "multiplier_rules"
}

func (r *multiplierRuleRepository) Put(ctx context.Context, rule *model.MultiplierRule) error {
	if err := rule.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store multiplier rule")
	}

	hazards := make([]string, 0, len(rule.ApplicableHazards))
	for _, h := range rule.ApplicableHazards {
		hazards = append(hazards, h.String())
	}

	doc := &multiplierRuleDocument{
		Name:              rule.Name,
		CharacteristicKey: rule.CharacteristicKey.String(),
		ConditionType:     rule.Condition.Type.String(),
		Threshold:         rule.Condition.Threshold,
		Min:               rule.Condition.Min,
		Max:               rule.Condition.Max,
		Factor:            rule.Factor,
		ApplicableHazards: hazards,
		Priority:          rule.Priority,
		Active:            rule.Active,
		Reasoning:         rule.Reasoning,
	}

	if _, err := r.client.Collection(r.collection()).Doc(rule.Name).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put multiplier rule", goerr.V("name", rule.Name))
	}
	return nil
}

func (r *multiplierRuleRepository) ListByHazard(ctx context.Context, hazardID types.HazardID) ([]*model.MultiplierRule, error) {
	iter := r.client.Collection(r.collection()).
		Where("active", "==", true).
		Where("applicable_hazards", "array-contains", hazardID.String()).
		Documents(ctx)
	defer iter.Stop()

	var rules []*model.MultiplierRule
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate multiplier rules",
				goerr.V("hazard", hazardID))
		}

		var rd multiplierRuleDocument
		if err := doc.DataTo(&rd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode multiplier rule document")
		}
		rules = append(rules, ruleFromDocument(&rd))
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
	return rules, nil
}

func (r *multiplierRuleRepository) List(ctx context.Context) ([]*model.MultiplierRule, error) {
	iter := r.client.Collection(r.collection()).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var rules []*model.MultiplierRule
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate multiplier rules")
		}

		var rd multiplierRuleDocument
		if err := doc.DataTo(&rd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode multiplier rule document")
		}
		rules = append(rules, ruleFromDocument(&rd))
	}

	return rules, nil
}

func ruleFromDocument(rd *multiplierRuleDocument) *model.MultiplierRule {
	hazards := make([]types.HazardID, 0, len(rd.ApplicableHazards))
	for _, h := range rd.ApplicableHazards {
		hazards = append(hazards, types.HazardID(h))
	}

	return &model.MultiplierRule{
		Name:              rd.Name,
		CharacteristicKey: types.CharacteristicKey(rd.CharacteristicKey),
		Condition: model.Condition{
			Type:      types.ConditionType(rd.ConditionType),
			Threshold: rd.Threshold,
			Min:       rd.Min,
			Max:       rd.Max,
		},
		Factor:            rd.Factor,
		ApplicableHazards: hazards,
		Priority:          rd.Priority,
		Active:            rd.Active,
		Reasoning:         rd.Reasoning,
	}
}
