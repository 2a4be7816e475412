package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type actionStepDocument struct {
	Title       string `firestore:"title"`
	Description string `firestore:"description"`
	Phase       string `firestore:"phase"`
	Timing      string `firestore:"timing"`
	SortOrder   int    `firestore:"sort_order"`
}

type strategyDocument struct {
	ID                      string               `firestore:"id"`
	Name                    string               `firestore:"name"`
	Summary                 string               `firestore:"summary"`
	Category                string               `firestore:"category"`
	ApplicableHazards       []string             `firestore:"applicable_hazards"`
	ApplicableBusinessTypes []string             `firestore:"applicable_business_types"`
	Effectiveness           int                  `firestore:"effectiveness"`
	Cost                    string               `firestore:"cost"`
	Selection               string               `firestore:"selection"`
	Active                  bool                 `firestore:"active"`
	Steps                   []actionStepDocument `firestore:"steps"`
}

type strategyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStrategyRepository(client *firestore.Client) *strategyRepository {
	return &strategyRepository{client: client}
}

func (r *strategyRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_strategies"
	}
	return "strategies"
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if err := strategy.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store strategy")
	}

	doc := strategyToDocument(strategy)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put strategy", goerr.V("id", strategy.ID))
	}
	return nil
}

func (r *strategyRepository) Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "strategy not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get strategy", goerr.V("id", id))
	}

	var sd strategyDocument
	if err := doc.DataTo(&sd); err != nil {
		return nil, goerr.Wrap(err, "failed to decode strategy document", goerr.V("id", id))
	}
	return strategyFromDocument(&sd), nil
}

func (r *strategyRepository) ListActive(ctx context.Context) ([]*model.Strategy, error) {
	iter := r.client.Collection(r.collection()).
		Where("active", "==", true).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var strategies []*model.Strategy
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate strategies")
		}

		var sd strategyDocument
		if err := doc.DataTo(&sd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode strategy document")
		}
		strategies = append(strategies, strategyFromDocument(&sd))
	}

	return strategies, nil
}

func strategyToDocument(s *model.Strategy) *strategyDocument {
	hazards := make([]string, 0, len(s.ApplicableHazards))
	for _, h := range s.ApplicableHazards {
		hazards = append(hazards, h.String())
	}
	businessTypes := make([]string, 0, len(s.ApplicableBusinessTypes))
	for _, bt := range s.ApplicableBusinessTypes {
		businessTypes = append(businessTypes, bt.String())
	}
	steps := make([]actionStepDocument, 0, len(s.Steps))
	for _, step := range s.Steps {
		steps = append(steps, actionStepDocument{
			Title:       step.Title,
			Description: step.Description,
			Phase:       step.Phase.String(),
			Timing:      step.Timing.String(),
			SortOrder:   step.SortOrder,
		})
	}

	return &strategyDocument{
		ID:                      s.ID.String(),
		Name:                    s.Name,
		Summary:                 s.Summary,
		Category:                s.Category.String(),
		ApplicableHazards:       hazards,
		ApplicableBusinessTypes: businessTypes,
		Effectiveness:           s.Effectiveness,
		Cost:                    s.Cost.String(),
		Selection:               s.Selection.String(),
		Active:                  s.Active,
		Steps:                   steps,
	}
}

func strategyFromDocument(sd *strategyDocument) *model.Strategy {
	hazards := make([]types.HazardID, 0, len(sd.ApplicableHazards))
	for _, h := range sd.ApplicableHazards {
		hazards = append(hazards, types.HazardID(h))
	}
	businessTypes := make([]types.BusinessTypeID, 0, len(sd.ApplicableBusinessTypes))
	for _, bt := range sd.ApplicableBusinessTypes {
		businessTypes = append(businessTypes, types.BusinessTypeID(bt))
	}
	steps := make([]model.ActionStep, 0, len(sd.Steps))
	for _, step := range sd.Steps {
		steps = append(steps, model.ActionStep{
			Title:       step.Title,
			Description: step.Description,
			Phase:       types.StepPhase(step.Phase),
			Timing:      types.ExecutionTiming(step.Timing),
			SortOrder:   step.SortOrder,
		})
	}

	return &model.Strategy{
		ID:                      types.StrategyID(sd.ID),
		Name:                    sd.Name,
		Summary:                 sd.Summary,
		Category:                types.StrategyCategory(sd.Category),
		ApplicableHazards:       hazards,
		ApplicableBusinessTypes: businessTypes,
		Effectiveness:           sd.Effectiveness,
		Cost:                    types.CostTier(sd.Cost),
		Selection:               types.SelectionTier(sd.Selection),
		Active:                  sd.Active,
		Steps:                   steps,
	}
}
