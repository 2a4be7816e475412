package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/service/refdata"
	"github.com/Qctopus/contingento-engine/pkg/service/scoring"
	"github.com/Qctopus/contingento-engine/pkg/service/strategy"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

// AssessmentRequest carries the wizard's answers into the engine. An empty
// SessionID starts a new session.
type AssessmentRequest struct {
	SessionID       types.SessionID
	LocationID      types.LocationID
	BusinessTypeID  types.BusinessTypeID
	Characteristics model.Characteristics
	HazardIDs       []types.HazardID
}

func (r *AssessmentRequest) validate() error {
	if err := r.LocationID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidRequest, "invalid location", goerr.V("location", r.LocationID))
	}
	if err := r.BusinessTypeID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidRequest, "invalid business type", goerr.V("businessType", r.BusinessTypeID))
	}
	for _, id := range r.HazardIDs {
		if err := id.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidRequest, "invalid hazard ID", goerr.V("hazard", id))
		}
	}
	return nil
}

// Recommend assesses every hazard in the catalog for the request and returns
// the risks together with the ranked strategy list.
func (uc *UseCases) Recommend(ctx context.Context, req *AssessmentRequest) (*model.Recommendation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	hazardIDs := req.HazardIDs
	if len(hazardIDs) == 0 {
		catalog, err := uc.refData.KnownHazards(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list hazard catalog")
		}
		if len(catalog) == 0 {
			return nil, goerr.Wrap(ErrNoHazards, "hazard catalog is empty")
		}
		sort.Slice(catalog, func(i, j int) bool { return catalog[i] < catalog[j] })
		hazardIDs = catalog
	}

	return uc.assess(ctx, req, hazardIDs)
}

// Calculate assesses only the explicitly named hazards. Hazard order in the
// result follows the request.
func (uc *UseCases) Calculate(ctx context.Context, req *AssessmentRequest) (*model.Recommendation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if len(req.HazardIDs) == 0 {
		return nil, goerr.Wrap(ErrHazardsRequired, "no hazard IDs in request")
	}

	return uc.assess(ctx, req, dedupeHazards(req.HazardIDs))
}

func (uc *UseCases) assess(ctx context.Context, req *AssessmentRequest, hazardIDs []types.HazardID) (*model.Recommendation, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = types.NewSessionID()
	}

	snap, err := uc.refData.Snapshot(ctx, req.LocationID, req.BusinessTypeID, hazardIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to prefetch reference data")
	}

	risks := make([]*model.RiskAssessment, 0, len(hazardIDs))
	for _, hazardID := range hazardIDs {
		risk := assessHazard(ctx, sessionID, snap, hazardID, req.Characteristics)
		if err := uc.repo.Assessment().Put(ctx, risk); err != nil {
			return nil, goerr.Wrap(err, "failed to store assessment",
				goerr.V("session", sessionID), goerr.V("hazard", hazardID))
		}
		risks = append(risks, risk)
	}

	strategies, err := uc.repo.Strategy().ListActive(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list strategies")
	}

	ranked := strategy.Rank(strategy.Match(strategies, risks, req.BusinessTypeID), uc.strategyLimit)
	for _, rs := range ranked {
		rs.Strategy.Steps = strategy.OrderSteps(rs.Strategy.Steps)
	}

	if len(ranked) == 0 {
		logging.From(ctx).Info("no candidate strategies for assessed hazards",
			"session", sessionID, "hazards", len(hazardIDs))
	}

	return &model.Recommendation{
		Risks:      risks,
		Strategies: ranked,
		NoGuidance: len(ranked) == 0,
	}, nil
}

// assessHazard runs the automated scoring path for one hazard against the
// prefetched snapshot. Pure per-hazard computation, no I/O.
func assessHazard(ctx context.Context, sessionID types.SessionID, snap *refdata.Snapshot, hazardID types.HazardID, chars model.Characteristics) *model.RiskAssessment {
	level := snap.HazardLevels[hazardID]
	vulnerability := snap.Vulnerabilities[hazardID]

	multipliers := scoring.EvaluateMultipliers(ctx, snap.Multipliers[hazardID], chars)
	compositeBase, finalScore, tier := scoring.Assess(level, vulnerability, multipliers)

	return &model.RiskAssessment{
		SessionID:          sessionID,
		HazardID:           hazardID,
		HazardName:         snap.HazardNames[hazardID],
		LocationID:         snap.LocationID,
		BusinessTypeID:     snap.BusinessTypeID,
		HazardLevel:        level,
		Vulnerability:      vulnerability,
		CompositeBase:      compositeBase,
		CombinedMultiplier: multipliers.CombinedMultiplier,
		FinalScore:         finalScore,
		Tier:               tier,
		AppliedRules:       multipliers.AppliedRules,
	}
}

func dedupeHazards(ids []types.HazardID) []types.HazardID {
	seen := make(map[types.HazardID]bool, len(ids))
	out := make([]types.HazardID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
