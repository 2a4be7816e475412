package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/repository/memory"
	"github.com/Qctopus/contingento-engine/pkg/usecase"
)

func seedReferenceData(t *testing.T, ctx context.Context, repo *memory.Memory) {
	t.Helper()

	gt.NoError(t, repo.Hazard().Put(ctx, &model.Hazard{ID: "hurricane", Name: "Hurricane"}))
	gt.NoError(t, repo.Hazard().Put(ctx, &model.Hazard{ID: "power_outage", Name: "Power Outage"}))

	gt.NoError(t, repo.HazardProfile().Put(ctx, &model.HazardProfile{
		LocationID: "kingston", HazardID: "hurricane", Level: 8,
	}))
	gt.NoError(t, repo.HazardProfile().Put(ctx, &model.HazardProfile{
		LocationID: "kingston", HazardID: "power_outage", Level: 6,
	}))

	gt.NoError(t, repo.BusinessType().Put(ctx, &model.BusinessType{
		ID: "restaurant", Name: "Restaurant", Category: "food_service",
	}))
	gt.NoError(t, repo.Vulnerability().Put(ctx, &model.VulnerabilityProfile{
		BusinessTypeID: "restaurant", HazardID: "hurricane", Vulnerability: 8, ImpactSeverity: 9,
	}))
	gt.NoError(t, repo.Vulnerability().Put(ctx, &model.VulnerabilityProfile{
		BusinessTypeID: "restaurant", HazardID: "power_outage", Vulnerability: 7, ImpactSeverity: 6,
	}))

	gt.NoError(t, repo.MultiplierRule().Put(ctx, &model.MultiplierRule{
		Name:              "Coastal exposure",
		CharacteristicKey: "coastal_location",
		Condition:         model.BooleanCondition(),
		Factor:            1.3,
		ApplicableHazards: []types.HazardID{"hurricane"},
		Priority:          1,
		Active:            true,
		Reasoning:         "coastal premises face direct storm surge",
	}))

	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:                "storm-shutters",
		Name:              "Install storm shutters",
		Category:          types.CategoryPrevention,
		ApplicableHazards: []types.HazardID{"hurricane"},
		Effectiveness:     8,
		Cost:              types.CostMedium,
		Selection:         types.SelectionEssential,
		Active:            true,
		Steps: []model.ActionStep{
			{Title: "Fit shutters", Phase: types.PhaseShortTerm, Timing: types.TimingBeforeCrisis, SortOrder: 2},
			{Title: "Measure windows", Phase: types.PhaseShortTerm, Timing: types.TimingBeforeCrisis, SortOrder: 1},
		},
	}))
	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:                "backup-generator",
		Name:              "Buy a backup generator",
		Category:          types.CategoryPreparation,
		ApplicableHazards: []types.HazardID{"hurricane", "power_outage"},
		Effectiveness:     7,
		Cost:              types.CostHigh,
		Selection:         types.SelectionRecommended,
		Active:            true,
	}))
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	rec, err := uc.Recommend(ctx, &usecase.AssessmentRequest{
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
		Characteristics: model.Characteristics{
			"coastal_location": model.BoolValue(true),
		},
	})
	gt.NoError(t, err).Required()

	gt.A(t, rec.Risks).Length(2)
	gt.B(t, rec.NoGuidance).False()

	byHazard := map[types.HazardID]*model.RiskAssessment{}
	for _, r := range rec.Risks {
		byHazard[r.HazardID] = r
	}

	hurricane := byHazard["hurricane"]
	if hurricane == nil {
		t.Fatal("hurricane assessment missing")
	}
	// base round(3.2+3.2+1.8)=8, final round(8*1.3)=10
	gt.N(t, hurricane.CompositeBase).Equal(8)
	gt.N(t, hurricane.FinalScore).Equal(10)
	gt.V(t, hurricane.Tier).Equal(types.TierExtreme)
	gt.A(t, hurricane.AppliedRules).Length(1)
	gt.S(t, hurricane.HazardName).Equal("Hurricane")
	gt.S(t, string(hurricane.SessionID)).NotEqual("")

	outage := byHazard["power_outage"]
	if outage == nil {
		t.Fatal("power_outage assessment missing")
	}
	// base round(2.4+2.8+1.2)=6, no matching multiplier
	gt.N(t, outage.CompositeBase).Equal(6)
	gt.N(t, outage.FinalScore).Equal(6)
	gt.A(t, outage.AppliedRules).Length(0)

	// Deduplicated strategies: storm-shutters ranks above backup-generator
	gt.A(t, rec.Strategies).Length(2)
	gt.V(t, rec.Strategies[0].Strategy.ID).Equal("storm-shutters")
	gt.V(t, rec.Strategies[1].Strategy.ID).Equal("backup-generator")
	gt.A(t, rec.Strategies[1].MatchedHazards).Length(2)

	// Steps come back in phase/timing/sort order
	steps := rec.Strategies[0].Strategy.Steps
	gt.A(t, steps).Length(2)
	gt.S(t, steps[0].Title).Equal("Measure windows")
	gt.S(t, steps[1].Title).Equal("Fit shutters")

	// Assessments are persisted under the session
	stored, err := uc.Session(ctx, hurricane.SessionID)
	gt.NoError(t, err).Required()
	gt.A(t, stored).Length(2)
}

func TestRecommendDeterministic(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	req := &usecase.AssessmentRequest{
		SessionID:      "fixed-session",
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
		Characteristics: model.Characteristics{
			"coastal_location": model.BoolValue(true),
		},
	}

	first, err := uc.Recommend(ctx, req)
	gt.NoError(t, err).Required()
	second, err := uc.Recommend(ctx, req)
	gt.NoError(t, err).Required()

	gt.A(t, first.Risks).Length(len(second.Risks))
	for i := range first.Risks {
		gt.V(t, first.Risks[i].HazardID).Equal(second.Risks[i].HazardID)
		gt.N(t, first.Risks[i].FinalScore).Equal(second.Risks[i].FinalScore)
		gt.V(t, first.Risks[i].Tier).Equal(second.Risks[i].Tier)
		gt.V(t, first.Risks[i].AppliedRules).Equal(second.Risks[i].AppliedRules)
	}
	for i := range first.Strategies {
		gt.V(t, first.Strategies[i].Strategy.ID).Equal(second.Strategies[i].Strategy.ID)
	}
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	rec, err := uc.Calculate(ctx, &usecase.AssessmentRequest{
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
		HazardIDs:      []types.HazardID{"power_outage", "power_outage"},
	})
	gt.NoError(t, err).Required()

	// Duplicates collapse; only the requested hazard is assessed
	gt.A(t, rec.Risks).Length(1)
	gt.V(t, rec.Risks[0].HazardID).Equal("power_outage")
	gt.A(t, rec.Strategies).Length(1)
	gt.V(t, rec.Strategies[0].Strategy.ID).Equal("backup-generator")
}

func TestCalculateRequiresHazards(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	_, err = uc.Calculate(ctx, &usecase.AssessmentRequest{
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
	})
	gt.B(t, errors.Is(err, usecase.ErrHazardsRequired)).True()
}

func TestCalculateUnknownReferencesDegrade(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	rec, err := uc.Calculate(ctx, &usecase.AssessmentRequest{
		LocationID:     "atlantis",
		BusinessTypeID: "submarine-base",
		HazardIDs:      []types.HazardID{"hurricane"},
	})
	gt.NoError(t, err).Required()

	risk := rec.Risks[0]
	gt.B(t, risk.HazardLevel.Estimated).True()
	gt.B(t, risk.Vulnerability.Estimated).True()
	// Neutral defaults: base = round(2+2+1) = 5
	gt.N(t, risk.CompositeBase).Equal(5)
	gt.V(t, risk.Tier).Equal(types.TierHigh)
}

func TestRecommendNoGuidance(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	// Hazard catalog without any strategies
	gt.NoError(t, repo.Hazard().Put(ctx, &model.Hazard{ID: "drought", Name: "Drought"}))

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	rec, err := uc.Recommend(ctx, &usecase.AssessmentRequest{
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
	})
	gt.NoError(t, err).Required()
	gt.B(t, rec.NoGuidance).True()
	gt.A(t, rec.Strategies).Length(0)
	gt.A(t, rec.Risks).Length(1)
}

func TestSetManualRating(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	rec, err := uc.Calculate(ctx, &usecase.AssessmentRequest{
		SessionID:      "manual-session",
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
		HazardIDs:      []types.HazardID{"hurricane"},
	})
	gt.NoError(t, err).Required()
	automated := rec.Risks[0].FinalScore

	rated, err := uc.SetManualRating(ctx, "manual-session", "hurricane", 2, 2)
	gt.NoError(t, err).Required()
	if rated.Manual == nil {
		t.Fatal("manual rating not attached")
	}
	gt.N(t, rated.Manual.Score).Equal(4)
	gt.V(t, rated.Manual.Tier).Equal(types.TierModerate)
	// The automated path is untouched
	gt.N(t, rated.FinalScore).Equal(automated)

	// Idempotent recompute
	again, err := uc.SetManualRating(ctx, "manual-session", "hurricane", 2, 2)
	gt.NoError(t, err).Required()
	gt.V(t, *again.Manual).Equal(*rated.Manual)

	// Stored assessment carries the rating
	stored, err := repo.Assessment().Get(ctx, "manual-session", "hurricane")
	gt.NoError(t, err).Required()
	gt.N(t, stored.Manual.Score).Equal(4)
}

func TestSetManualRatingUnknownAssessment(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	_, err = uc.SetManualRating(ctx, "nope", "hurricane", 2, 2)
	gt.B(t, errors.Is(err, usecase.ErrAssessmentNotFound)).True()
}

func TestSetManualRatingRejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedReferenceData(t, ctx, repo)

	uc, err := usecase.New(repo)
	gt.NoError(t, err).Required()

	_, err = uc.Calculate(ctx, &usecase.AssessmentRequest{
		SessionID:      "bad-rating",
		LocationID:     "kingston",
		BusinessTypeID: "restaurant",
		HazardIDs:      []types.HazardID{"hurricane"},
	})
	gt.NoError(t, err).Required()

	_, err = uc.SetManualRating(ctx, "bad-rating", "hurricane", 0, 2)
	gt.Error(t, err)
	_, err = uc.SetManualRating(ctx, "bad-rating", "hurricane", 2, 5)
	gt.Error(t, err)
}
