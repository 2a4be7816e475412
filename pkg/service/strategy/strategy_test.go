package strategy_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/service/strategy"
)

func newStrategy(id string, category types.StrategyCategory, effectiveness int, cost types.CostTier, selection types.SelectionTier, hazards ...types.HazardID) *model.Strategy {
	return &model.Strategy{
		ID:                types.StrategyID(id),
		Name:              id,
		Category:          category,
		ApplicableHazards: hazards,
		Effectiveness:     effectiveness,
		Cost:              cost,
		Selection:         selection,
		Active:            true,
	}
}

func newRisk(hazardID types.HazardID, score int) *model.RiskAssessment {
	return &model.RiskAssessment{
		HazardID:   hazardID,
		HazardName: string(hazardID),
		FinalScore: score,
		Tier:       types.TierHigh,
	}
}

func TestRelevance(t *testing.T) {
	s := newStrategy("storm-shutters", types.CategoryPrevention, 8, types.CostMedium, types.SelectionEssential, "hurricane")
	// 8*2 + (3-1) + 3
	gt.N(t, strategy.Relevance(s)).Equal(21)

	s = newStrategy("data-backup", types.CategoryPreparation, 5, types.CostLow, types.SelectionOptional, "flood")
	// 5*2 + (3-0) + 0
	gt.N(t, strategy.Relevance(s)).Equal(13)
}

func TestMatchFiltersAndDeduplicates(t *testing.T) {
	strategies := []*model.Strategy{
		newStrategy("generator", types.CategoryPreparation, 7, types.CostHigh, types.SelectionRecommended, "hurricane", "power_outage"),
		newStrategy("evac-plan", types.CategoryResponse, 6, types.CostLow, types.SelectionEssential, "hurricane"),
		newStrategy("drought-plan", types.CategoryPrevention, 9, types.CostLow, types.SelectionEssential, "drought"),
	}
	inactive := newStrategy("old-plan", types.CategoryResponse, 9, types.CostLow, types.SelectionEssential, "hurricane")
	inactive.Active = false
	strategies = append(strategies, inactive)

	risks := []*model.RiskAssessment{
		newRisk("hurricane", 8),
		newRisk("power_outage", 6),
	}

	candidates := strategy.Match(strategies, risks, "restaurant")
	gt.A(t, candidates).Length(2)

	byID := map[types.StrategyID]*model.RankedStrategy{}
	for _, c := range candidates {
		byID[c.Strategy.ID] = c
	}

	// generator matched both hazards but appears once, with both in the
	// merged hazard list and one rationale line per hazard
	generator := byID["generator"]
	if generator == nil {
		t.Fatal("generator missing from candidates")
	}
	gt.A(t, generator.MatchedHazards).Length(2).
		Has(types.HazardID("hurricane")).
		Has(types.HazardID("power_outage"))
	gt.A(t, generator.Rationale).Length(2)

	gt.B(t, byID["evac-plan"] != nil).True()
	gt.B(t, byID["drought-plan"] == nil).True()
	gt.B(t, byID["old-plan"] == nil).True()
}

func TestMatchBusinessTypeScoping(t *testing.T) {
	scoped := newStrategy("cold-chain", types.CategoryPreparation, 7, types.CostMedium, types.SelectionRecommended, "power_outage")
	scoped.ApplicableBusinessTypes = []types.BusinessTypeID{"grocery_store"}
	universal := newStrategy("generator", types.CategoryPreparation, 7, types.CostHigh, types.SelectionRecommended, "power_outage")

	risks := []*model.RiskAssessment{newRisk("power_outage", 6)}

	candidates := strategy.Match([]*model.Strategy{scoped, universal}, risks, "restaurant")
	gt.A(t, candidates).Length(1)
	gt.V(t, candidates[0].Strategy.ID).Equal("generator")

	candidates = strategy.Match([]*model.Strategy{scoped, universal}, risks, "grocery_store")
	gt.A(t, candidates).Length(2)
}

func TestMatchEmptyCandidateSet(t *testing.T) {
	strategies := []*model.Strategy{
		newStrategy("drought-plan", types.CategoryPrevention, 9, types.CostLow, types.SelectionEssential, "drought"),
	}
	risks := []*model.RiskAssessment{newRisk("hurricane", 8)}

	candidates := strategy.Match(strategies, risks, "restaurant")
	gt.A(t, candidates).Length(0)
}

func TestRankOrdering(t *testing.T) {
	risks := []*model.RiskAssessment{newRisk("hurricane", 8)}
	strategies := []*model.Strategy{
		newStrategy("b-mid", types.CategoryPreparation, 8, types.CostMedium, types.SelectionEssential, "hurricane"),  // 21
		newStrategy("a-cheap", types.CategoryPrevention, 9, types.CostLow, types.SelectionRecommended, "hurricane"),  // 22
		newStrategy("c-tied", types.CategoryResponse, 8, types.CostMedium, types.SelectionEssential, "hurricane"),    // 21, ties with b-mid
		newStrategy("d-cheap-tied", types.CategoryRecovery, 9, types.CostLow, types.SelectionRecommended, "hurricane"), // 22, ties with a-cheap
	}

	ranked := strategy.Rank(strategy.Match(strategies, risks, "restaurant"), 0)
	gt.A(t, ranked).Length(4)
	// Ties at equal cost fall back to strategy ID
	gt.V(t, ranked[0].Strategy.ID).Equal("a-cheap")
	gt.V(t, ranked[1].Strategy.ID).Equal("d-cheap-tied")
	gt.V(t, ranked[2].Strategy.ID).Equal("b-mid")
	gt.V(t, ranked[3].Strategy.ID).Equal("c-tied")
}

func TestRankCostBreaksTies(t *testing.T) {
	risks := []*model.RiskAssessment{newRisk("flood", 6)}
	// Same relevance: 7*2 + (3-2) + 3 = 18 and 7*2 + (3-0) + 1 = 18
	expensive := newStrategy("a-expensive", types.CategoryPrevention, 7, types.CostHigh, types.SelectionEssential, "flood")
	cheap := newStrategy("z-cheap", types.CategoryPrevention, 7, types.CostLow, types.SelectionRecommended, "flood")

	ranked := strategy.Rank(strategy.Match([]*model.Strategy{expensive, cheap}, risks, "restaurant"), 0)
	gt.A(t, ranked).Length(2)
	gt.V(t, ranked[0].Strategy.ID).Equal("z-cheap")
	gt.V(t, ranked[1].Strategy.ID).Equal("a-expensive")
}

func TestRankDiversityFloor(t *testing.T) {
	risks := []*model.RiskAssessment{newRisk("hurricane", 9)}

	// Three high-scoring prevention strategies crowd out the single
	// low-scoring entries of the other three categories at limit 3.
	strategies := []*model.Strategy{
		newStrategy("prev-1", types.CategoryPrevention, 10, types.CostLow, types.SelectionEssential, "hurricane"),
		newStrategy("prev-2", types.CategoryPrevention, 10, types.CostLow, types.SelectionRecommended, "hurricane"),
		newStrategy("prev-3", types.CategoryPrevention, 9, types.CostLow, types.SelectionEssential, "hurricane"),
		newStrategy("prep-1", types.CategoryPreparation, 3, types.CostHigh, types.SelectionOptional, "hurricane"),
		newStrategy("resp-1", types.CategoryResponse, 2, types.CostHigh, types.SelectionOptional, "hurricane"),
		newStrategy("recov-1", types.CategoryRecovery, 1, types.CostHigh, types.SelectionOptional, "hurricane"),
	}

	ranked := strategy.Rank(strategy.Match(strategies, risks, "restaurant"), 3)

	seen := map[types.StrategyCategory]bool{}
	for _, rs := range ranked {
		seen[rs.Strategy.Category] = true
	}
	for _, cat := range types.AllStrategyCategories() {
		gt.B(t, seen[cat]).Describef("category %s must survive the cutoff", cat).True()
	}

	// The cutoff itself is unchanged: the top three are still the
	// prevention strategies, the floor entries follow in rank order.
	gt.A(t, ranked).Length(6)
	gt.V(t, ranked[0].Strategy.Category).Equal(types.CategoryPrevention)
	gt.V(t, ranked[3].Strategy.ID).Equal("prep-1")
	gt.V(t, ranked[4].Strategy.ID).Equal("resp-1")
	gt.V(t, ranked[5].Strategy.ID).Equal("recov-1")
}

func TestRankDeterminism(t *testing.T) {
	risks := []*model.RiskAssessment{newRisk("hurricane", 8), newRisk("flood", 5)}
	var strategies []*model.Strategy
	for i := 0; i < 12; i++ {
		strategies = append(strategies, newStrategy(
			fmt.Sprintf("strategy-%02d", i),
			types.AllStrategyCategories()[i%4],
			(i%10)+1,
			types.AllCostTiers()[i%3],
			types.AllSelectionTiers()[i%3],
			"hurricane",
		))
	}

	first := strategy.Rank(strategy.Match(strategies, risks, "restaurant"), strategy.DefaultLimit)
	second := strategy.Rank(strategy.Match(strategies, risks, "restaurant"), strategy.DefaultLimit)

	gt.A(t, first).Length(len(second))
	for i := range first {
		gt.V(t, first[i].Strategy.ID).Equal(second[i].Strategy.ID)
	}
}

func TestOrderSteps(t *testing.T) {
	steps := []model.ActionStep{
		{Title: "restock", Phase: types.PhaseLongTerm, Timing: types.TimingAfterCrisis, SortOrder: 1},
		{Title: "board windows", Phase: types.PhaseImmediate, Timing: types.TimingBeforeCrisis, SortOrder: 2},
		{Title: "check supplies", Phase: types.PhaseImmediate, Timing: types.TimingBeforeCrisis, SortOrder: 1},
		{Title: "shelter staff", Phase: types.PhaseImmediate, Timing: types.TimingDuringCrisis, SortOrder: 1},
		{Title: "assess damage", Phase: types.PhaseShortTerm, Timing: types.TimingAfterCrisis, SortOrder: 1},
	}

	sorted := strategy.OrderSteps(steps)

	titles := make([]string, len(sorted))
	for i, s := range sorted {
		titles[i] = s.Title
	}
	gt.A(t, titles).Equal([]string{
		"check supplies",
		"board windows",
		"shelter staff",
		"assess damage",
		"restock",
	})

	// Input order untouched
	gt.S(t, steps[0].Title).Equal("restock")
}
