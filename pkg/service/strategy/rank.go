package strategy

import (
	"sort"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// DefaultLimit caps the ranked list handed to the wizard. The diversity
// floor can push the final output slightly past it.
const DefaultLimit = 8

// Rank orders candidates by relevance descending, with ties broken by
// lower cost tier and then strategy ID. When a positive limit is given,
// the list is cut to the limit and then extended so that every strategy
// category present among the candidates keeps at least one entry.
func Rank(candidates []*model.RankedStrategy, limit int) []*model.RankedStrategy {
	sorted := make([]*model.RankedStrategy, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		if a.Strategy.Cost.Rank() != b.Strategy.Cost.Rank() {
			return a.Strategy.Cost.Rank() < b.Strategy.Cost.Rank()
		}
		return a.Strategy.ID < b.Strategy.ID
	})

	if limit <= 0 || len(sorted) <= limit {
		return sorted
	}

	selected := sorted[:limit:limit]
	covered := map[types.StrategyCategory]bool{}
	for _, rs := range selected {
		covered[rs.Strategy.Category] = true
	}

	// Pick the highest-ranked entry of every category that the cutoff
	// dropped entirely. Tail order is already the rank order, so the
	// appended entries stay deterministic.
	for _, rs := range sorted[limit:] {
		if covered[rs.Strategy.Category] {
			continue
		}
		covered[rs.Strategy.Category] = true
		selected = append(selected, rs)
	}

	return selected
}
