package strategy

import (
	"sort"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
)

// OrderSteps returns the steps sorted by phase rank, then execution timing
// rank, then explicit sort order. The sort is stable and the input slice is
// left untouched.
func OrderSteps(steps []model.ActionStep) []model.ActionStep {
	sorted := make([]model.ActionStep, len(steps))
	copy(sorted, steps)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Phase.Rank() != b.Phase.Rank() {
			return a.Phase.Rank() < b.Phase.Rank()
		}
		if a.Timing.Rank() != b.Timing.Rank() {
			return a.Timing.Rank() < b.Timing.Rank()
		}
		return a.SortOrder < b.SortOrder
	})

	return sorted
}
