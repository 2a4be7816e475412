package strategy

import (
	"fmt"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// Relevance scores a strategy independently of the hazards it matched.
// Cheaper and essential strategies rank above expensive optional ones at
// equal effectiveness.
func Relevance(s *model.Strategy) int {
	return s.Effectiveness*2 + (3 - s.Cost.Rank()) + s.Selection.Bonus()
}

// Match builds the deduplicated candidate list for a set of assessed risks.
// A strategy matching several hazards appears once, with the matched hazard
// list and rationale merged. Inactive strategies and strategies scoped to
// other business types are excluded.
func Match(strategies []*model.Strategy, risks []*model.RiskAssessment, businessType types.BusinessTypeID) []*model.RankedStrategy {
	candidates := make([]*model.RankedStrategy, 0, len(strategies))

	for _, s := range strategies {
		if !s.Active {
			continue
		}
		if !s.MatchesBusinessType(businessType) {
			continue
		}

		var matched []types.HazardID
		var rationale []string
		for _, risk := range risks {
			if !appliesToHazard(s, risk.HazardID) {
				continue
			}
			matched = append(matched, risk.HazardID)
			rationale = append(rationale, describeMatch(risk))
		}
		if len(matched) == 0 {
			continue
		}

		candidates = append(candidates, &model.RankedStrategy{
			Strategy:       s,
			Relevance:      Relevance(s),
			MatchedHazards: matched,
			Rationale:      rationale,
		})
	}

	return candidates
}

func appliesToHazard(s *model.Strategy, id types.HazardID) bool {
	for _, h := range s.ApplicableHazards {
		if h == id {
			return true
		}
	}
	return false
}

func describeMatch(risk *model.RiskAssessment) string {
	name := risk.HazardName
	if name == "" {
		name = string(risk.HazardID)
	}
	return fmt.Sprintf("addresses %s (%s risk, score %d)", name, risk.Tier, risk.FinalScore)
}
