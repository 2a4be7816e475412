package scoring

import (
	"math"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// Weights of the composite base: location hazard level and business
// vulnerability dominate, impact severity refines.
const (
	hazardWeight        = 0.4
	vulnerabilityWeight = 0.4
	impactWeight        = 0.2
)

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// CompositeBase merges the location hazard level and the business
// vulnerability profile into the 1–10 base score.
func CompositeBase(level model.HazardLevel, vulnerability model.Vulnerability) int {
	weighted := float64(level.Level)*hazardWeight +
		float64(vulnerability.Level)*vulnerabilityWeight +
		float64(vulnerability.ImpactSeverity)*impactWeight
	return clampScore(int(math.Round(weighted)))
}

// FinalScore applies the combined multiplier to the composite base and
// clamps back into 1–10.
func FinalScore(compositeBase int, combinedMultiplier float64) int {
	return clampScore(int(math.Round(float64(compositeBase) * combinedMultiplier)))
}

// Classify maps a 1–10 composite score to its risk tier
func Classify(score int) types.RiskTier {
	switch {
	case score >= 9:
		return types.TierExtreme
	case score >= 7:
		return types.TierVeryHigh
	case score >= 5:
		return types.TierHigh
	case score >= 3:
		return types.TierModerate
	default:
		return types.TierLow
	}
}

// Assess runs the full automated path for one hazard: composite base,
// multiplier application, and tier classification.
func Assess(level model.HazardLevel, vulnerability model.Vulnerability, multipliers model.MultiplierResult) (compositeBase, finalScore int, tier types.RiskTier) {
	compositeBase = CompositeBase(level, vulnerability)
	finalScore = FinalScore(compositeBase, multipliers.CombinedMultiplier)
	tier = Classify(finalScore)
	return compositeBase, finalScore, tier
}
