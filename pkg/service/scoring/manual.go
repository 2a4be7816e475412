package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// ClassifyManual maps a 1–16 likelihood x severity product to its tier.
// Single source of the thresholds; callers must not reimplement them.
func ClassifyManual(score int) types.RiskTier {
	switch {
	case score >= 12:
		return types.TierExtreme
	case score >= 8:
		return types.TierHigh
	case score >= 3:
		return types.TierModerate
	case score >= 1:
		return types.TierLow
	default:
		return types.TierNone
	}
}

// ManualRating computes the deterministic likelihood x severity rating.
// Recomputation from the same inputs is idempotent.
func ManualRating(likelihood, severity int) (*model.ManualRating, error) {
	rating := &model.ManualRating{
		Likelihood: likelihood,
		Severity:   severity,
	}
	if err := rating.Validate(); err != nil {
		return nil, goerr.Wrap(err, "failed to compute manual rating")
	}

	rating.Score = likelihood * severity
	rating.Tier = ClassifyManual(rating.Score)
	return rating, nil
}
