package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// ManualRating is the user-adjustable likelihood x severity assessment for a
// hazard. It coexists with the automated score and never overwrites it.
type ManualRating struct {
	Likelihood int            `json:"likelihood"`
	Severity   int            `json:"severity"`
	Score      int            `json:"score"`
	Tier       types.RiskTier `json:"tier"`
}

// Validate checks the rating inputs
func (m *ManualRating) Validate() error {
	if m.Likelihood < 1 || m.Likelihood > 4 {
		return goerr.Wrap(ErrInvalidRating, "likelihood must be between 1 and 4",
			goerr.V("likelihood", m.Likelihood))
	}
	if m.Severity < 1 || m.Severity > 4 {
		return goerr.Wrap(ErrInvalidRating, "severity must be between 1 and 4",
			goerr.V("severity", m.Severity))
	}
	return nil
}

// RiskAssessment is the per-hazard, per-session result of the scoring
// engine. The automated path and the optional manual rating are independent.
type RiskAssessment struct {
	SessionID      types.SessionID      `json:"session_id"`
	HazardID       types.HazardID       `json:"hazard_id"`
	HazardName     string               `json:"hazard_name"`
	LocationID     types.LocationID     `json:"location_id"`
	BusinessTypeID types.BusinessTypeID `json:"business_type_id"`

	HazardLevel        HazardLevel    `json:"hazard_level"`
	Vulnerability      Vulnerability  `json:"vulnerability"`
	CompositeBase      int            `json:"composite_base"`
	CombinedMultiplier float64        `json:"combined_multiplier"`
	FinalScore         int            `json:"final_score"`
	Tier               types.RiskTier `json:"tier"`
	AppliedRules       []AppliedRule  `json:"applied_rules"`

	Manual *ManualRating `json:"manual,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
