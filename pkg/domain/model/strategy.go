package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// Strategy is an admin-maintained mitigation approach. Read-only to the
// engine. An empty ApplicableBusinessTypes list means "all".
type Strategy struct {
	ID                      types.StrategyID
	Name                    string
	Summary                 string
	Category                types.StrategyCategory
	ApplicableHazards       []types.HazardID
	ApplicableBusinessTypes []types.BusinessTypeID
	Effectiveness           int
	Cost                    types.CostTier
	Selection               types.SelectionTier
	Active                  bool
	Steps                   []ActionStep
}

// Validate checks the strategy record
func (s *Strategy) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid strategy ID")
	}
	if s.Name == "" {
		return goerr.Wrap(ErrInvalidStrategy, "strategy name is required", goerr.V("id", s.ID))
	}
	if !s.Category.IsValid() {
		return goerr.Wrap(ErrInvalidStrategy, "invalid strategy category",
			goerr.V("id", s.ID), goerr.V("category", s.Category))
	}
	if len(s.ApplicableHazards) == 0 {
		return goerr.Wrap(ErrInvalidStrategy, "strategy must apply to at least one hazard",
			goerr.V("id", s.ID))
	}
	if s.Effectiveness < 1 || s.Effectiveness > 10 {
		return goerr.Wrap(ErrInvalidStrategy, "effectiveness must be between 1 and 10",
			goerr.V("id", s.ID), goerr.V("effectiveness", s.Effectiveness))
	}
	if !s.Cost.IsValid() {
		return goerr.Wrap(ErrInvalidStrategy, "invalid cost tier",
			goerr.V("id", s.ID), goerr.V("cost", s.Cost))
	}
	if !s.Selection.IsValid() {
		return goerr.Wrap(ErrInvalidStrategy, "invalid selection tier",
			goerr.V("id", s.ID), goerr.V("selection", s.Selection))
	}
	for i := range s.Steps {
		if err := s.Steps[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid action step", goerr.V("id", s.ID), goerr.V("step_index", i))
		}
	}
	return nil
}

// MatchesBusinessType reports whether the strategy covers the business type.
// Strategies with no explicit business types apply to all.
func (s *Strategy) MatchesBusinessType(id types.BusinessTypeID) bool {
	if len(s.ApplicableBusinessTypes) == 0 {
		return true
	}
	for _, bt := range s.ApplicableBusinessTypes {
		if bt == id {
			return true
		}
	}
	return false
}

// ActionStep is one ordered, phased task owned by exactly one strategy
type ActionStep struct {
	Title       string
	Description string
	Phase       types.StepPhase
	Timing      types.ExecutionTiming
	SortOrder   int
}

// Validate checks the step record
func (a *ActionStep) Validate() error {
	if a.Title == "" {
		return goerr.Wrap(ErrInvalidStep, "step title is required")
	}
	if !a.Phase.IsValid() {
		return goerr.Wrap(ErrInvalidStep, "invalid step phase", goerr.V("phase", a.Phase))
	}
	if !a.Timing.IsValid() {
		return goerr.Wrap(ErrInvalidStep, "invalid execution timing", goerr.V("timing", a.Timing))
	}
	return nil
}

// RankedStrategy is one entry of the ranked recommendation output: the
// strategy, its relevance score, and the merged hazard-match metadata.
type RankedStrategy struct {
	Strategy       *Strategy        `json:"strategy"`
	Relevance      int              `json:"relevance"`
	MatchedHazards []types.HazardID `json:"matched_hazards"`
	Rationale      []string         `json:"rationale"`
}

// Recommendation is the full engine output consumed by the wizard: the
// assessed risks and the ranked strategy list. NoGuidance marks an empty
// candidate set ("no specific guidance"), which is not an error.
type Recommendation struct {
	Risks      []*RiskAssessment `json:"risks"`
	Strategies []*RankedStrategy `json:"strategies"`
	NoGuidance bool              `json:"no_guidance"`
}
