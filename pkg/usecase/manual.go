package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/service/scoring"
)

// SetManualRating attaches a likelihood x severity rating to a stored
// assessment. The automated score on the assessment is left untouched.
// Recomputing with the same inputs is idempotent.
func (uc *UseCases) SetManualRating(ctx context.Context, sessionID types.SessionID, hazardID types.HazardID, likelihood, severity int) (*model.RiskAssessment, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, sessionID, hazardID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "no assessment to rate",
				goerr.V("session", sessionID), goerr.V("hazard", hazardID))
		}
		return nil, goerr.Wrap(err, "failed to load assessment",
			goerr.V("session", sessionID), goerr.V("hazard", hazardID))
	}

	rating, err := scoring.ManualRating(likelihood, severity)
	if err != nil {
		return nil, err
	}

	assessment.Manual = rating
	if err := uc.repo.Assessment().Put(ctx, assessment); err != nil {
		return nil, goerr.Wrap(err, "failed to store manual rating",
			goerr.V("session", sessionID), goerr.V("hazard", hazardID))
	}

	return assessment, nil
}

// Session returns all stored assessments for a session
func (uc *UseCases) Session(ctx context.Context, sessionID types.SessionID) ([]*model.RiskAssessment, error) {
	assessments, err := uc.repo.Assessment().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list session assessments",
			goerr.V("session", sessionID))
	}
	return assessments, nil
}
