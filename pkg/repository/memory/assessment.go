package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

type assessmentKey struct {
	sessionID types.SessionID
	hazardID  types.HazardID
}

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[assessmentKey]*model.RiskAssessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[assessmentKey]*model.RiskAssessment),
	}
}

func copyAssessment(a *model.RiskAssessment) *model.RiskAssessment {
	copied := *a
	copied.AppliedRules = append([]model.AppliedRule(nil), a.AppliedRules...)
	if a.Manual != nil {
		manual := *a.Manual
		copied.Manual = &manual
	}
	return &copied
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.RiskAssessment) error {
	if err := assessment.SessionID.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store assessment")
	}
	if err := assessment.HazardID.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store assessment")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := assessmentKey{assessment.SessionID, assessment.HazardID}
	stored := copyAssessment(assessment)
	now := time.Now().UTC()
	if existing, ok := r.assessments[key]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.assessments[key] = stored
	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, sessionID types.SessionID, hazardID types.HazardID) (*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[assessmentKey{sessionID, hazardID}]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found",
			goerr.V("session", sessionID), goerr.V("hazard", hazardID))
	}

	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.RiskAssessment
	for key, assessment := range r.assessments {
		if key.sessionID != sessionID {
			continue
		}
		assessments = append(assessments, copyAssessment(assessment))
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].HazardID < assessments[j].HazardID
	})
	return assessments, nil
}
