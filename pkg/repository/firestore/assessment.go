package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type appliedRuleDocument struct {
	Name      string  `firestore:"name"`
	Factor    float64 `firestore:"factor"`
	Reasoning string  `firestore:"reasoning"`
}

type manualRatingDocument struct {
	Likelihood int    `firestore:"likelihood"`
	Severity   int    `firestore:"severity"`
	Score      int    `firestore:"score"`
	Tier       string `firestore:"tier"`
}

type assessmentDocument struct {
	SessionID      string `firestore:"session_id"`
	HazardID       string `firestore:"hazard_id"`
	HazardName     string `firestore:"hazard_name"`
	LocationID     string `firestore:"location_id"`
	BusinessTypeID string `firestore:"business_type_id"`

	HazardLevel        int     `firestore:"hazard_level"`
	HazardEstimated    bool    `firestore:"hazard_estimated"`
	Vulnerability      int     `firestore:"vulnerability"`
	ImpactSeverity     int     `firestore:"impact_severity"`
	VulnEstimated      bool    `firestore:"vuln_estimated"`
	CompositeBase      int     `firestore:"composite_base"`
	CombinedMultiplier float64 `firestore:"combined_multiplier"`
	FinalScore         int     `firestore:"final_score"`
	Tier               string  `firestore:"tier"`

	AppliedRules []appliedRuleDocument `firestore:"applied_rules"`
	Manual       *manualRatingDocument `firestore:"manual"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{client: client}
}

func (r *assessmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func assessmentDocID(sessionID types.SessionID, hazardID types.HazardID) string {
	return sessionID.String() + ":" + hazardID.String()
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.RiskAssessment) error {
	if err := assessment.SessionID.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store assessment")
	}
	if err := assessment.HazardID.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store assessment")
	}

	docRef := r.client.Collection(r.collection()).Doc(assessmentDocID(assessment.SessionID, assessment.HazardID))

	now := time.Now().UTC()
	createdAt := now
	if existing, err := docRef.Get(ctx); err == nil {
		var prev assessmentDocument
		if err := existing.DataTo(&prev); err == nil && !prev.CreatedAt.IsZero() {
			createdAt = prev.CreatedAt
		}
	}

	doc := assessmentToDocument(assessment)
	doc.CreatedAt = createdAt
	doc.UpdatedAt = now

	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put assessment",
			goerr.V("session", assessment.SessionID), goerr.V("hazard", assessment.HazardID))
	}
	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, sessionID types.SessionID, hazardID types.HazardID) (*model.RiskAssessment, error) {
	doc, err := r.client.Collection(r.collection()).Doc(assessmentDocID(sessionID, hazardID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "assessment not found",
				goerr.V("session", sessionID), goerr.V("hazard", hazardID))
		}
		return nil, goerr.Wrap(err, "failed to get assessment",
			goerr.V("session", sessionID), goerr.V("hazard", hazardID))
	}

	var ad assessmentDocument
	if err := doc.DataTo(&ad); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assessment document")
	}
	return assessmentFromDocument(&ad), nil
}

func (r *assessmentRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.RiskAssessment, error) {
	iter := r.client.Collection(r.collection()).
		Where("session_id", "==", sessionID.String()).
		Documents(ctx)
	defer iter.Stop()

	var assessments []*model.RiskAssessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("session", sessionID))
		}

		var ad assessmentDocument
		if err := doc.DataTo(&ad); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assessment document")
		}
		assessments = append(assessments, assessmentFromDocument(&ad))
	}

	return assessments, nil
}

func assessmentToDocument(a *model.RiskAssessment) *assessmentDocument {
	rules := make([]appliedRuleDocument, 0, len(a.AppliedRules))
	for _, rule := range a.AppliedRules {
		rules = append(rules, appliedRuleDocument(rule))
	}

	doc := &assessmentDocument{
		SessionID:          a.SessionID.String(),
		HazardID:           a.HazardID.String(),
		HazardName:         a.HazardName,
		LocationID:         a.LocationID.String(),
		BusinessTypeID:     a.BusinessTypeID.String(),
		HazardLevel:        a.HazardLevel.Level,
		HazardEstimated:    a.HazardLevel.Estimated,
		Vulnerability:      a.Vulnerability.Level,
		ImpactSeverity:     a.Vulnerability.ImpactSeverity,
		VulnEstimated:      a.Vulnerability.Estimated,
		CompositeBase:      a.CompositeBase,
		CombinedMultiplier: a.CombinedMultiplier,
		FinalScore:         a.FinalScore,
		Tier:               a.Tier.String(),
		AppliedRules:       rules,
	}
	if a.Manual != nil {
		doc.Manual = &manualRatingDocument{
			Likelihood: a.Manual.Likelihood,
			Severity:   a.Manual.Severity,
			Score:      a.Manual.Score,
			Tier:       a.Manual.Tier.String(),
		}
	}
	return doc
}

func assessmentFromDocument(ad *assessmentDocument) *model.RiskAssessment {
	rules := make([]model.AppliedRule, 0, len(ad.AppliedRules))
	for _, rule := range ad.AppliedRules {
		rules = append(rules, model.AppliedRule(rule))
	}

	a := &model.RiskAssessment{
		SessionID:      types.SessionID(ad.SessionID),
		HazardID:       types.HazardID(ad.HazardID),
		HazardName:     ad.HazardName,
		LocationID:     types.LocationID(ad.LocationID),
		BusinessTypeID: types.BusinessTypeID(ad.BusinessTypeID),
		HazardLevel: model.HazardLevel{
			Level:     ad.HazardLevel,
			Estimated: ad.HazardEstimated,
		},
		Vulnerability: model.Vulnerability{
			Level:          ad.Vulnerability,
			ImpactSeverity: ad.ImpactSeverity,
			Estimated:      ad.VulnEstimated,
		},
		CompositeBase:      ad.CompositeBase,
		CombinedMultiplier: ad.CombinedMultiplier,
		FinalScore:         ad.FinalScore,
		Tier:               types.RiskTier(ad.Tier),
		AppliedRules:       rules,
		CreatedAt:          ad.CreatedAt,
		UpdatedAt:          ad.UpdatedAt,
	}
	if ad.Manual != nil {
		a.Manual = &model.ManualRating{
			Likelihood: ad.Manual.Likelihood,
			Severity:   ad.Manual.Severity,
			Score:      ad.Manual.Score,
			Tier:       types.RiskTier(ad.Manual.Tier),
		}
	}
	return a
}
