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

type businessTypeDocument struct {
	ID       string `firestore:"id"`
	Name     string `firestore:"name"`
	Category string `firestore:"category"`
}

type businessTypeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newBusinessTypeRepository(client *firestore.Client) *businessTypeRepository {
	return &businessTypeRepository{client: client}
}

func (r *businessTypeRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_business_types"
	}
	return "business_types"
}

func (r *businessTypeRepository) Put(ctx context.Context, businessType *model.BusinessType) error {
	if err := businessType.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store business type")
	}

	doc := &businessTypeDocument{
		ID:       businessType.ID.String(),
		Name:     businessType.Name,
		Category: businessType.Category,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put business type", goerr.V("id", businessType.ID))
	}
	return nil
}

func (r *businessTypeRepository) Get(ctx context.Context, id types.BusinessTypeID) (*model.BusinessType, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "business type not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get business type", goerr.V("id", id))
	}

	var bd businessTypeDocument
	if err := doc.DataTo(&bd); err != nil {
		return nil, goerr.Wrap(err, "failed to decode business type document", goerr.V("id", id))
	}

	return &model.BusinessType{
		ID:       types.BusinessTypeID(bd.ID),
		Name:     bd.Name,
		Category: bd.Category,
	}, nil
}

func (r *businessTypeRepository) List(ctx context.Context) ([]*model.BusinessType, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var businessTypes []*model.BusinessType
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate business types")
		}

		var bd businessTypeDocument
		if err := doc.DataTo(&bd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode business type document")
		}
		businessTypes = append(businessTypes, &model.BusinessType{
			ID:       types.BusinessTypeID(bd.ID),
			Name:     bd.Name,
			Category: bd.Category,
		})
	}

	return businessTypes, nil
}

type vulnerabilityDocument struct {
	BusinessTypeID string    `firestore:"business_type_id"`
	HazardID       string    `firestore:"hazard_id"`
	Vulnerability  int       `firestore:"vulnerability"`
	ImpactSeverity int       `firestore:"impact_severity"`
	Rationale      string    `firestore:"rationale"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

type vulnerabilityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newVulnerabilityRepository(client *firestore.Client) *vulnerabilityRepository {
	return &vulnerabilityRepository{client: client}
}

func (r *vulnerabilityRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_vulnerability_profiles"
	}
	return "vulnerability_profiles"
}

func (r *vulnerabilityRepository) Put(ctx context.Context, profile *model.VulnerabilityProfile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store vulnerability profile")
	}

	doc := &vulnerabilityDocument{
		BusinessTypeID: profile.BusinessTypeID.String(),
		HazardID:       profile.HazardID.String(),
		Vulnerability:  profile.Vulnerability,
		ImpactSeverity: profile.ImpactSeverity,
		Rationale:      profile.Rationale,
		UpdatedAt:      time.Now().UTC(),
	}

	docID := doc.BusinessTypeID + ":" + doc.HazardID
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put vulnerability profile",
			goerr.V("businessType", profile.BusinessTypeID), goerr.V("hazard", profile.HazardID))
	}
	return nil
}

func (r *vulnerabilityRepository) Get(ctx context.Context, businessTypeID types.BusinessTypeID, hazardID types.HazardID) (*model.VulnerabilityProfile, error) {
	docID := businessTypeID.String() + ":" + hazardID.String()
	doc, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "vulnerability profile not found",
				goerr.V("businessType", businessTypeID), goerr.V("hazard", hazardID))
		}
		return nil, goerr.Wrap(err, "failed to get vulnerability profile",
			goerr.V("businessType", businessTypeID), goerr.V("hazard", hazardID))
	}

	var vd vulnerabilityDocument
	if err := doc.DataTo(&vd); err != nil {
		return nil, goerr.Wrap(err, "failed to decode vulnerability document")
	}
	return vulnerabilityFromDocument(&vd), nil
}

func (r *vulnerabilityRepository) ListByHazard(ctx context.Context, hazardID types.HazardID) ([]*model.VulnerabilityProfile, error) {
	iter := r.client.Collection(r.collection()).
		Where("hazard_id", "==", hazardID.String()).
		Documents(ctx)
	defer iter.Stop()

	var profiles []*model.VulnerabilityProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vulnerability profiles",
				goerr.V("hazard", hazardID))
		}

		var vd vulnerabilityDocument
		if err := doc.DataTo(&vd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode vulnerability document")
		}
		profiles = append(profiles, vulnerabilityFromDocument(&vd))
	}

	return profiles, nil
}

func vulnerabilityFromDocument(vd *vulnerabilityDocument) *model.VulnerabilityProfile {
	return &model.VulnerabilityProfile{
		BusinessTypeID: types.BusinessTypeID(vd.BusinessTypeID),
		HazardID:       types.HazardID(vd.HazardID),
		Vulnerability:  vd.Vulnerability,
		ImpactSeverity: vd.ImpactSeverity,
		Rationale:      vd.Rationale,
		UpdatedAt:      vd.UpdatedAt,
	}
}
