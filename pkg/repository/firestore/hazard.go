package firestore

import (
	"context"
	"fmt"
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

type hazardDocument struct {
	ID          string `firestore:"id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
}

type hazardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHazardRepository(client *firestore.Client) *hazardRepository {
	return &hazardRepository{client: client}
}

func (r *hazardRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_hazards"
	}
	return "hazards"
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	if err := hazard.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store hazard")
	}

	doc := &hazardDocument{
		ID:          hazard.ID.String(),
		Name:        hazard.Name,
		Description: hazard.Description,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put hazard", goerr.V("id", hazard.ID))
	}
	return nil
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "hazard not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get hazard", goerr.V("id", id))
	}

	var hd hazardDocument
	if err := doc.DataTo(&hd); err != nil {
		return nil, goerr.Wrap(err, "failed to decode hazard document", goerr.V("id", id))
	}

	return &model.Hazard{
		ID:          types.HazardID(hd.ID),
		Name:        hd.Name,
		Description: hd.Description,
	}, nil
}

func (r *hazardRepository) List(ctx context.Context) ([]*model.Hazard, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var hazards []*model.Hazard
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate hazards")
		}

		var hd hazardDocument
		if err := doc.DataTo(&hd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode hazard document")
		}
		hazards = append(hazards, &model.Hazard{
			ID:          types.HazardID(hd.ID),
			Name:        hd.Name,
			Description: hd.Description,
		})
	}

	return hazards, nil
}

type hazardProfileDocument struct {
	LocationID string    `firestore:"location_id"`
	HazardID   string    `firestore:"hazard_id"`
	Level      int       `firestore:"level"`
	Rationale  string    `firestore:"rationale"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type hazardProfileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHazardProfileRepository(client *firestore.Client) *hazardProfileRepository {
	return &hazardProfileRepository{client: client}
}

func (r *hazardProfileRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_hazard_profiles"
	}
	return "hazard_profiles"
}

func profileDocID(locationID types.LocationID, hazardID types.HazardID) string {
	return fmt.Sprintf("%s:%s", locationID, hazardID)
}

func (r *hazardProfileRepository) Put(ctx context.Context, profile *model.HazardProfile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store hazard profile")
	}

	doc := &hazardProfileDocument{
		LocationID: profile.LocationID.String(),
		HazardID:   profile.HazardID.String(),
		Level:      profile.Level,
		Rationale:  profile.Rationale,
		UpdatedAt:  time.Now().UTC(),
	}

	docRef := r.client.Collection(r.collection()).Doc(profileDocID(profile.LocationID, profile.HazardID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put hazard profile",
			goerr.V("location", profile.LocationID), goerr.V("hazard", profile.HazardID))
	}
	return nil
}

func (r *hazardProfileRepository) Get(ctx context.Context, locationID types.LocationID, hazardID types.HazardID) (*model.HazardProfile, error) {
	docRef := r.client.Collection(r.collection()).Doc(profileDocID(locationID, hazardID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "hazard profile not found",
				goerr.V("location", locationID), goerr.V("hazard", hazardID))
		}
		return nil, goerr.Wrap(err, "failed to get hazard profile",
			goerr.V("location", locationID), goerr.V("hazard", hazardID))
	}

	var pd hazardProfileDocument
	if err := doc.DataTo(&pd); err != nil {
		return nil, goerr.Wrap(err, "failed to decode hazard profile document")
	}
	return profileFromDocument(&pd), nil
}

func (r *hazardProfileRepository) ListByLocation(ctx context.Context, locationID types.LocationID) ([]*model.HazardProfile, error) {
	iter := r.client.Collection(r.collection()).
		Where("location_id", "==", locationID.String()).
		Documents(ctx)
	defer iter.Stop()

	var profiles []*model.HazardProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate hazard profiles",
				goerr.V("location", locationID))
		}

		var pd hazardProfileDocument
		if err := doc.DataTo(&pd); err != nil {
			return nil, goerr.Wrap(err, "failed to decode hazard profile document")
		}
		profiles = append(profiles, profileFromDocument(&pd))
	}

	return profiles, nil
}

func profileFromDocument(pd *hazardProfileDocument) *model.HazardProfile {
	return &model.HazardProfile{
		LocationID: types.LocationID(pd.LocationID),
		HazardID:   types.HazardID(pd.HazardID),
		Level:      pd.Level,
		Rationale:  pd.Rationale,
		UpdatedAt:  pd.UpdatedAt,
	}
}
