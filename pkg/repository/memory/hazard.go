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

type hazardRepository struct {
	mu      sync.RWMutex
	hazards map[types.HazardID]*model.Hazard
}

func newHazardRepository() *hazardRepository {
	return &hazardRepository{
		hazards: make(map[types.HazardID]*model.Hazard),
	}
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	if err := hazard.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store hazard")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *hazard
	r.hazards[hazard.ID] = &stored
	return nil
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hazard, exists := r.hazards[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "hazard not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	copied := *hazard
	return &copied, nil
}

func (r *hazardRepository) List(ctx context.Context) ([]*model.Hazard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hazards := make([]*model.Hazard, 0, len(r.hazards))
	for _, hazard := range r.hazards {
		copied := *hazard
		hazards = append(hazards, &copied)
	}

	sort.Slice(hazards, func(i, j int) bool {
		return hazards[i].ID < hazards[j].ID
	})
	return hazards, nil
}

type hazardProfileKey struct {
	locationID types.LocationID
	hazardID   types.HazardID
}

type hazardProfileRepository struct {
	mu       sync.RWMutex
	profiles map[hazardProfileKey]*model.HazardProfile
}

func newHazardProfileRepository() *hazardProfileRepository {
	return &hazardProfileRepository{
		profiles: make(map[hazardProfileKey]*model.HazardProfile),
	}
}

func (r *hazardProfileRepository) Put(ctx context.Context, profile *model.HazardProfile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store hazard profile")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *profile
	stored.UpdatedAt = time.Now().UTC()
	r.profiles[hazardProfileKey{profile.LocationID, profile.HazardID}] = &stored
	return nil
}

func (r *hazardProfileRepository) Get(ctx context.Context, locationID types.LocationID, hazardID types.HazardID) (*model.HazardProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[hazardProfileKey{locationID, hazardID}]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "hazard profile not found",
			goerr.V("location", locationID), goerr.V("hazard", hazardID))
	}

	copied := *profile
	return &copied, nil
}

func (r *hazardProfileRepository) ListByLocation(ctx context.Context, locationID types.LocationID) ([]*model.HazardProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profiles []*model.HazardProfile
	for key, profile := range r.profiles {
		if key.locationID != locationID {
			continue
		}
		copied := *profile
		profiles = append(profiles, &copied)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].HazardID < profiles[j].HazardID
	})
	return profiles, nil
}
