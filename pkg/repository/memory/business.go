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

type businessTypeRepository struct {
	mu            sync.RWMutex
	businessTypes map[types.BusinessTypeID]*model.BusinessType
}

func newBusinessTypeRepository() *businessTypeRepository {
	return &businessTypeRepository{
		businessTypes: make(map[types.BusinessTypeID]*model.BusinessType),
	}
}

func (r *businessTypeRepository) Put(ctx context.Context, businessType *model.BusinessType) error {
	if err := businessType.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store business type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *businessType
	r.businessTypes[businessType.ID] = &stored
	return nil
}

func (r *businessTypeRepository) Get(ctx context.Context, id types.BusinessTypeID) (*model.BusinessType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bt, exists := r.businessTypes[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "business type not found", goerr.V("id", id))
	}

	copied := *bt
	return &copied, nil
}

func (r *businessTypeRepository) List(ctx context.Context) ([]*model.BusinessType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	businessTypes := make([]*model.BusinessType, 0, len(r.businessTypes))
	for _, bt := range r.businessTypes {
		copied := *bt
		businessTypes = append(businessTypes, &copied)
	}

	sort.Slice(businessTypes, func(i, j int) bool {
		return businessTypes[i].ID < businessTypes[j].ID
	})
	return businessTypes, nil
}

type vulnerabilityKey struct {
	businessTypeID types.BusinessTypeID
	hazardID       types.HazardID
}

type vulnerabilityRepository struct {
	mu       sync.RWMutex
	profiles map[vulnerabilityKey]*model.VulnerabilityProfile
}

func newVulnerabilityRepository() *vulnerabilityRepository {
	return &vulnerabilityRepository{
		profiles: make(map[vulnerabilityKey]*model.VulnerabilityProfile),
	}
}

func (r *vulnerabilityRepository) Put(ctx context.Context, profile *model.VulnerabilityProfile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store vulnerability profile")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *profile
	stored.UpdatedAt = time.Now().UTC()
	r.profiles[vulnerabilityKey{profile.BusinessTypeID, profile.HazardID}] = &stored
	return nil
}

func (r *vulnerabilityRepository) Get(ctx context.Context, businessTypeID types.BusinessTypeID, hazardID types.HazardID) (*model.VulnerabilityProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[vulnerabilityKey{businessTypeID, hazardID}]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "vulnerability profile not found",
			goerr.V("businessType", businessTypeID), goerr.V("hazard", hazardID))
	}

	copied := *profile
	return &copied, nil
}

func (r *vulnerabilityRepository) ListByHazard(ctx context.Context, hazardID types.HazardID) ([]*model.VulnerabilityProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profiles []*model.VulnerabilityProfile
	for key, profile := range r.profiles {
		if key.hazardID != hazardID {
			continue
		}
		copied := *profile
		profiles = append(profiles, &copied)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].BusinessTypeID < profiles[j].BusinessTypeID
	})
	return profiles, nil
}
