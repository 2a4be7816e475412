package refdata

import (
	"context"
	"sync"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the immutable reference data slice one assessment request
// computes against. Prefetched in a single batched pass so the engine does
// no further I/O.
type Snapshot struct {
	LocationID     types.LocationID
	BusinessTypeID types.BusinessTypeID

	HazardNames     map[types.HazardID]string
	HazardLevels    map[types.HazardID]model.HazardLevel
	Vulnerabilities map[types.HazardID]model.Vulnerability
	Multipliers     map[types.HazardID][]*model.MultiplierRule
}

const snapshotConcurrency = 8

// Snapshot prefetches everything the engine needs for the given hazards.
// Lookup failures degrade per accessor semantics; the snapshot itself never
// fails except on context cancellation.
func (s *Service) Snapshot(ctx context.Context, locationID types.LocationID, businessTypeID types.BusinessTypeID, hazardIDs []types.HazardID) (*Snapshot, error) {
	snap := &Snapshot{
		LocationID:      locationID,
		BusinessTypeID:  businessTypeID,
		HazardNames:     make(map[types.HazardID]string, len(hazardIDs)),
		HazardLevels:    make(map[types.HazardID]model.HazardLevel, len(hazardIDs)),
		Vulnerabilities: make(map[types.HazardID]model.Vulnerability, len(hazardIDs)),
		Multipliers:     make(map[types.HazardID][]*model.MultiplierRule, len(hazardIDs)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)

	for _, hazardID := range hazardIDs {
		g.Go(func() error {
			name := hazardID.String()
			if hazard, err := s.repo.Hazard().Get(gctx, hazardID); err == nil {
				name = hazard.Name
			}
			level := s.HazardLevel(gctx, locationID, hazardID)
			vulnerability := s.Vulnerability(gctx, businessTypeID, hazardID)
			rules := s.ApplicableMultipliers(gctx, hazardID)

			mu.Lock()
			defer mu.Unlock()
			snap.HazardNames[hazardID] = name
			snap.HazardLevels[hazardID] = level
			snap.Vulnerabilities[hazardID] = vulnerability
			snap.Multipliers[hazardID] = rules
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// KnownHazards lists all hazard IDs in the catalog, used when a request
// does not name explicit hazards.
func (s *Service) KnownHazards(ctx context.Context) ([]types.HazardID, error) {
	hazards, err := s.repo.Hazard().List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]types.HazardID, 0, len(hazards))
	for _, h := range hazards {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
