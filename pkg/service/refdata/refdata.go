package refdata

import (
	"context"
	"errors"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

// Neutral defaults used when reference data is missing. Flagged as
// estimated, never surfaced as an error.
const (
	DefaultHazardLevel    = 5
	DefaultVulnerability  = 5
	DefaultImpactSeverity = 5

	cacheSize = 4096
)

type hazardLevelKey struct {
	locationID types.LocationID
	hazardID   types.HazardID
}

type vulnerabilityKey struct {
	businessTypeID types.BusinessTypeID
	hazardID       types.HazardID
}

// Service provides the read-only reference data accessors the scoring
// engine consumes. Lookups are cached; the cache is invalidated on admin
// writes only, so staleness within one assessment is acceptable.
type Service struct {
	repo interfaces.Repository

	hazardLevels    *lru.Cache[hazardLevelKey, model.HazardLevel]
	vulnerabilities *lru.Cache[vulnerabilityKey, model.Vulnerability]
}

func New(repo interfaces.Repository) (*Service, error) {
	hazardLevels, err := lru.New[hazardLevelKey, model.HazardLevel](cacheSize)
	if err != nil {
		return nil, err
	}
	vulnerabilities, err := lru.New[vulnerabilityKey, model.Vulnerability](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:            repo,
		hazardLevels:    hazardLevels,
		vulnerabilities: vulnerabilities,
	}, nil
}

// HazardLevel returns the base risk level for (location, hazard). A missing
// profile, or any lookup failure, degrades to the neutral estimated default.
func (s *Service) HazardLevel(ctx context.Context, locationID types.LocationID, hazardID types.HazardID) model.HazardLevel {
	key := hazardLevelKey{locationID, hazardID}
	if cached, ok := s.hazardLevels.Get(key); ok {
		return cached
	}

	profile, err := s.repo.HazardProfile().Get(ctx, locationID, hazardID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Warn("hazard profile lookup failed, using estimated default",
				"location", locationID, "hazard", hazardID, "error", err)
			return model.HazardLevel{Level: DefaultHazardLevel, Estimated: true}
		}
		level := model.HazardLevel{Level: DefaultHazardLevel, Estimated: true}
		s.hazardLevels.Add(key, level)
		return level
	}

	level := model.HazardLevel{Level: profile.Level}
	s.hazardLevels.Add(key, level)
	return level
}

// Vulnerability returns the vulnerability profile for (businessType,
// hazard). A missing profile falls back to the average over the business
// type's category for that hazard, else to neutral defaults.
func (s *Service) Vulnerability(ctx context.Context, businessTypeID types.BusinessTypeID, hazardID types.HazardID) model.Vulnerability {
	key := vulnerabilityKey{businessTypeID, hazardID}
	if cached, ok := s.vulnerabilities.Get(key); ok {
		return cached
	}

	profile, err := s.repo.Vulnerability().Get(ctx, businessTypeID, hazardID)
	if err == nil {
		v := model.Vulnerability{Level: profile.Vulnerability, ImpactSeverity: profile.ImpactSeverity}
		s.vulnerabilities.Add(key, v)
		return v
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		logging.From(ctx).Warn("vulnerability profile lookup failed, using estimated default",
			"businessType", businessTypeID, "hazard", hazardID, "error", err)
		return model.Vulnerability{
			Level:          DefaultVulnerability,
			ImpactSeverity: DefaultImpactSeverity,
			Estimated:      true,
		}
	}

	v := s.categoryAverage(ctx, businessTypeID, hazardID)
	s.vulnerabilities.Add(key, v)
	return v
}

// categoryAverage averages the vulnerability profiles of same-category
// business types for the hazard. Falls back to neutral defaults when the
// category has no profiles for the hazard.
func (s *Service) categoryAverage(ctx context.Context, businessTypeID types.BusinessTypeID, hazardID types.HazardID) model.Vulnerability {
	neutral := model.Vulnerability{
		Level:          DefaultVulnerability,
		ImpactSeverity: DefaultImpactSeverity,
		Estimated:      true,
	}

	businessType, err := s.repo.BusinessType().Get(ctx, businessTypeID)
	if err != nil || businessType.Category == "" {
		return neutral
	}

	peers, err := s.repo.BusinessType().List(ctx)
	if err != nil {
		return neutral
	}
	sameCategory := make(map[types.BusinessTypeID]bool, len(peers))
	for _, peer := range peers {
		if peer.Category == businessType.Category {
			sameCategory[peer.ID] = true
		}
	}

	profiles, err := s.repo.Vulnerability().ListByHazard(ctx, hazardID)
	if err != nil {
		return neutral
	}

	var vulnSum, impactSum, count int
	for _, p := range profiles {
		if !sameCategory[p.BusinessTypeID] {
			continue
		}
		vulnSum += p.Vulnerability
		impactSum += p.ImpactSeverity
		count++
	}
	if count == 0 {
		return neutral
	}

	return model.Vulnerability{
		Level:          int(math.Round(float64(vulnSum) / float64(count))),
		ImpactSeverity: int(math.Round(float64(impactSum) / float64(count))),
		Estimated:      true,
	}
}

// ApplicableMultipliers returns the active multiplier rules for the hazard,
// ascending by priority. A lookup failure degrades to no rules.
func (s *Service) ApplicableMultipliers(ctx context.Context, hazardID types.HazardID) []*model.MultiplierRule {
	rules, err := s.repo.MultiplierRule().ListByHazard(ctx, hazardID)
	if err != nil {
		logging.From(ctx).Warn("multiplier rule lookup failed, applying no multipliers",
			"hazard", hazardID, "error", err)
		return nil
	}
	return rules
}

// InvalidateHazardLevel drops the cached level for (location, hazard).
// Called on admin writes.
func (s *Service) InvalidateHazardLevel(locationID types.LocationID, hazardID types.HazardID) {
	s.hazardLevels.Remove(hazardLevelKey{locationID, hazardID})
}

// InvalidateVulnerability drops the cached profile for (businessType, hazard)
func (s *Service) InvalidateVulnerability(businessTypeID types.BusinessTypeID, hazardID types.HazardID) {
	s.vulnerabilities.Remove(vulnerabilityKey{businessTypeID, hazardID})
}

// Purge drops all cached reference data, e.g. after a bulk seed
func (s *Service) Purge() {
	s.hazardLevels.Purge()
	s.vulnerabilities.Purge()
}
