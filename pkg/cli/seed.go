package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/cli/config"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
)

// seedRepository writes a validated reference data set into the repository.
// Existing records with the same IDs are overwritten.
func seedRepository(ctx context.Context, repo interfaces.Repository, data *config.ReferenceData) error {
	for _, h := range data.Hazards {
		if err := repo.Hazard().Put(ctx, h); err != nil {
			return goerr.Wrap(err, "failed to seed hazard", goerr.V("id", h.ID))
		}
	}
	for _, p := range data.HazardProfiles {
		if err := repo.HazardProfile().Put(ctx, p); err != nil {
			return goerr.Wrap(err, "failed to seed hazard profile",
				goerr.V("location", p.LocationID), goerr.V("hazard", p.HazardID))
		}
	}
	for _, bt := range data.BusinessTypes {
		if err := repo.BusinessType().Put(ctx, bt); err != nil {
			return goerr.Wrap(err, "failed to seed business type", goerr.V("id", bt.ID))
		}
	}
	for _, v := range data.Vulnerabilities {
		if err := repo.Vulnerability().Put(ctx, v); err != nil {
			return goerr.Wrap(err, "failed to seed vulnerability profile",
				goerr.V("business_type", v.BusinessTypeID), goerr.V("hazard", v.HazardID))
		}
	}
	for _, rule := range data.Multipliers {
		if err := repo.MultiplierRule().Put(ctx, rule); err != nil {
			return goerr.Wrap(err, "failed to seed multiplier rule", goerr.V("name", rule.Name))
		}
	}
	for _, s := range data.Strategies {
		if err := repo.Strategy().Put(ctx, s); err != nil {
			return goerr.Wrap(err, "failed to seed strategy", goerr.V("id", s.ID))
		}
	}
	return nil
}
