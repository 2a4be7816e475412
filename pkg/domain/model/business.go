package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// BusinessType is an SME category. Category groups related business types
// (e.g. "tourism", "retail") and drives the vulnerability fallback average.
type BusinessType struct {
	ID       types.BusinessTypeID
	Name     string
	Category string
}

// Validate checks the business type record
func (b *BusinessType) Validate() error {
	if err := b.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid business type ID")
	}
	if b.Name == "" {
		return goerr.Wrap(ErrInvalidProfile, "business type name is required", goerr.V("id", b.ID))
	}
	return nil
}

// VulnerabilityProfile is the admin-maintained susceptibility of one
// business type to one hazard. Read-only to the engine.
type VulnerabilityProfile struct {
	BusinessTypeID types.BusinessTypeID
	HazardID       types.HazardID
	Vulnerability  int
	ImpactSeverity int
	Rationale      string
	UpdatedAt      time.Time
}

// Validate checks the profile record
func (p *VulnerabilityProfile) Validate() error {
	if err := p.BusinessTypeID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid business type ID")
	}
	if err := p.HazardID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid hazard ID")
	}
	if p.Vulnerability < 1 || p.Vulnerability > 10 {
		return goerr.Wrap(ErrInvalidProfile, "vulnerability level must be between 1 and 10",
			goerr.V("businessType", p.BusinessTypeID), goerr.V("hazard", p.HazardID),
			goerr.V("vulnerability", p.Vulnerability))
	}
	if p.ImpactSeverity < 1 || p.ImpactSeverity > 10 {
		return goerr.Wrap(ErrInvalidProfile, "impact severity must be between 1 and 10",
			goerr.V("businessType", p.BusinessTypeID), goerr.V("hazard", p.HazardID),
			goerr.V("impact", p.ImpactSeverity))
	}
	return nil
}

// Vulnerability is the accessor result for a (businessType, hazard) lookup.
// Estimated marks values derived from category averages or neutral defaults.
type Vulnerability struct {
	Level          int  `json:"vulnerability_level"`
	ImpactSeverity int  `json:"impact_severity"`
	Estimated      bool `json:"is_estimated"`
}
