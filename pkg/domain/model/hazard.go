package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// Hazard is a named disaster/risk category
type Hazard struct {
	ID          types.HazardID
	Name        string
	Description string
}

// Validate checks the hazard record
func (h *Hazard) Validate() error {
	if err := h.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid hazard ID")
	}
	if h.Name == "" {
		return goerr.Wrap(ErrInvalidProfile, "hazard name is required", goerr.V("id", h.ID))
	}
	return nil
}

// HazardProfile is the admin-maintained base risk level for one hazard in
// one location. Read-only to the engine.
type HazardProfile struct {
	LocationID types.LocationID
	HazardID   types.HazardID
	Level      int
	Rationale  string
	UpdatedAt  time.Time
}

// Validate checks the profile record
func (p *HazardProfile) Validate() error {
	if err := p.LocationID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid location ID")
	}
	if err := p.HazardID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid hazard ID")
	}
	if p.Level < 1 || p.Level > 10 {
		return goerr.Wrap(ErrInvalidProfile, "hazard level must be between 1 and 10",
			goerr.V("location", p.LocationID), goerr.V("hazard", p.HazardID), goerr.V("level", p.Level))
	}
	return nil
}

// HazardLevel is the accessor result for a (location, hazard) lookup.
// Estimated marks the neutral fallback used when no profile exists.
type HazardLevel struct {
	Level     int  `json:"level"`
	Estimated bool `json:"is_estimated"`
}

// Location is a geographic/administrative unit
type Location struct {
	ID   types.LocationID
	Name string
}

// Validate checks the location record
func (l *Location) Validate() error {
	if err := l.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid location ID")
	}
	if l.Name == "" {
		return goerr.Wrap(ErrInvalidProfile, "location name is required", goerr.V("id", l.ID))
	}
	return nil
}
