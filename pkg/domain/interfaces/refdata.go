package interfaces

import (
	"context"

	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// HazardRepository stores the hazard catalog
type HazardRepository interface {
	// Put creates or replaces a hazard record
	Put(ctx context.Context, hazard *model.Hazard) error

	// Get retrieves a hazard by ID
	Get(ctx context.Context, id types.HazardID) (*model.Hazard, error)

	// List retrieves all hazards
	List(ctx context.Context) ([]*model.Hazard, error)
}

// HazardProfileRepository stores per-location hazard base levels
type HazardProfileRepository interface {
	// Put creates or replaces a profile for (location, hazard)
	Put(ctx context.Context, profile *model.HazardProfile) error

	// Get retrieves the profile for (location, hazard)
	Get(ctx context.Context, locationID types.LocationID, hazardID types.HazardID) (*model.HazardProfile, error)

	// ListByLocation retrieves all hazard profiles for a location
	ListByLocation(ctx context.Context, locationID types.LocationID) ([]*model.HazardProfile, error)
}

// BusinessTypeRepository stores the business type catalog
type BusinessTypeRepository interface {
	// Put creates or replaces a business type record
	Put(ctx context.Context, businessType *model.BusinessType) error

	// Get retrieves a business type by ID
	Get(ctx context.Context, id types.BusinessTypeID) (*model.BusinessType, error)

	// List retrieves all business types
	List(ctx context.Context) ([]*model.BusinessType, error)
}

// VulnerabilityRepository stores per-business-type hazard vulnerability profiles
type VulnerabilityRepository interface {
	// Put creates or replaces a profile for (businessType, hazard)
	Put(ctx context.Context, profile *model.VulnerabilityProfile) error

	// Get retrieves the profile for (businessType, hazard)
	Get(ctx context.Context, businessTypeID types.BusinessTypeID, hazardID types.HazardID) (*model.VulnerabilityProfile, error)

	// ListByHazard retrieves all profiles for a hazard across business types
	ListByHazard(ctx context.Context, hazardID types.HazardID) ([]*model.VulnerabilityProfile, error)
}

// MultiplierRuleRepository stores multiplier rule definitions, keyed by rule name
type MultiplierRuleRepository interface {
	// Put creates or replaces a rule. The rule must already be validated.
	Put(ctx context.Context, rule *model.MultiplierRule) error

	// ListByHazard retrieves active rules applicable to a hazard,
	// ordered ascending by priority
	ListByHazard(ctx context.Context, hazardID types.HazardID) ([]*model.MultiplierRule, error)

	// List retrieves all rules
	List(ctx context.Context) ([]*model.MultiplierRule, error)
}

// StrategyRepository stores mitigation strategies and their action steps
type StrategyRepository interface {
	// Put creates or replaces a strategy
	Put(ctx context.Context, strategy *model.Strategy) error

	// Get retrieves a strategy by ID
	Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error)

	// ListActive retrieves all active strategies
	ListActive(ctx context.Context) ([]*model.Strategy, error)
}

// AssessmentRepository stores computed risk assessments per session
type AssessmentRepository interface {
	// Put creates or replaces the assessment for (session, hazard)
	Put(ctx context.Context, assessment *model.RiskAssessment) error

	// Get retrieves the assessment for (session, hazard)
	Get(ctx context.Context, sessionID types.SessionID, hazardID types.HazardID) (*model.RiskAssessment, error)

	// ListBySession retrieves all assessments of a session
	ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.RiskAssessment, error)
}
