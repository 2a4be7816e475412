package interfaces

// Repository defines the interface for reference data and assessment persistence
type Repository interface {
	Hazard() HazardRepository
	HazardProfile() HazardProfileRepository
	BusinessType() BusinessTypeRepository
	Vulnerability() VulnerabilityRepository
	MultiplierRule() MultiplierRuleRepository
	Strategy() StrategyRepository
	Assessment() AssessmentRepository

	Close() error
}
