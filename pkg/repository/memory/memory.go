package memory

import (
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
)

// Memory is the in-memory repository backend used for development and tests
type Memory struct {
	hazard        *hazardRepository
	hazardProfile *hazardProfileRepository
	businessType  *businessTypeRepository
	vulnerability *vulnerabilityRepository
	rule          *multiplierRuleRepository
	strategy      *strategyRepository
	assessment    *assessmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		hazard:        newHazardRepository(),
		hazardProfile: newHazardProfileRepository(),
		businessType:  newBusinessTypeRepository(),
		vulnerability: newVulnerabilityRepository(),
		rule:          newMultiplierRuleRepository(),
		strategy:      newStrategyRepository(),
		assessment:    newAssessmentRepository(),
	}
}

func (m *Memory) Hazard() interfaces.HazardRepository {
	return m.hazard
}

func (m *Memory) HazardProfile() interfaces.HazardProfileRepository {
	return m.hazardProfile
}

func (m *Memory) BusinessType() interfaces.BusinessTypeRepository {
	return m.businessType
}

func (m *Memory) Vulnerability() interfaces.VulnerabilityRepository {
	return m.vulnerability
}

func (m *Memory) MultiplierRule() interfaces.MultiplierRuleRepository {
	return m.rule
}

func (m *Memory) Strategy() interfaces.StrategyRepository {
	return m.strategy
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Close() error {
	return nil
}
