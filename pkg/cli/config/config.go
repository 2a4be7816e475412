package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// AppConfig is the TOML reference data set consumed by validate, migrate and
// assess. Every record is validated at load time so the engine never sees a
// malformed rule.
type AppConfig struct {
	Hazards       []Hazard       `toml:"hazard"`
	Locations     []Location     `toml:"location"`
	BusinessTypes []BusinessType `toml:"business_type"`
	Multipliers   []Multiplier   `toml:"multiplier"`
	Strategies    []Strategy     `toml:"strategy"`
}

// Hazard represents a hazard catalog entry
type Hazard struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

func (h *Hazard) toModel() *model.Hazard {
	return &model.Hazard{
		ID:          types.HazardID(h.ID),
		Name:        h.Name,
		Description: h.Description,
	}
}

// Location represents a location with its per-hazard risk profiles
type Location struct {
	ID       string           `toml:"id"`
	Name     string           `toml:"name"`
	Profiles []LocationHazard `toml:"profile"`
}

// LocationHazard represents one hazard's base level for a location
type LocationHazard struct {
	HazardID  string `toml:"hazard_id"`
	Level     int    `toml:"level"`
	Rationale string `toml:"rationale"`
}

// BusinessType represents an SME category with its vulnerability profiles
type BusinessType struct {
	ID              string          `toml:"id"`
	Name            string          `toml:"name"`
	Category        string          `toml:"category"`
	Vulnerabilities []Vulnerability `toml:"vulnerability"`
}

// Vulnerability represents one hazard's vulnerability profile for a business type
type Vulnerability struct {
	HazardID       string `toml:"hazard_id"`
	Vulnerability  int    `toml:"vulnerability"`
	ImpactSeverity int    `toml:"impact_severity"`
	Rationale      string `toml:"rationale"`
}

// Multiplier represents a conditional risk amplification rule
type Multiplier struct {
	Name           string   `toml:"name"`
	Characteristic string   `toml:"characteristic"`
	ConditionType  string   `toml:"condition"`
	Threshold      float64  `toml:"threshold"`
	Min            float64  `toml:"min"`
	Max            float64  `toml:"max"`
	Factor         float64  `toml:"factor"`
	Hazards        []string `toml:"hazards"`
	Priority       int      `toml:"priority"`
	Disabled       bool     `toml:"disabled"`
	Reasoning      string   `toml:"reasoning"`
}

func (m *Multiplier) toModel() (*model.MultiplierRule, error) {
	conditionType, err := types.ParseConditionType(m.ConditionType)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid condition type",
			goerr.V("rule", m.Name), goerr.V("condition", m.ConditionType))
	}

	var condition model.Condition
	switch conditionType {
	case types.ConditionBoolean:
		condition = model.BooleanCondition()
	case types.ConditionThreshold:
		condition = model.ThresholdCondition(m.Threshold)
	case types.ConditionRange:
		condition = model.RangeCondition(m.Min, m.Max)
	}

	hazards := make([]types.HazardID, len(m.Hazards))
	for i, h := range m.Hazards {
		hazards[i] = types.HazardID(h)
	}

	return &model.MultiplierRule{
		Name:              m.Name,
		CharacteristicKey: types.CharacteristicKey(m.Characteristic),
		Condition:         condition,
		Factor:            m.Factor,
		ApplicableHazards: hazards,
		Priority:          m.Priority,
		Active:            !m.Disabled,
		Reasoning:         m.Reasoning,
	}, nil
}

// Strategy represents a mitigation strategy with its action steps
type Strategy struct {
	ID            string   `toml:"id"`
	Name          string   `toml:"name"`
	Summary       string   `toml:"summary"`
	Category      string   `toml:"category"`
	Hazards       []string `toml:"hazards"`
	BusinessTypes []string `toml:"business_types"`
	Effectiveness int      `toml:"effectiveness"`
	Cost          string   `toml:"cost"`
	Selection     string   `toml:"selection"`
	Disabled      bool     `toml:"disabled"`
	Steps         []Step   `toml:"step"`
}

// Step represents one action step of a strategy
type Step struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Phase       string `toml:"phase"`
	Timing      string `toml:"timing"`
	SortOrder   int    `toml:"sort_order"`
}

func (s *Strategy) toModel() *model.Strategy {
	hazards := make([]types.HazardID, len(s.Hazards))
	for i, h := range s.Hazards {
		hazards[i] = types.HazardID(h)
	}
	businessTypes := make([]types.BusinessTypeID, len(s.BusinessTypes))
	for i, bt := range s.BusinessTypes {
		businessTypes[i] = types.BusinessTypeID(bt)
	}
	steps := make([]model.ActionStep, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = model.ActionStep{
			Title:       step.Title,
			Description: step.Description,
			Phase:       types.StepPhase(step.Phase),
			Timing:      types.ExecutionTiming(step.Timing),
			SortOrder:   step.SortOrder,
		}
	}

	return &model.Strategy{
		ID:                      types.StrategyID(s.ID),
		Name:                    s.Name,
		Summary:                 s.Summary,
		Category:                types.StrategyCategory(s.Category),
		ApplicableHazards:       hazards,
		ApplicableBusinessTypes: businessTypes,
		Effectiveness:           s.Effectiveness,
		Cost:                    types.CostTier(s.Cost),
		Selection:               types.SelectionTier(s.Selection),
		Active:                  !s.Disabled,
		Steps:                   steps,
	}
}

// ReferenceData is the validated, domain-typed form of an AppConfig
type ReferenceData struct {
	Hazards         []*model.Hazard
	Locations       []*model.Location
	HazardProfiles  []*model.HazardProfile
	BusinessTypes   []*model.BusinessType
	Vulnerabilities []*model.VulnerabilityProfile
	Multipliers     []*model.MultiplierRule
	Strategies      []*model.Strategy
}

// Validate checks every record and cross-references hazard IDs. Duplicate
// IDs and rules the engine would reject at runtime fail here instead.
func (a *AppConfig) Validate() (*ReferenceData, error) {
	data := &ReferenceData{}

	hazardIDs := make(map[string]bool)
	for _, h := range a.Hazards {
		m := h.toModel()
		if err := m.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid hazard")
		}
		if hazardIDs[h.ID] {
			return nil, goerr.Wrap(ErrDuplicateID, "duplicate hazard ID", goerr.V("id", h.ID))
		}
		hazardIDs[h.ID] = true
		data.Hazards = append(data.Hazards, m)
	}

	locationIDs := make(map[string]bool)
	for _, loc := range a.Locations {
		location := &model.Location{ID: types.LocationID(loc.ID), Name: loc.Name}
		if err := location.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid location")
		}
		if locationIDs[loc.ID] {
			return nil, goerr.Wrap(ErrDuplicateID, "duplicate location ID", goerr.V("id", loc.ID))
		}
		locationIDs[loc.ID] = true
		data.Locations = append(data.Locations, location)

		for _, p := range loc.Profiles {
			if !hazardIDs[p.HazardID] {
				return nil, goerr.Wrap(ErrInvalidConfig, "location profile references unknown hazard",
					goerr.V("location", loc.ID), goerr.V("hazard", p.HazardID))
			}
			profile := &model.HazardProfile{
				LocationID: types.LocationID(loc.ID),
				HazardID:   types.HazardID(p.HazardID),
				Level:      p.Level,
				Rationale:  p.Rationale,
			}
			if err := profile.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid location profile", goerr.V("location", loc.ID))
			}
			data.HazardProfiles = append(data.HazardProfiles, profile)
		}
	}

	businessTypeIDs := make(map[string]bool)
	for _, bt := range a.BusinessTypes {
		businessType := &model.BusinessType{
			ID:       types.BusinessTypeID(bt.ID),
			Name:     bt.Name,
			Category: bt.Category,
		}
		if err := businessType.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid business type")
		}
		if businessTypeIDs[bt.ID] {
			return nil, goerr.Wrap(ErrDuplicateID, "duplicate business type ID", goerr.V("id", bt.ID))
		}
		businessTypeIDs[bt.ID] = true
		data.BusinessTypes = append(data.BusinessTypes, businessType)

		for _, v := range bt.Vulnerabilities {
			if !hazardIDs[v.HazardID] {
				return nil, goerr.Wrap(ErrInvalidConfig, "vulnerability references unknown hazard",
					goerr.V("business_type", bt.ID), goerr.V("hazard", v.HazardID))
			}
			profile := &model.VulnerabilityProfile{
				BusinessTypeID: types.BusinessTypeID(bt.ID),
				HazardID:       types.HazardID(v.HazardID),
				Vulnerability:  v.Vulnerability,
				ImpactSeverity: v.ImpactSeverity,
				Rationale:      v.Rationale,
			}
			if err := profile.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid vulnerability profile", goerr.V("business_type", bt.ID))
			}
			data.Vulnerabilities = append(data.Vulnerabilities, profile)
		}
	}

	ruleNames := make(map[string]bool)
	for _, m := range a.Multipliers {
		rule, err := m.toModel()
		if err != nil {
			return nil, err
		}
		if err := rule.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid multiplier rule")
		}
		if ruleNames[rule.Name] {
			return nil, goerr.Wrap(ErrDuplicateID, "duplicate multiplier rule name", goerr.V("name", rule.Name))
		}
		ruleNames[rule.Name] = true
		for _, h := range rule.ApplicableHazards {
			if !hazardIDs[string(h)] {
				return nil, goerr.Wrap(ErrInvalidConfig, "multiplier references unknown hazard",
					goerr.V("rule", rule.Name), goerr.V("hazard", h))
			}
		}
		data.Multipliers = append(data.Multipliers, rule)
	}

	strategyIDs := make(map[string]bool)
	for _, s := range a.Strategies {
		st := s.toModel()
		if err := st.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid strategy")
		}
		if strategyIDs[s.ID] {
			return nil, goerr.Wrap(ErrDuplicateID, "duplicate strategy ID", goerr.V("id", s.ID))
		}
		strategyIDs[s.ID] = true
		for _, h := range st.ApplicableHazards {
			if !hazardIDs[string(h)] {
				return nil, goerr.Wrap(ErrInvalidConfig, "strategy references unknown hazard",
					goerr.V("strategy", s.ID), goerr.V("hazard", h))
			}
		}
		data.Strategies = append(data.Strategies, st)
	}

	return data, nil
}

// LoadAppConfiguration loads and validates the reference data TOML file
func LoadAppConfiguration(path string) (*AppConfig, *ReferenceData, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, goerr.Wrap(ErrConfigNotFound, "reading reference data", goerr.V("path", path))
		}
		return nil, nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var cfg AppConfig
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	data, err := cfg.Validate()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &cfg, data, nil
}
