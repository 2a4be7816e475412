package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+([_-][a-z0-9]+)*$`)

// HazardID identifies a disaster/risk category (e.g. hurricane, flood)
type HazardID string

// Validate checks if the HazardID is valid
func (h HazardID) Validate() error {
	if h == "" {
		return goerr.New("hazard ID cannot be empty")
	}
	if !idPattern.MatchString(string(h)) {
		return goerr.New("hazard ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", h))
	}
	return nil
}

// String returns the string representation of HazardID
func (h HazardID) String() string {
	return string(h)
}

// LocationID identifies an administrative unit with per-hazard base risk levels
type LocationID string

// Validate checks if the LocationID is valid
func (l LocationID) Validate() error {
	if l == "" {
		return goerr.New("location ID cannot be empty")
	}
	if !idPattern.MatchString(string(l)) {
		return goerr.New("location ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", l))
	}
	return nil
}

// String returns the string representation of LocationID
func (l LocationID) String() string {
	return string(l)
}

// BusinessTypeID identifies an SME category with per-hazard vulnerability profiles
type BusinessTypeID string

// Validate checks if the BusinessTypeID is valid
func (b BusinessTypeID) Validate() error {
	if b == "" {
		return goerr.New("business type ID cannot be empty")
	}
	if !idPattern.MatchString(string(b)) {
		return goerr.New("business type ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", b))
	}
	return nil
}

// String returns the string representation of BusinessTypeID
func (b BusinessTypeID) String() string {
	return string(b)
}

// StrategyID identifies a mitigation strategy
type StrategyID string

// Validate checks if the StrategyID is valid
func (s StrategyID) Validate() error {
	if s == "" {
		return goerr.New("strategy ID cannot be empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("strategy ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of StrategyID
func (s StrategyID) String() string {
	return string(s)
}

// CharacteristicKey identifies a user-declared business characteristic
// referenced by multiplier rule conditions (e.g. "power_dependency")
type CharacteristicKey string

// Validate checks if the CharacteristicKey is valid
func (c CharacteristicKey) Validate() error {
	if c == "" {
		return goerr.New("characteristic key cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("characteristic key must be lowercase alphanumeric with hyphens or underscores", goerr.V("key", c))
	}
	return nil
}

// String returns the string representation of CharacteristicKey
func (c CharacteristicKey) String() string {
	return string(c)
}

// SessionID identifies an assessment session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Validate checks if the SessionID is valid
func (s SessionID) Validate() error {
	if s == "" {
		return goerr.New("session ID cannot be empty")
	}
	return nil
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}
