package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain model validation
var (
	// ErrInvalidCharacteristic marks a characteristic value that cannot be
	// evaluated against a rule's condition type. Never fatal: the offending
	// rule is skipped and logged.
	ErrInvalidCharacteristic = goerr.New("invalid characteristic value")

	// ErrInvalidRule marks a multiplier rule that fails validation. Rejected
	// at reference-data load time, never at evaluation time.
	ErrInvalidRule = goerr.New("invalid multiplier rule")

	ErrInvalidProfile  = goerr.New("invalid profile")
	ErrInvalidStrategy = goerr.New("invalid strategy")
	ErrInvalidStep     = goerr.New("invalid action step")
	ErrInvalidRating   = goerr.New("invalid manual rating")
)
