package types

import "fmt"

// StepPhase represents the planning horizon of an action step
type StepPhase string

const (
	PhaseImmediate  StepPhase = "immediate"
	PhaseShortTerm  StepPhase = "short_term"
	PhaseMediumTerm StepPhase = "medium_term"
	PhaseLongTerm   StepPhase = "long_term"
)

// AllStepPhases returns all valid step phases in execution order
func AllStepPhases() []StepPhase {
	return []StepPhase{
		PhaseImmediate,
		PhaseShortTerm,
		PhaseMediumTerm,
		PhaseLongTerm,
	}
}

// IsValid checks if the step phase is valid
func (p StepPhase) IsValid() bool {
	switch p {
	case PhaseImmediate,
		PhaseShortTerm,
		PhaseMediumTerm,
		PhaseLongTerm:
		return true
	default:
		return false
	}
}

// Rank returns the sort order of the phase: immediate first
func (p StepPhase) Rank() int {
	switch p {
	case PhaseImmediate:
		return 0
	case PhaseShortTerm:
		return 1
	case PhaseMediumTerm:
		return 2
	case PhaseLongTerm:
		return 3
	default:
		return 4
	}
}

// String returns the string representation of the step phase
func (p StepPhase) String() string {
	return string(p)
}

// ParseStepPhase parses a string into a StepPhase
func ParseStepPhase(s string) (StepPhase, error) {
	p := StepPhase(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid step phase: %s", s)
	}
	return p, nil
}

// ExecutionTiming represents when an action step is carried out relative
// to the crisis event
type ExecutionTiming string

const (
	TimingBeforeCrisis ExecutionTiming = "before_crisis"
	TimingDuringCrisis ExecutionTiming = "during_crisis"
	TimingAfterCrisis  ExecutionTiming = "after_crisis"
)

// AllExecutionTimings returns all valid execution timings in order
func AllExecutionTimings() []ExecutionTiming {
	return []ExecutionTiming{
		TimingBeforeCrisis,
		TimingDuringCrisis,
		TimingAfterCrisis,
	}
}

// IsValid checks if the execution timing is valid
func (t ExecutionTiming) IsValid() bool {
	switch t {
	case TimingBeforeCrisis,
		TimingDuringCrisis,
		TimingAfterCrisis:
		return true
	default:
		return false
	}
}

// Rank returns the sort order of the timing: before_crisis first
func (t ExecutionTiming) Rank() int {
	switch t {
	case TimingBeforeCrisis:
		return 0
	case TimingDuringCrisis:
		return 1
	case TimingAfterCrisis:
		return 2
	default:
		return 3
	}
}

// String returns the string representation of the execution timing
func (t ExecutionTiming) String() string {
	return string(t)
}

// ParseExecutionTiming parses a string into an ExecutionTiming
func ParseExecutionTiming(s string) (ExecutionTiming, error) {
	et := ExecutionTiming(s)
	if !et.IsValid() {
		return "", fmt.Errorf("invalid execution timing: %s", s)
	}
	return et, nil
}
