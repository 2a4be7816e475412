package types

import "fmt"

// StrategyCategory represents the mitigation phase a strategy belongs to
type StrategyCategory string

const (
	CategoryPrevention  StrategyCategory = "prevention"
	CategoryPreparation StrategyCategory = "preparation"
	CategoryResponse    StrategyCategory = "response"
	CategoryRecovery    StrategyCategory = "recovery"
)

// AllStrategyCategories returns all valid strategy categories
func AllStrategyCategories() []StrategyCategory {
	return []StrategyCategory{
		CategoryPrevention,
		CategoryPreparation,
		CategoryResponse,
		CategoryRecovery,
	}
}

// IsValid checks if the strategy category is valid
func (c StrategyCategory) IsValid() bool {
	switch c {
	case CategoryPrevention,
		CategoryPreparation,
		CategoryResponse,
		CategoryRecovery:
		return true
	default:
		return false
	}
}

// String returns the string representation of the strategy category
func (c StrategyCategory) String() string {
	return string(c)
}

// ParseStrategyCategory parses a string into a StrategyCategory
func ParseStrategyCategory(s string) (StrategyCategory, error) {
	c := StrategyCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid strategy category: %s", s)
	}
	return c, nil
}

// CostTier represents the implementation cost band of a strategy
type CostTier string

const (
	CostLow    CostTier = "low"
	CostMedium CostTier = "medium"
	CostHigh   CostTier = "high"
)

// AllCostTiers returns all valid cost tiers
func AllCostTiers() []CostTier {
	return []CostTier{CostLow, CostMedium, CostHigh}
}

// IsValid checks if the cost tier is valid
func (c CostTier) IsValid() bool {
	switch c {
	case CostLow, CostMedium, CostHigh:
		return true
	default:
		return false
	}
}

// Rank returns the cost ordering used in relevance scoring: low=0, medium=1, high=2
func (c CostTier) Rank() int {
	switch c {
	case CostLow:
		return 0
	case CostMedium:
		return 1
	case CostHigh:
		return 2
	default:
		return 2
	}
}

// String returns the string representation of the cost tier
func (c CostTier) String() string {
	return string(c)
}

// ParseCostTier parses a string into a CostTier
func ParseCostTier(s string) (CostTier, error) {
	c := CostTier(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid cost tier: %s", s)
	}
	return c, nil
}

// SelectionTier is the administrative priority label on a strategy
type SelectionTier string

const (
	SelectionEssential   SelectionTier = "essential"
	SelectionRecommended SelectionTier = "recommended"
	SelectionOptional    SelectionTier = "optional"
)

// AllSelectionTiers returns all valid selection tiers
func AllSelectionTiers() []SelectionTier {
	return []SelectionTier{SelectionEssential, SelectionRecommended, SelectionOptional}
}

// IsValid checks if the selection tier is valid
func (s SelectionTier) IsValid() bool {
	switch s {
	case SelectionEssential, SelectionRecommended, SelectionOptional:
		return true
	default:
		return false
	}
}

// Bonus returns the relevance score bonus for the selection tier
func (s SelectionTier) Bonus() int {
	switch s {
	case SelectionEssential:
		return 3
	case SelectionRecommended:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the selection tier
func (s SelectionTier) String() string {
	return string(s)
}

// ParseSelectionTier parses a string into a SelectionTier
func ParseSelectionTier(s string) (SelectionTier, error) {
	st := SelectionTier(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid selection tier: %s", s)
	}
	return st, nil
}
