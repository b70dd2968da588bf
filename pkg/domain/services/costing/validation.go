package costing

import (
	"fmt"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

// Validation annotates a breakdown for display. Errors make it invalid;
// warnings never do.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateBreakdown lints a computed breakdown. It only reports; the
// breakdown is neither changed nor rejected.
func (e *Engine) ValidateBreakdown(breakdown entities.CostBreakdown) Validation {
	result := Validation{
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}
	thresholds := e.config.Validation

	if !breakdown.IngredientCost.IsPositive() {
		result.Errors = append(result.Errors, "ingredient cost must be greater than zero")
	}
	if !breakdown.LaborCost.IsPositive() {
		result.Errors = append(result.Errors, "labor cost must be greater than zero")
	}
	if breakdown.MarginFraction.IsNegative() {
		result.Errors = append(result.Errors, "margin cannot be negative")
	}

	if breakdown.MarginFraction.LessThan(thresholds.LowMargin) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("margin too low (below %s%%)", thresholds.LowMargin.Mul(hundred)))
	}
	if breakdown.LaborCost.GreaterThan(breakdown.IngredientCost.Mul(thresholds.LaborRatio)) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("labor cost is disproportionate (more than %sx ingredient cost)", thresholds.LaborRatio))
	}
	if breakdown.MarginFraction.GreaterThan(thresholds.HighMargin) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("margin too high (above %s%%), may hurt competitiveness", thresholds.HighMargin.Mul(hundred)))
	}
	if !breakdown.Complexity.IsValid() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unrecognized complexity class %d, labor priced with fallback multiplier %s",
				int(breakdown.Complexity), e.config.FallbackMultiplier))
	}

	result.Valid = len(result.Errors) == 0
	return result
}
