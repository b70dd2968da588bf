package costing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

var (
	one            = decimal.NewFromInt(1)
	hundred        = decimal.NewFromInt(100)
	minutesPerHour = decimal.NewFromInt(60)
)

// Engine prices recipes using an immutable copy of a Config
type Engine struct {
	config Config
}

// NewEngine creates a costing engine. If config is nil, DefaultConfig is used.
// The config is copied, so later changes by the caller do not affect the engine.
func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{config: config.clone()}
}

// Config returns a copy of the engine's pricing tables
func (e *Engine) Config() Config {
	return e.config.clone()
}

// PriceRequest holds the inputs of a single pricing run
type PriceRequest struct {
	Recipe          *entities.Recipe
	HourlyLaborRate decimal.Decimal
	MarginFraction  decimal.Decimal
	// ProductionMultiplier is the number of batches. Zero or negative means 1.
	ProductionMultiplier decimal.Decimal
	IncludeTransport     bool
}

// ComputeRecipePrice prices a recipe. It never fails: degenerate input such as
// an empty recipe, a zero labor rate or a negative margin produces a
// degenerate breakdown that ValidateBreakdown can flag.
func (e *Engine) ComputeRecipePrice(req PriceRequest) entities.CostBreakdown {
	multiplier := req.ProductionMultiplier
	if !multiplier.IsPositive() {
		multiplier = one
	}

	breakdown := entities.CostBreakdown{
		MarginFraction:       req.MarginFraction,
		ProductionMultiplier: multiplier,
		IncludesTransport:    req.IncludeTransport,
		Lines:                []entities.LineCost{},
	}

	recipe := req.Recipe
	if recipe == nil {
		breakdown.Complexity = entities.Medium
		return breakdown
	}
	breakdown.Complexity = recipe.Complexity

	// Step 1: ingredients, in input order
	ingredientCost := decimal.Zero
	for _, line := range recipe.Lines {
		if !line.Quantity.IsPositive() {
			continue
		}
		quantity := line.Quantity.Mul(multiplier)
		cost := quantity.Mul(line.Ingredient.UnitPrice)
		ingredientCost = ingredientCost.Add(cost)

		breakdown.Lines = append(breakdown.Lines, entities.LineCost{
			IngredientName: line.Ingredient.Name,
			Quantity:       quantity,
			Cost:           cost,
		})
	}

	// Step 2: labor
	// divide last so exact minute rates do not pick up a repeating sixtieth
	laborCost := recipe.PrepMinutes.
		Mul(multiplier).
		Mul(req.HourlyLaborRate).
		Mul(e.laborMultiplier(recipe.Complexity)).
		Div(minutesPerHour)

	// Step 3: overhead on direct cost
	baseCost := ingredientCost.Add(laborCost)
	overheadCost := baseCost.Mul(e.config.Overhead.Rate(req.IncludeTransport))

	// Steps 4 and 5: total, margin, rounding
	totalCost := baseCost.Add(overheadCost)
	rawPrice := totalCost.Mul(one.Add(req.MarginFraction))

	breakdown.IngredientCost = ingredientCost
	breakdown.LaborCost = laborCost
	breakdown.OverheadCost = overheadCost
	breakdown.TotalCost = totalCost
	breakdown.RawPrice = rawPrice
	breakdown.FinalPrice = e.RoundUp(rawPrice)

	return breakdown
}

// RoundUp rounds amount up to the next multiple of the rounding increment.
// Prices are never rounded down.
func (e *Engine) RoundUp(amount decimal.Decimal) decimal.Decimal {
	increment := e.config.RoundingIncrement
	if !increment.IsPositive() {
		return amount
	}
	return amount.Div(increment).Ceil().Mul(increment)
}

// LaborMultiplier returns the labor multiplier for a complexity class
func (e *Engine) LaborMultiplier(complexity entities.Complexity) decimal.Decimal {
	return e.laborMultiplier(complexity)
}

func (e *Engine) laborMultiplier(complexity entities.Complexity) decimal.Decimal {
	if multiplier, ok := e.config.ComplexityMultipliers[complexity]; ok {
		return multiplier
	}
	return e.config.FallbackMultiplier
}
