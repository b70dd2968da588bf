package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Complexity is the coarse difficulty class of a recipe
type Complexity int

const (
	Simple Complexity = iota
	Medium
	Complex
)

// String method for Complexity enum
func (c Complexity) String() string {
	switch c {
	case Simple:
		return "simple"
	case Medium:
		return "medium"
	case Complex:
		return "complex"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the defined classes
func (c Complexity) IsValid() bool {
	switch c {
	case Simple, Medium, Complex:
		return true
	}
	return false
}

// MarshalText renders the class by name in JSON and CSV output
func (c Complexity) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseComplexity parses a complexity class. Portuguese spellings used by
// older catalog exports are accepted as well.
func ParseComplexity(s string) (Complexity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "simples":
		return Simple, nil
	case "medium", "medio", "médio":
		return Medium, nil
	case "complex", "complexo":
		return Complex, nil
	default:
		return Medium, fmt.Errorf("invalid complexity: %s (expected simple, medium or complex)", s)
	}
}

// RecipeIngredientLine is the amount of one ingredient needed for a single
// batch at the recipe's base yield. Lines with a non-positive quantity are
// kept on the recipe but contribute no cost.
type RecipeIngredientLine struct {
	Ingredient Ingredient      `json:"ingredient"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// Recipe is a named production unit
type Recipe struct {
	Name        string                 `json:"name"`
	PrepMinutes decimal.Decimal        `json:"prep_minutes"`
	Complexity  Complexity             `json:"complexity"`
	Yield       decimal.Decimal        `json:"yield"`
	Lines       []RecipeIngredientLine `json:"lines"`
}

// NewRecipe creates a validated Recipe
func NewRecipe(
	name string,
	prepMinutes decimal.Decimal,
	complexity Complexity,
	yield decimal.Decimal,
	lines []RecipeIngredientLine,
) (*Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("recipe name cannot be empty")
	}
	if !prepMinutes.IsPositive() {
		return nil, fmt.Errorf("preparation time must be positive, got %s", prepMinutes)
	}
	if !complexity.IsValid() {
		return nil, fmt.Errorf("invalid complexity: %d", complexity)
	}
	if !yield.IsPositive() {
		return nil, fmt.Errorf("yield must be positive, got %s", yield)
	}
	for i, line := range lines {
		if strings.TrimSpace(line.Ingredient.Name) == "" {
			return nil, fmt.Errorf("line %d: ingredient name cannot be empty", i+1)
		}
	}

	copied := make([]RecipeIngredientLine, len(lines))
	copy(copied, lines)

	return &Recipe{
		Name:        name,
		PrepMinutes: prepMinutes,
		Complexity:  complexity,
		Yield:       yield,
		Lines:       copied,
	}, nil
}

// AddLine appends an ingredient line, keeping input order
func (r *Recipe) AddLine(ingredient Ingredient, quantity decimal.Decimal) {
	r.Lines = append(r.Lines, RecipeIngredientLine{Ingredient: ingredient, Quantity: quantity})
}

// HasCostableLine reports whether at least one line has a positive quantity
// and a positive unit price
func (r *Recipe) HasCostableLine() bool {
	for _, line := range r.Lines {
		if line.Quantity.IsPositive() && line.Ingredient.UnitPrice.IsPositive() {
			return true
		}
	}
	return false
}
