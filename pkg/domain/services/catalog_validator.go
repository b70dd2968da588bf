package services

import (
	"fmt"
	"strings"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

// CatalogValidator checks recipes and ingredients for consistency before
// they are priced
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	DuplicateIngredients []string
	UncostableRecipes    []string
	UnknownIngredients   []string
	Errors               []string
	Warnings             []string
}

// IsValid reports whether no errors were found
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateCatalog checks that ingredient names are unique, that every recipe
// line references a catalog ingredient, and that every recipe has at least
// one line that produces cost. Uncostable recipes are warnings: pricing them
// yields a zero breakdown rather than a failure.
func (v *CatalogValidator) ValidateCatalog(recipes []*entities.Recipe, ingredients []*entities.Ingredient) *ValidationResult {
	result := &ValidationResult{
		DuplicateIngredients: make([]string, 0),
		UncostableRecipes:    make([]string, 0),
		UnknownIngredients:   make([]string, 0),
		Errors:               make([]string, 0),
		Warnings:             make([]string, 0),
	}

	known := make(map[string]bool, len(ingredients))
	for _, ingredient := range ingredients {
		key := normalizeName(ingredient.Name)
		if known[key] {
			result.DuplicateIngredients = append(result.DuplicateIngredients, ingredient.Name)
			continue
		}
		known[key] = true
	}

	if len(result.DuplicateIngredients) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Duplicate ingredient names found: %v", result.DuplicateIngredients))
	}

	for _, recipe := range recipes {
		for _, line := range recipe.Lines {
			if !known[normalizeName(line.Ingredient.Name)] {
				result.UnknownIngredients = append(result.UnknownIngredients, line.Ingredient.Name)
				result.Errors = append(result.Errors,
					fmt.Sprintf("Recipe %s references unknown ingredient %s", recipe.Name, line.Ingredient.Name))
			}
		}

		if !recipe.HasCostableLine() {
			result.UncostableRecipes = append(result.UncostableRecipes, recipe.Name)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Recipe %s has no line with positive quantity and price", recipe.Name))
		}
	}

	return result
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
