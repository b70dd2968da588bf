package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

// File names expected inside a catalog directory
const (
	IngredientsFile = "ingredients.csv"
	RecipesFile     = "recipes.csv"
	RecipeLinesFile = "recipe_lines.csv"
)

// Catalog is everything loaded from a catalog directory
type Catalog struct {
	Ingredients []*entities.Ingredient
	Recipes     []*entities.Recipe
}

// column is a required or optional CSV column with the header names older
// exports used for it
type column struct {
	name     string
	aliases  []string
	optional bool
}

var (
	ingredientColumns = []column{
		{name: "name", aliases: []string{"nome", "ingredient"}},
		{name: "unit", aliases: []string{"unidade", "measurement_unit"}},
		{name: "price", aliases: []string{"price_per_unit", "unit_price", "preco"}},
		{name: "price_basis", aliases: []string{"basis", "per"}, optional: true},
	}
	recipeColumns = []column{
		{name: "name", aliases: []string{"nome", "recipe"}},
		{name: "prep_minutes", aliases: []string{"prep_time", "preparation_time", "tempo_preparo"}},
		{name: "complexity", aliases: []string{"complexidade", "difficulty"}},
		{name: "yield", aliases: []string{"rendimento", "servings"}},
	}
	recipeLineColumns = []column{
		{name: "recipe", aliases: []string{"recipe_name", "receita"}},
		{name: "ingredient", aliases: []string{"ingredient_name", "ingrediente"}},
		{name: "quantity", aliases: []string{"qty", "amount", "quantidade"}},
	}
)

// Loader handles loading catalog data from CSV files. Header aliases and
// package price bases are resolved here, so the rest of the code only sees
// canonical entities with per-unit prices.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadCatalog loads ingredients.csv, recipes.csv and recipe_lines.csv from dir
func (l *Loader) LoadCatalog(dir string) (*Catalog, error) {
	ingredients, err := l.LoadIngredients(filepath.Join(dir, IngredientsFile))
	if err != nil {
		return nil, err
	}

	recipes, err := l.LoadRecipes(
		filepath.Join(dir, RecipesFile),
		filepath.Join(dir, RecipeLinesFile),
		ingredients,
	)
	if err != nil {
		return nil, err
	}

	return &Catalog{Ingredients: ingredients, Recipes: recipes}, nil
}

// LoadIngredients loads ingredients from a CSV file
func (l *Loader) LoadIngredients(filename string) ([]*entities.Ingredient, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open ingredients file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadIngredients(file)
}

// ReadIngredients reads ingredients in CSV form from r
func (l *Loader) ReadIngredients(r io.Reader) ([]*entities.Ingredient, error) {
	records, err := readRecords(r, "ingredients")
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("ingredients CSV must have header and at least one data row")
	}

	columns, err := resolveColumns("ingredients", records[0], ingredientColumns)
	if err != nil {
		return nil, err
	}

	var ingredients []*entities.Ingredient
	for i, record := range records[1:] {
		ingredient, err := parseIngredient(record, columns)
		if err != nil {
			return nil, fmt.Errorf("ingredients CSV row %d: %w", i+2, err)
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// LoadRecipes loads recipes and their ingredient lines. Every line must name
// a recipe from recipesFile and an ingredient from ingredients.
func (l *Loader) LoadRecipes(recipesFile, linesFile string, ingredients []*entities.Ingredient) ([]*entities.Recipe, error) {
	recipesReader, err := os.Open(recipesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipes file %s: %w", recipesFile, err)
	}
	defer recipesReader.Close()

	linesReader, err := os.Open(linesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe lines file %s: %w", linesFile, err)
	}
	defer linesReader.Close()

	return l.ReadRecipes(recipesReader, linesReader, ingredients)
}

// ReadRecipes reads recipes and recipe lines in CSV form
func (l *Loader) ReadRecipes(recipesCSV, linesCSV io.Reader, ingredients []*entities.Ingredient) ([]*entities.Recipe, error) {
	records, err := readRecords(recipesCSV, "recipes")
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("recipes CSV must have header and at least one data row")
	}

	columns, err := resolveColumns("recipes", records[0], recipeColumns)
	if err != nil {
		return nil, err
	}

	var recipes []*entities.Recipe
	recipesByName := make(map[string]*entities.Recipe, len(records)-1)
	for i, record := range records[1:] {
		recipe, err := parseRecipe(record, columns)
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: %w", i+2, err)
		}
		key := lookupKey(recipe.Name)
		if _, exists := recipesByName[key]; exists {
			return nil, fmt.Errorf("recipes CSV row %d: duplicate recipe %s", i+2, recipe.Name)
		}
		recipesByName[key] = recipe
		recipes = append(recipes, recipe)
	}

	ingredientsByName := make(map[string]*entities.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		ingredientsByName[lookupKey(ingredient.Name)] = ingredient
	}

	if err := readRecipeLines(linesCSV, recipesByName, ingredientsByName); err != nil {
		return nil, err
	}

	return recipes, nil
}

func readRecipeLines(
	r io.Reader,
	recipesByName map[string]*entities.Recipe,
	ingredientsByName map[string]*entities.Ingredient,
) error {
	records, err := readRecords(r, "recipe lines")
	if err != nil {
		return err
	}
	if len(records) < 1 {
		return fmt.Errorf("recipe lines CSV must have a header")
	}

	columns, err := resolveColumns("recipe lines", records[0], recipeLineColumns)
	if err != nil {
		return err
	}

	for i, record := range records[1:] {
		recipeName := field(record, columns, "recipe")
		recipe, ok := recipesByName[lookupKey(recipeName)]
		if !ok {
			return fmt.Errorf("recipe lines CSV row %d: unknown recipe %s", i+2, recipeName)
		}

		ingredientName := field(record, columns, "ingredient")
		ingredient, ok := ingredientsByName[lookupKey(ingredientName)]
		if !ok {
			return fmt.Errorf("recipe lines CSV row %d: unknown ingredient %s", i+2, ingredientName)
		}

		quantity, err := parseDecimal(field(record, columns, "quantity"), "quantity")
		if err != nil {
			return fmt.Errorf("recipe lines CSV row %d: %w", i+2, err)
		}

		recipe.AddLine(*ingredient, quantity)
	}

	return nil
}

// Helper functions for parsing CSV records

func readRecords(r io.Reader, what string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	// trailing optional columns may be left off
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", what, err)
	}
	return records, nil
}

// resolveColumns maps canonical column names to their index in header
func resolveColumns(what string, header []string, columns []column) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[lookupKey(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	resolved := make(map[string]int, len(columns))
	for _, col := range columns {
		index, ok := positions[col.name]
		for _, alias := range col.aliases {
			if ok {
				break
			}
			index, ok = positions[alias]
		}

		if !ok {
			if col.optional {
				continue
			}
			accepted := append([]string{col.name}, col.aliases...)
			return nil, fmt.Errorf("%s CSV header missing column %s (accepted: %s)",
				what, col.name, strings.Join(accepted, ", "))
		}
		resolved[col.name] = index
	}

	return resolved, nil
}

func field(record []string, columns map[string]int, name string) string {
	index, ok := columns[name]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func parseIngredient(record []string, columns map[string]int) (*entities.Ingredient, error) {
	unit, err := entities.ParseMeasurementUnit(field(record, columns, "unit"))
	if err != nil {
		return nil, err
	}

	price, err := parseDecimal(field(record, columns, "price"), "price")
	if err != nil {
		return nil, err
	}

	unitPrice, err := normalizePrice(price, unit, field(record, columns, "price_basis"))
	if err != nil {
		return nil, err
	}

	return entities.NewIngredient(field(record, columns, "name"), unit, unitPrice)
}

func parseRecipe(record []string, columns map[string]int) (*entities.Recipe, error) {
	prepMinutes, err := parseDecimal(field(record, columns, "prep_minutes"), "prep_minutes")
	if err != nil {
		return nil, err
	}

	complexity, err := entities.ParseComplexity(field(record, columns, "complexity"))
	if err != nil {
		return nil, err
	}

	yield, err := parseDecimal(field(record, columns, "yield"), "yield")
	if err != nil {
		return nil, err
	}

	return entities.NewRecipe(field(record, columns, "name"), prepMinutes, complexity, yield, nil)
}

func parseDecimal(s, name string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", name, s)
	}
	return value, nil
}

var (
	thousand = decimal.NewFromInt(1000)
	dozen    = decimal.NewFromInt(12)
)

// normalizePrice converts a package price (per kilogram, per liter, per
// dozen) into the price of one measurement unit. An empty basis means the
// price is already per unit.
func normalizePrice(price decimal.Decimal, unit entities.MeasurementUnit, basis string) (decimal.Decimal, error) {
	basis = lookupKey(basis)

	switch {
	case basis == "" || basis == lookupKey(unit.String()):
		return price, nil
	case unit == entities.Gram && basis == "kg":
		return price.Div(thousand), nil
	case unit == entities.Milliliter && (basis == "l" || basis == "liter"):
		return price.Div(thousand), nil
	case unit == entities.Unit && (basis == "dozen" || basis == "duzia"):
		return price.Div(dozen), nil
	default:
		return decimal.Zero, fmt.Errorf("price basis %s does not match unit %s", basis, unit)
	}
}

func lookupKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
