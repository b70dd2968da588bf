package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, IngredientsFile, `name,unit,price,price_basis
# staples
Condensed milk,g,0.01,
Cocoa powder,g,40,kg
Butter,g,0.05,g
Sprinkles,g,0.02
`)
	writeFile(t, dir, RecipesFile, `name,prep_minutes,complexity,yield
Brigadeiro,30,simple,20
`)
	writeFile(t, dir, RecipeLinesFile, `recipe,ingredient,quantity
Brigadeiro,condensed milk,395
Brigadeiro,Cocoa powder,20
Brigadeiro,Butter,15
Brigadeiro,Sprinkles,50
`)

	loader := NewLoader()
	catalog, err := loader.LoadCatalog(dir)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if len(catalog.Ingredients) != 4 {
		t.Fatalf("Expected 4 ingredients, got %d", len(catalog.Ingredients))
	}
	if !catalog.Ingredients[1].UnitPrice.Equal(decimal.RequireFromString("0.04")) {
		t.Errorf("Expected cocoa per-gram price 0.04, got %s", catalog.Ingredients[1].UnitPrice)
	}

	if len(catalog.Recipes) != 1 {
		t.Fatalf("Expected 1 recipe, got %d", len(catalog.Recipes))
	}
	recipe := catalog.Recipes[0]
	if recipe.Complexity != entities.Simple {
		t.Errorf("Expected simple complexity, got %s", recipe.Complexity)
	}
	if len(recipe.Lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(recipe.Lines))
	}
	if recipe.Lines[0].Ingredient.Name != "Condensed milk" {
		t.Errorf("Expected line to carry catalog ingredient name, got %s", recipe.Lines[0].Ingredient.Name)
	}
	if !recipe.Lines[2].Quantity.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected butter quantity 15, got %s", recipe.Lines[2].Quantity)
	}
}

func TestLoader_HeaderAliases(t *testing.T) {
	loader := NewLoader()

	ingredients, err := loader.ReadIngredients(strings.NewReader(
		"nome,unidade,unit_price\nLeite,ml,0.006\n"))
	if err != nil {
		t.Fatalf("Failed to read aliased ingredients: %v", err)
	}

	recipes, err := loader.ReadRecipes(
		strings.NewReader("recipe,preparation_time,difficulty,servings\nPudim,90,medio,8\n"),
		strings.NewReader("recipe_name,ingredient_name,qty\nPudim,leite,500\n"),
		ingredients,
	)
	if err != nil {
		t.Fatalf("Failed to read aliased recipes: %v", err)
	}

	if recipes[0].Complexity != entities.Medium {
		t.Errorf("Expected medium complexity, got %s", recipes[0].Complexity)
	}
	if !recipes[0].Yield.Equal(decimal.NewFromInt(8)) {
		t.Errorf("Expected yield 8, got %s", recipes[0].Yield)
	}
	if ingredients[0].Unit != entities.Milliliter {
		t.Errorf("Expected ml unit, got %s", ingredients[0].Unit)
	}
}

func TestLoader_ShortRowsAndByteOrderMark(t *testing.T) {
	loader := NewLoader()

	// spreadsheet exports prefix the header with a BOM and drop empty trailing cells
	ingredients, err := loader.ReadIngredients(strings.NewReader(
		"\ufeffname,unit,price,price_basis\nSugar,g,0.0045\nButter,g,50,kg\n"))
	if err != nil {
		t.Fatalf("Failed to read ingredients: %v", err)
	}

	if len(ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d", len(ingredients))
	}
	if ingredients[0].Name != "Sugar" || !ingredients[0].UnitPrice.Equal(decimal.RequireFromString("0.0045")) {
		t.Errorf("Expected Sugar at 0.0045, got %s at %s", ingredients[0].Name, ingredients[0].UnitPrice)
	}
	if !ingredients[1].UnitPrice.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("Expected Butter normalized to 0.05, got %s", ingredients[1].UnitPrice)
	}
}

func TestNormalizePrice(t *testing.T) {
	testCases := []struct {
		name    string
		price   string
		unit    entities.MeasurementUnit
		basis   string
		want    string
		wantErr bool
	}{
		{name: "empty basis", price: "0.01", unit: entities.Gram, basis: "", want: "0.01"},
		{name: "per kilogram", price: "12", unit: entities.Gram, basis: "kg", want: "0.012"},
		{name: "per liter", price: "6", unit: entities.Milliliter, basis: "L", want: "0.006"},
		{name: "per dozen", price: "9", unit: entities.Unit, basis: "dozen", want: "0.75"},
		{name: "same unit", price: "2", unit: entities.Unit, basis: "unit", want: "2"},
		{name: "mismatched basis", price: "12", unit: entities.Unit, basis: "kg", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizePrice(decimal.RequireFromString(tc.price), tc.unit, tc.basis)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for basis %s on unit %s", tc.basis, tc.unit)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader()
	sugar := []*entities.Ingredient{{Name: "Sugar", Unit: entities.Gram, UnitPrice: decimal.RequireFromString("0.004")}}

	testCases := []struct {
		name    string
		load    func() error
		wantErr string
	}{
		{
			name: "missing column",
			load: func() error {
				_, err := loader.ReadIngredients(strings.NewReader("name,unit\nSugar,g\n"))
				return err
			},
			wantErr: "missing column price",
		},
		{
			name: "header only",
			load: func() error {
				_, err := loader.ReadIngredients(strings.NewReader("name,unit,price\n"))
				return err
			},
			wantErr: "at least one data row",
		},
		{
			name: "negative price",
			load: func() error {
				_, err := loader.ReadIngredients(strings.NewReader("name,unit,price\nSugar,g,-1\n"))
				return err
			},
			wantErr: "row 2: unit price cannot be negative",
		},
		{
			name: "bad unit",
			load: func() error {
				_, err := loader.ReadIngredients(strings.NewReader("name,unit,price\nSugar,cup,1\n"))
				return err
			},
			wantErr: "invalid measurement unit",
		},
		{
			name: "zero yield",
			load: func() error {
				_, err := loader.ReadRecipes(
					strings.NewReader("name,prep_minutes,complexity,yield\nFudge,30,simple,0\n"),
					strings.NewReader("recipe,ingredient,quantity\n"),
					sugar,
				)
				return err
			},
			wantErr: "yield must be positive",
		},
		{
			name: "duplicate recipe",
			load: func() error {
				_, err := loader.ReadRecipes(
					strings.NewReader("name,prep_minutes,complexity,yield\nFudge,30,simple,1\nfudge,20,simple,1\n"),
					strings.NewReader("recipe,ingredient,quantity\n"),
					sugar,
				)
				return err
			},
			wantErr: "duplicate recipe fudge",
		},
		{
			name: "unknown ingredient",
			load: func() error {
				_, err := loader.ReadRecipes(
					strings.NewReader("name,prep_minutes,complexity,yield\nFudge,30,simple,1\n"),
					strings.NewReader("recipe,ingredient,quantity\nFudge,Salt,1\n"),
					sugar,
				)
				return err
			},
			wantErr: "unknown ingredient Salt",
		},
		{
			name: "unknown recipe",
			load: func() error {
				_, err := loader.ReadRecipes(
					strings.NewReader("name,prep_minutes,complexity,yield\nFudge,30,simple,1\n"),
					strings.NewReader("recipe,ingredient,quantity\nToffee,Sugar,1\n"),
					sugar,
				)
				return err
			},
			wantErr: "unknown recipe Toffee",
		},
		{
			name: "missing file",
			load: func() error {
				_, err := loader.LoadCatalog(t.TempDir())
				return err
			},
			wantErr: "failed to open ingredients file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.load()
			if err == nil {
				t.Fatalf("Expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
