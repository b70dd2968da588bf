package testing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/infrastructure/repositories/memory"
)

func mustCreateIngredient(name string, unit entities.MeasurementUnit, unitPrice string) *entities.Ingredient {
	ingredient, err := entities.NewIngredient(name, unit, decimal.RequireFromString(unitPrice))
	if err != nil {
		panic(err)
	}
	return ingredient
}

func mustCreateRecipe(name string, prepMinutes int64, complexity entities.Complexity, yield string) *entities.Recipe {
	recipe, err := entities.NewRecipe(
		name,
		decimal.NewFromInt(prepMinutes),
		complexity,
		decimal.RequireFromString(yield),
		nil,
	)
	if err != nil {
		panic(err)
	}
	return recipe
}

// BuildBakeryTestData builds a small catalog of Brazilian sweets with one
// recipe per complexity class. Brigadeiro matches the worked example used
// across the costing tests: at 25/h and 60% margin it prices at 29.50.
func BuildBakeryTestData() (*memory.IngredientRepository, *memory.RecipeRepository) {
	condensedMilk := mustCreateIngredient("Condensed milk", entities.Gram, "0.01")
	cocoa := mustCreateIngredient("Cocoa powder", entities.Gram, "0.04")
	butter := mustCreateIngredient("Butter", entities.Gram, "0.05")
	eggs := mustCreateIngredient("Eggs", entities.Unit, "0.90")
	sugar := mustCreateIngredient("Sugar", entities.Gram, "0.004")
	coconut := mustCreateIngredient("Grated coconut", entities.Gram, "0.03")
	milk := mustCreateIngredient("Milk", entities.Milliliter, "0.006")
	flour := mustCreateIngredient("Flour", entities.Gram, "0.005")
	ingredients := []*entities.Ingredient{condensedMilk, cocoa, butter, eggs, sugar, coconut, milk, flour}

	brigadeiro := mustCreateRecipe("Brigadeiro", 30, entities.Simple, "20")
	brigadeiro.AddLine(*condensedMilk, decimal.NewFromInt(395))

	quindim := mustCreateRecipe("Quindim", 60, entities.Medium, "12")
	quindim.AddLine(*eggs, decimal.NewFromInt(12))
	quindim.AddLine(*sugar, decimal.NewFromInt(250))
	quindim.AddLine(*coconut, decimal.NewFromInt(100))
	quindim.AddLine(*butter, decimal.NewFromInt(20))

	boloDeRolo := mustCreateRecipe("Bolo de rolo", 120, entities.Complex, "16")
	boloDeRolo.AddLine(*flour, decimal.NewFromInt(250))
	boloDeRolo.AddLine(*butter, decimal.NewFromInt(250))
	boloDeRolo.AddLine(*sugar, decimal.NewFromInt(250))
	boloDeRolo.AddLine(*eggs, decimal.NewFromInt(6))
	boloDeRolo.AddLine(*milk, decimal.NewFromInt(100))

	recipes := []*entities.Recipe{brigadeiro, quindim, boloDeRolo}

	ingredientRepo := memory.NewIngredientRepository(len(ingredients))
	if err := ingredientRepo.LoadIngredients(ingredients); err != nil {
		panic(err)
	}

	recipeRepo := memory.NewRecipeRepository(len(recipes))
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	return ingredientRepo, recipeRepo
}

// BuildSimpleTestData builds a catalog with a single recipe and no ingredient
// cost, useful for exercising validation failures.
func BuildSimpleTestData() (*memory.IngredientRepository, *memory.RecipeRepository) {
	water := mustCreateIngredient("Water", entities.Milliliter, "0")

	syrup := mustCreateRecipe("Simple syrup", 10, entities.Simple, "1")
	syrup.AddLine(*water, decimal.NewFromInt(500))

	ingredientRepo := memory.NewIngredientRepository(1)
	if err := ingredientRepo.LoadIngredients([]*entities.Ingredient{water}); err != nil {
		panic(err)
	}

	recipeRepo := memory.NewRecipeRepository(1)
	if err := recipeRepo.LoadRecipes([]*entities.Recipe{syrup}); err != nil {
		panic(err)
	}

	return ingredientRepo, recipeRepo
}

// BuildLargeTestData builds a catalog of n recipes over a shared pool of
// ingredients. Recipes cycle through the complexity classes and use between
// one and eight lines each.
func BuildLargeTestData(n int) (*memory.IngredientRepository, *memory.RecipeRepository) {
	const poolSize = 40
	ingredients := make([]*entities.Ingredient, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		unit := entities.MeasurementUnit(i % 3)
		price := decimal.NewFromInt(int64(i%9 + 1)).Div(decimal.NewFromInt(1000))
		ingredient, err := entities.NewIngredient(fmt.Sprintf("Ingredient %03d", i), unit, price)
		if err != nil {
			panic(err)
		}
		ingredients = append(ingredients, ingredient)
	}

	recipes := make([]*entities.Recipe, 0, n)
	for i := 0; i < n; i++ {
		complexity := entities.Complexity(i % 3)
		recipe := mustCreateRecipe(fmt.Sprintf("Recipe %05d", i), int64(20+(i%10)*15), complexity, fmt.Sprint(6+i%30))
		for j := 0; j <= i%8; j++ {
			recipe.AddLine(*ingredients[(i+j*7)%poolSize], decimal.NewFromInt(int64(50+j*25)))
		}
		recipes = append(recipes, recipe)
	}

	ingredientRepo := memory.NewIngredientRepository(len(ingredients))
	if err := ingredientRepo.LoadIngredients(ingredients); err != nil {
		panic(err)
	}

	recipeRepo := memory.NewRecipeRepository(len(recipes))
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	return ingredientRepo, recipeRepo
}
