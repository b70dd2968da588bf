package repositories

import "github.com/vsinha/patisserie/pkg/domain/entities"

// RecipeRepository provides access to the recipe catalog
type RecipeRepository interface {
	GetRecipe(name string) (*entities.Recipe, error)
	GetAllRecipes() ([]*entities.Recipe, error)
	LoadRecipes(recipes []*entities.Recipe) error
	SaveRecipe(recipe *entities.Recipe) error
}
