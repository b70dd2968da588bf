package repositories

import "github.com/vsinha/patisserie/pkg/domain/entities"

// IngredientRepository provides access to the ingredient catalog
type IngredientRepository interface {
	GetIngredient(name string) (*entities.Ingredient, error)
	GetAllIngredients() ([]*entities.Ingredient, error)
	LoadIngredients(ingredients []*entities.Ingredient) error
	SaveIngredient(ingredient *entities.Ingredient) error
}
