package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/domain/repositories"
)

// RecipeRepository provides in-memory recipe storage
type RecipeRepository struct {
	mu         sync.RWMutex
	recipes    []entities.Recipe
	recipesMap map[string]int
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(expectedRecipes int) *RecipeRepository {
	return &RecipeRepository{
		recipes:    make([]entities.Recipe, 0, expectedRecipes),
		recipesMap: make(map[string]int, expectedRecipes),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository, stopping at the first
// duplicate name
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		if err := r.SaveRecipe(recipe); err != nil {
			return err
		}
	}
	return nil
}

// SaveRecipe adds a recipe to the repository
func (r *RecipeRepository) SaveRecipe(recipe *entities.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("recipe cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := catalogKey(recipe.Name)
	if _, exists := r.recipesMap[key]; exists {
		return fmt.Errorf("%w recipe name: %s", repositories.ErrDuplicate, recipe.Name)
	}

	r.recipesMap[key] = len(r.recipes)
	r.recipes = append(r.recipes, copyRecipe(recipe))
	return nil
}

// GetRecipe returns a copy of the named recipe
func (r *RecipeRepository) GetRecipe(name string) (*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.recipesMap[catalogKey(name)]
	if !exists {
		return nil, fmt.Errorf("recipe %w: %s", repositories.ErrNotFound, name)
	}
	recipe := copyRecipe(&r.recipes[index])
	return &recipe, nil
}

// GetAllRecipes returns copies of all recipes in insertion order
func (r *RecipeRepository) GetAllRecipes() ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]*entities.Recipe, 0, len(r.recipes))
	for i := range r.recipes {
		recipe := copyRecipe(&r.recipes[i])
		recipes = append(recipes, &recipe)
	}
	return recipes, nil
}

// copyRecipe detaches the line slice so stored recipes cannot be changed
// through returned values
func copyRecipe(recipe *entities.Recipe) entities.Recipe {
	out := *recipe
	out.Lines = make([]entities.RecipeIngredientLine, len(recipe.Lines))
	copy(out.Lines, recipe.Lines)
	return out
}
