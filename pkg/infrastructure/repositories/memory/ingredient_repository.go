package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/domain/repositories"
)

// IngredientRepository provides in-memory ingredient storage. Names are
// matched case-insensitively and listing keeps insertion order.
type IngredientRepository struct {
	mu             sync.RWMutex
	ingredients    []entities.Ingredient
	ingredientsMap map[string]int
}

// NewIngredientRepository creates a new in-memory ingredient repository
func NewIngredientRepository(expectedIngredients int) *IngredientRepository {
	return &IngredientRepository{
		ingredients:    make([]entities.Ingredient, 0, expectedIngredients),
		ingredientsMap: make(map[string]int, expectedIngredients),
	}
}

// Verify interface compliance
var _ repositories.IngredientRepository = (*IngredientRepository)(nil)

// LoadIngredients loads ingredients into the repository, stopping at the
// first duplicate name
func (r *IngredientRepository) LoadIngredients(ingredients []*entities.Ingredient) error {
	for _, ingredient := range ingredients {
		if err := r.SaveIngredient(ingredient); err != nil {
			return err
		}
	}
	return nil
}

// SaveIngredient adds an ingredient to the repository
func (r *IngredientRepository) SaveIngredient(ingredient *entities.Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("ingredient cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := catalogKey(ingredient.Name)
	if _, exists := r.ingredientsMap[key]; exists {
		return fmt.Errorf("%w ingredient name: %s", repositories.ErrDuplicate, ingredient.Name)
	}

	r.ingredientsMap[key] = len(r.ingredients)
	r.ingredients = append(r.ingredients, *ingredient)
	return nil
}

// GetIngredient returns a copy of the named ingredient
func (r *IngredientRepository) GetIngredient(name string) (*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.ingredientsMap[catalogKey(name)]
	if !exists {
		return nil, fmt.Errorf("ingredient %w: %s", repositories.ErrNotFound, name)
	}
	ingredient := r.ingredients[index]
	return &ingredient, nil
}

// GetAllIngredients returns copies of all ingredients in insertion order
func (r *IngredientRepository) GetAllIngredients() ([]*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ingredients := make([]*entities.Ingredient, 0, len(r.ingredients))
	for i := range r.ingredients {
		ingredient := r.ingredients[i]
		ingredients = append(ingredients, &ingredient)
	}
	return ingredients, nil
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
