package commands

import (
	"context"
	encodingcsv "encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-logr/logr"

	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for synthetic catalog generation
type GenerateConfig struct {
	Ingredients int    // Number of ingredients to generate
	Recipes     int    // Number of recipes to generate
	MaxLines    int    // Maximum ingredient lines per recipe
	OutputDir   string // Output directory for generated files
	Seed        int64  // Random seed for reproducible generation
	Help        bool   // Show help
	Verbose     bool   // Verbose output
	Stdout      io.Writer
	Logger      logr.Logger
}

// GenerateCommand writes a random but loadable catalog, used for load testing
// the pricing run and for demos
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	out    io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.MaxLines == 0 {
		config.MaxLines = 8
	}

	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		out:    out,
	}
}

type generatedIngredient struct {
	name  string
	unit  entities.MeasurementUnit
	price string
	basis string
}

type generatedLine struct {
	ingredient string
	quantity   int
}

type generatedRecipe struct {
	name        string
	prepMinutes int
	complexity  entities.Complexity
	yield       int
	lines       []generatedLine
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if err := cmd.validate(); err != nil {
		return err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "🔧 Generating catalog with %d ingredients, %d recipes, up to %d lines each\n",
			cmd.config.Ingredients, cmd.config.Recipes, cmd.config.MaxLines)
		fmt.Fprintf(cmd.out, "📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Fprintf(cmd.out, "🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ingredients := cmd.generateIngredients()
	recipes := cmd.generateRecipes(ingredients)
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := cmd.writeIngredients(ingredients); err != nil {
		return fmt.Errorf("failed to write ingredients: %w", err)
	}
	if err := cmd.writeRecipes(recipes); err != nil {
		return fmt.Errorf("failed to write recipes: %w", err)
	}
	if err := cmd.writeLines(recipes); err != nil {
		return fmt.Errorf("failed to write recipe lines: %w", err)
	}

	cmd.config.Logger.V(1).Info("Generated catalog",
		"dir", cmd.config.OutputDir,
		"ingredients", len(ingredients),
		"recipes", len(recipes))

	if cmd.config.Verbose {
		fmt.Fprintln(cmd.out, "✅ Catalog generated successfully!")
		fmt.Fprintf(cmd.out, "   %s, %s, %s\n", csv.IngredientsFile, csv.RecipesFile, csv.RecipeLinesFile)
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	switch {
	case cmd.config.Ingredients < 1:
		return fmt.Errorf("ingredients must be at least 1")
	case cmd.config.Recipes < 1:
		return fmt.Errorf("recipes must be at least 1")
	case cmd.config.MaxLines < 1:
		return fmt.Errorf("max lines must be at least 1")
	case cmd.config.OutputDir == "":
		return fmt.Errorf("output directory is required")
	}
	return nil
}

var ingredientBases = []struct {
	name  string
	unit  entities.MeasurementUnit
	basis string
	// price range of one basis package, in cents
	minCents, maxCents int
}{
	{"Flour", entities.Gram, "kg", 350, 900},
	{"Sugar", entities.Gram, "kg", 300, 700},
	{"Butter", entities.Gram, "kg", 3500, 6500},
	{"Cocoa powder", entities.Gram, "kg", 2500, 6000},
	{"Condensed milk", entities.Gram, "", 1, 2},
	{"Grated coconut", entities.Gram, "kg", 2000, 4000},
	{"Milk", entities.Milliliter, "l", 400, 800},
	{"Cream", entities.Milliliter, "l", 1500, 3000},
	{"Eggs", entities.Unit, "dozen", 900, 1600},
	{"Lemons", entities.Unit, "", 50, 150},
}

func (cmd *GenerateCommand) generateIngredients() []generatedIngredient {
	ingredients := make([]generatedIngredient, 0, cmd.config.Ingredients)
	for i := 0; i < cmd.config.Ingredients; i++ {
		base := ingredientBases[i%len(ingredientBases)]
		name := base.name
		if i >= len(ingredientBases) {
			name = fmt.Sprintf("%s %d", base.name, i/len(ingredientBases)+1)
		}

		cents := base.minCents + cmd.rand.Intn(base.maxCents-base.minCents+1)
		ingredients = append(ingredients, generatedIngredient{
			name:  name,
			unit:  base.unit,
			price: fmt.Sprintf("%d.%02d", cents/100, cents%100),
			basis: base.basis,
		})
	}
	return ingredients
}

var recipeBases = []string{
	"Brigadeiro", "Beijinho", "Quindim", "Bolo de rolo", "Pudim",
	"Cajuzinho", "Bem-casado", "Pao de mel", "Torta de limao", "Cocada",
}

func (cmd *GenerateCommand) generateRecipes(ingredients []generatedIngredient) []generatedRecipe {
	recipes := make([]generatedRecipe, 0, cmd.config.Recipes)
	for i := 0; i < cmd.config.Recipes; i++ {
		name := recipeBases[i%len(recipeBases)]
		if i >= len(recipeBases) {
			name = fmt.Sprintf("%s %d", name, i/len(recipeBases)+1)
		}

		complexity := entities.Complexity(cmd.rand.Intn(3))
		recipe := generatedRecipe{
			name:        name,
			complexity:  complexity,
			prepMinutes: cmd.generatePrepMinutes(complexity),
			yield:       4 + cmd.rand.Intn(37),
		}

		lineCount := 1 + cmd.rand.Intn(min(cmd.config.MaxLines, len(ingredients)))
		for _, idx := range cmd.rand.Perm(len(ingredients))[:lineCount] {
			recipe.lines = append(recipe.lines, generatedLine{
				ingredient: ingredients[idx].name,
				quantity:   cmd.generateQuantity(ingredients[idx].unit),
			})
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}

// generatePrepMinutes scales preparation time with complexity
func (cmd *GenerateCommand) generatePrepMinutes(complexity entities.Complexity) int {
	switch complexity {
	case entities.Simple:
		return 15 + cmd.rand.Intn(30)
	case entities.Medium:
		return 45 + cmd.rand.Intn(45)
	default:
		return 90 + cmd.rand.Intn(150)
	}
}

func (cmd *GenerateCommand) generateQuantity(unit entities.MeasurementUnit) int {
	switch unit {
	case entities.Unit:
		return 1 + cmd.rand.Intn(12)
	case entities.Milliliter:
		return 50 + cmd.rand.Intn(451)
	default:
		return 10 + cmd.rand.Intn(491)
	}
}

func (cmd *GenerateCommand) writeIngredients(ingredients []generatedIngredient) error {
	rows := [][]string{{"name", "unit", "price", "price_basis"}}
	for _, ing := range ingredients {
		rows = append(rows, []string{ing.name, ing.unit.String(), ing.price, ing.basis})
	}
	return cmd.writeCSV(csv.IngredientsFile, rows)
}

func (cmd *GenerateCommand) writeRecipes(recipes []generatedRecipe) error {
	rows := [][]string{{"name", "prep_minutes", "complexity", "yield"}}
	for _, r := range recipes {
		rows = append(rows, []string{
			r.name,
			strconv.Itoa(r.prepMinutes),
			r.complexity.String(),
			strconv.Itoa(r.yield),
		})
	}
	return cmd.writeCSV(csv.RecipesFile, rows)
}

func (cmd *GenerateCommand) writeLines(recipes []generatedRecipe) error {
	rows := [][]string{{"recipe", "ingredient", "quantity"}}
	for _, r := range recipes {
		for _, line := range r.lines {
			rows = append(rows, []string{r.name, line.ingredient, strconv.Itoa(line.quantity)})
		}
	}
	return cmd.writeCSV(csv.RecipeLinesFile, rows)
}

func (cmd *GenerateCommand) writeCSV(name string, rows [][]string) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	w := encodingcsv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return file.Sync()
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.out, `Synthetic Catalog Generator

USAGE:
    patisserie generate [OPTIONS]

OPTIONS:
    -ingredients <N>    Number of ingredients to generate (required)
    -recipes <N>        Number of recipes to generate (required)
    -max-lines <N>      Maximum ingredient lines per recipe (default 8)
    -output <DIR>       Output directory for generated files (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small demo catalog
    patisserie generate -ingredients 10 -recipes 5 -output ./demo_catalog

    # Generate a large reproducible catalog for load testing
    patisserie generate -ingredients 500 -recipes 5000 -max-lines 12 -output ./large_catalog -seed 12345`)
}
