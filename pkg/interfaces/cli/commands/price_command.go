package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/application/dto"
	"github.com/vsinha/patisserie/pkg/application/services"
	domainservices "github.com/vsinha/patisserie/pkg/domain/services"
	"github.com/vsinha/patisserie/pkg/domain/services/costing"
	"github.com/vsinha/patisserie/pkg/infrastructure/config"
	"github.com/vsinha/patisserie/pkg/infrastructure/events"
	"github.com/vsinha/patisserie/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/patisserie/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/patisserie/pkg/interfaces/cli/output"
)

// SuggestMargin is the -margin value that forces a complexity-based margin
// even when the environment configures one
const SuggestMargin = "suggest"

// Config holds configuration for the price command. String-valued pricing
// options override the environment when non-empty.
type Config struct {
	CatalogDir      string
	IngredientsFile string
	RecipesFile     string
	LinesFile       string
	Recipe          string
	LaborRate       string
	Margin          string
	Multiplier      string
	Transport       bool
	Scale           string
	OutputDir       string
	Format          string
	EnvFile         string
	Verbose         bool
	Help            bool

	Stdout io.Writer
	Logger logr.Logger
}

// PriceCommand handles loading a catalog and pricing its recipes
type PriceCommand struct {
	config Config
	out    io.Writer
}

// NewPriceCommand creates a new price command with the given configuration
func NewPriceCommand(config Config) *PriceCommand {
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &PriceCommand{
		config: config,
		out:    out,
	}
}

// Execute runs the price command
func (c *PriceCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	settings, err := config.Load(c.config.EnvFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	params, err := c.resolveParams(settings)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files, params)
		fmt.Fprintln(c.out, "📂 Loading catalog from CSV files...")
	}

	loader := csv.NewLoader()

	ingredients, err := loader.LoadIngredients(files["Ingredients"])
	if err != nil {
		return fmt.Errorf("error loading ingredients: %w", err)
	}

	recipes, err := loader.LoadRecipes(files["Recipes"], files["Recipe lines"], ingredients)
	if err != nil {
		return fmt.Errorf("error loading recipes: %w", err)
	}

	ingredientRepo := memory.NewIngredientRepository(len(ingredients))
	if err := ingredientRepo.LoadIngredients(ingredients); err != nil {
		return fmt.Errorf("failed to load ingredients into repository: %w", err)
	}

	recipeRepo := memory.NewRecipeRepository(len(recipes))
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		return fmt.Errorf("failed to load recipes into repository: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Catalog loaded successfully:\n")
		fmt.Fprintf(c.out, "  Ingredients: %d\n", len(ingredients))
		fmt.Fprintf(c.out, "  Recipes: %d\n", len(recipes))
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "🔍 Validating catalog consistency...")
	}

	catalogIngredients, err := ingredientRepo.GetAllIngredients()
	if err != nil {
		return fmt.Errorf("failed to list ingredients: %w", err)
	}
	catalogRecipes, err := recipeRepo.GetAllRecipes()
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	validation := domainservices.NewCatalogValidator().ValidateCatalog(catalogRecipes, catalogIngredients)
	if !validation.IsValid() {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(validation.Errors, "; "))
	}
	for _, warning := range validation.Warnings {
		c.config.Logger.Info("Catalog warning", "warning", warning)
		if c.config.Verbose {
			fmt.Fprintf(c.out, "⚠️  %s\n", warning)
		}
	}
	if c.config.Verbose && len(validation.Warnings) == 0 {
		fmt.Fprintln(c.out, "✅ Catalog validation passed")
	}

	eventStore := events.NewInMemoryEventStore(c.config.Logger)
	if c.config.Verbose {
		eventStore.Subscribe(events.HandlerFunc(func(event events.Event) error {
			rejected := event.Data.(events.BreakdownRejected)
			_, err := fmt.Fprintf(c.out, "❌ %s: %s\n", rejected.RecipeName, strings.Join(rejected.Errors, "; "))
			return err
		}), events.BreakdownRejectedEvent)
	}

	pricingService := services.NewPricingServiceWithEvents(costing.NewEngine(nil), recipeRepo, c.config.Logger, eventStore)

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🔄 Pricing recipes...")
	}

	startTime := time.Now()
	var run *dto.PricingRun
	if c.config.Recipe != "" {
		report, err := pricingService.PriceRecipe(ctx, c.config.Recipe, params)
		if err != nil {
			return fmt.Errorf("error pricing recipe: %w", err)
		}
		run = &dto.PricingRun{Reports: []*dto.PricingReport{report}}
	} else {
		run, err = pricingService.PriceAll(ctx, params)
		if err != nil {
			return fmt.Errorf("error pricing catalog: %w", err)
		}
	}
	pricingTime := time.Since(startTime)
	run.Duration = pricingTime

	if c.config.Verbose {
		for _, report := range run.Reports {
			fmt.Fprintf(c.out, "📊 %s\n", output.SummaryLine(report))
		}
		recorded, err := eventStore.ReadAll(0)
		if err != nil {
			return fmt.Errorf("failed to read pricing events: %w", err)
		}
		fmt.Fprintf(c.out, "🗂️  Recorded %d pricing events\n", len(recorded))
		fmt.Fprintf(c.out, "✅ Pricing completed in %v\n\n", pricingTime)
	}

	outputConfig := output.Config{
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		Writer:      c.out,
		PricingTime: pricingTime,
		InputFiles:  files,
	}

	if err := output.Generate(run, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🏁 Pricing complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *PriceCommand) validateInputs() error {
	if c.config.CatalogDir == "" &&
		(c.config.IngredientsFile == "" || c.config.RecipesFile == "" || c.config.LinesFile == "") {
		return fmt.Errorf("must specify either -catalog directory or individual CSV files")
	}

	switch c.config.Format {
	case "", "text", "json", "csv", "html":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}

	return nil
}

// resolveParams applies command line overrides on top of the environment
func (c *PriceCommand) resolveParams(settings *config.Settings) (services.PricingParams, error) {
	params := services.PricingParams{
		LaborRate:        settings.LaborRate,
		Margin:           settings.Margin,
		Multiplier:       decimal.NewFromInt(1),
		IncludeTransport: settings.IncludeTransport || c.config.Transport,
		ScaleQuantities:  settings.ScaleQuantities,
		Currency:         settings.Currency,
	}

	if c.config.LaborRate != "" {
		rate, err := decimal.NewFromString(c.config.LaborRate)
		if err != nil {
			return params, fmt.Errorf("invalid labor rate: %s", c.config.LaborRate)
		}
		if rate.IsNegative() {
			return params, fmt.Errorf("labor rate cannot be negative, got %s", c.config.LaborRate)
		}
		params.LaborRate = rate
	}

	switch strings.ToLower(strings.TrimSpace(c.config.Margin)) {
	case "":
	case SuggestMargin:
		params.Margin = nil
	default:
		margin, err := decimal.NewFromString(c.config.Margin)
		if err != nil {
			return params, fmt.Errorf("invalid margin: %s", c.config.Margin)
		}
		params.Margin = &margin
	}

	if c.config.Multiplier != "" {
		multiplier, err := decimal.NewFromString(c.config.Multiplier)
		if err != nil {
			return params, fmt.Errorf("invalid multiplier: %s", c.config.Multiplier)
		}
		if !multiplier.IsPositive() {
			return params, fmt.Errorf("multiplier must be positive, got %s", c.config.Multiplier)
		}
		params.Multiplier = multiplier
	}

	if c.config.Scale != "" {
		quantities, err := config.ParseQuantities(c.config.Scale)
		if err != nil {
			return params, fmt.Errorf("invalid scale: %w", err)
		}
		params.ScaleQuantities = quantities
	}

	return params, nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PriceCommand) resolveInputFiles() (map[string]string, error) {
	var ingredientsPath, recipesPath, linesPath string

	if c.config.CatalogDir != "" {
		ingredientsPath = filepath.Join(c.config.CatalogDir, csv.IngredientsFile)
		recipesPath = filepath.Join(c.config.CatalogDir, csv.RecipesFile)
		linesPath = filepath.Join(c.config.CatalogDir, csv.RecipeLinesFile)
	} else {
		ingredientsPath = c.config.IngredientsFile
		recipesPath = c.config.RecipesFile
		linesPath = c.config.LinesFile
	}

	files := map[string]string{
		"Ingredients":  ingredientsPath,
		"Recipes":      recipesPath,
		"Recipe lines": linesPath,
	}

	for _, name := range []string{"Ingredients", "Recipes", "Recipe lines"} {
		if _, err := os.Stat(files[name]); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, files[name])
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *PriceCommand) printHeader(files map[string]string, params services.PricingParams) {
	fmt.Fprintf(c.out, "🧁 Patisserie Pricing CLI\n")
	fmt.Fprintf(c.out, "Input files:\n")
	fmt.Fprintf(c.out, "  Ingredients: %s\n", files["Ingredients"])
	fmt.Fprintf(c.out, "  Recipes: %s\n", files["Recipes"])
	fmt.Fprintf(c.out, "  Recipe lines: %s\n", files["Recipe lines"])
	fmt.Fprintf(c.out, "Labor rate: %s %s/h\n", params.Currency, params.LaborRate)
	if params.Margin == nil {
		fmt.Fprintf(c.out, "Margin: suggested by complexity\n")
	} else {
		fmt.Fprintf(c.out, "Margin: %s\n", params.Margin)
	}
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *PriceCommand) showHelp() {
	fmt.Fprintf(c.out, `Patisserie Pricing CLI - cost and price confectionery recipes

USAGE:
    patisserie -catalog <directory>                 # Use catalog directory with CSV files
    patisserie -ingredients <file> -recipes <file> -lines <file>

OPTIONS:
    -catalog <dir>        Path to catalog directory containing CSV files
    -ingredients <file>   Path to ingredients CSV file
    -recipes <file>       Path to recipes CSV file
    -lines <file>         Path to recipe lines CSV file
    -recipe <name>        Price only this recipe (default: all recipes)
    -labor-rate <n>       Hourly labor rate (default: $%[1]s)
    -margin <n|suggest>   Margin fraction, e.g. 0.6 (default: $%[2]s or suggested)
    -multiplier <n>       Production multiplier in batches (default: 1)
    -transport            Include transport overhead (also $%[3]s)
    -scale <list>         Batch counts for scale economics, e.g. 1,5,10 (also $%[4]s)
    -format <fmt>         Output format: text, json, csv, html (default: text)
    -output <dir>         Output directory for results (required for csv and html)
    -env <file>           Dotenv file to load (default: .env, missing is fine)
    -verbose              Enable verbose output
    -help                 Show this help message

CATALOG DIRECTORY STRUCTURE:
    catalog_name/
    ├── ingredients.csv    # Ingredient prices
    ├── recipes.csv        # Recipe headers
    └── recipe_lines.csv   # Ingredient quantities per recipe

CSV FILE FORMATS:

ingredients.csv:
    name,unit,price,price_basis
    Condensed milk,g,0.01,
    Cocoa powder,g,40,kg
    Eggs,unit,10.80,dozen

recipes.csv:
    name,prep_minutes,complexity,yield
    Brigadeiro,30,simple,20

recipe_lines.csv:
    recipe,ingredient,quantity
    Brigadeiro,Condensed milk,395

EXAMPLES:
    # Price every recipe in a catalog
    patisserie -catalog examples/brigadeiros -labor-rate 25 -verbose

    # Price one recipe at a fixed margin with a scale table
    patisserie -catalog examples/brigadeiros -recipe Brigadeiro -margin 0.6 -scale 1,5,10

    # Write CSV results
    patisserie -catalog examples/brigadeiros -format csv -output results/
`, config.EnvLaborRate, config.EnvMargin, config.EnvIncludeTransport, config.EnvScaleQuantities)
}
