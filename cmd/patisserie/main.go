package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/vsinha/patisserie/pkg/infrastructure/logging"
	"github.com/vsinha/patisserie/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		runGenerate(os.Args[2:])
		return
	}

	// Command line flags
	var (
		catalogDir = flag.String(
			"catalog",
			"",
			"Path to catalog directory containing CSV files",
		)
		ingredientsFile = flag.String("ingredients", "", "Path to ingredients CSV file")
		recipesFile     = flag.String("recipes", "", "Path to recipes CSV file")
		linesFile       = flag.String("lines", "", "Path to recipe lines CSV file")
		recipe          = flag.String("recipe", "", "Price only this recipe")
		laborRate       = flag.String("labor-rate", "", "Hourly labor rate")
		margin          = flag.String("margin", "", "Margin fraction or 'suggest'")
		multiplier      = flag.String("multiplier", "", "Production multiplier in batches")
		transport       = flag.Bool("transport", false, "Include transport overhead")
		scale           = flag.String("scale", "", "Batch counts for scale economics, e.g. 1,5,10")
		outputDir       = flag.String("output", "", "Output directory for results (optional)")
		format          = flag.String("format", "text", "Output format: text, json, csv, html")
		envFile         = flag.String("env", ".env", "Dotenv file to load")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	logger, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	config := commands.Config{
		CatalogDir:      *catalogDir,
		IngredientsFile: *ingredientsFile,
		RecipesFile:     *recipesFile,
		LinesFile:       *linesFile,
		Recipe:          *recipe,
		LaborRate:       *laborRate,
		Margin:          *margin,
		Multiplier:      *multiplier,
		Transport:       *transport,
		Scale:           *scale,
		OutputDir:       *outputDir,
		Format:          *format,
		EnvFile:         *envFile,
		Verbose:         *verbose,
		Help:            *help,
		Logger:          logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := commands.NewPriceCommand(config)
	if err := cmd.Execute(ctx); err != nil {
		logger.Error(err, "Pricing failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		_ = logging.Sync(logger)
		os.Exit(1)
	}
	_ = logging.Sync(logger)
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		ingredients = fs.Int("ingredients", 0, "Number of ingredients to generate")
		recipes     = fs.Int("recipes", 0, "Number of recipes to generate")
		maxLines    = fs.Int("max-lines", 8, "Maximum ingredient lines per recipe")
		outputDir   = fs.String("output", "", "Output directory for generated files")
		seed        = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose     = fs.Bool("verbose", false, "Enable verbose output")
		help        = fs.Bool("help", false, "Show help message")
	)
	_ = fs.Parse(args)

	logger, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Ingredients: *ingredients,
		Recipes:     *recipes,
		MaxLines:    *maxLines,
		OutputDir:   *outputDir,
		Seed:        *seed,
		Verbose:     *verbose,
		Help:        *help,
		Logger:      logger,
	})
	if err := cmd.Execute(context.Background()); err != nil {
		logger.Error(err, "Catalog generation failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = logging.Sync(logger)
		os.Exit(1)
	}
	_ = logging.Sync(logger)
}
