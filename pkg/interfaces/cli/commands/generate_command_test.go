package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr/testr"
	. "github.com/onsi/gomega"

	"github.com/vsinha/patisserie/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/patisserie/pkg/interfaces/cli/output"
)

func TestGenerateCommand_WritesLoadableCatalog(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	var buf bytes.Buffer

	cmd := NewGenerateCommand(GenerateConfig{
		Ingredients: 25,
		Recipes:     40,
		MaxLines:    6,
		OutputDir:   dir,
		Seed:        42,
		Verbose:     true,
		Stdout:      &buf,
		Logger:      testr.New(t),
	})
	g.Expect(cmd.Execute(context.Background())).To(Succeed())
	g.Expect(buf.String()).To(ContainSubstring("Catalog generated successfully"))

	catalog, err := csv.NewLoader().LoadCatalog(dir)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(catalog.Ingredients).To(HaveLen(25))
	g.Expect(catalog.Recipes).To(HaveLen(40))
	for _, recipe := range catalog.Recipes {
		g.Expect(len(recipe.Lines)).To(BeNumerically(">=", 1))
		g.Expect(len(recipe.Lines)).To(BeNumerically("<=", 6))
	}
}

func TestGenerateCommand_SeedIsReproducible(t *testing.T) {
	g := NewWithT(t)
	generate := func() string {
		dir := t.TempDir()
		cmd := NewGenerateCommand(GenerateConfig{
			Ingredients: 12,
			Recipes:     15,
			OutputDir:   dir,
			Seed:        12345,
			Stdout:      &bytes.Buffer{},
		})
		g.Expect(cmd.Execute(context.Background())).To(Succeed())

		lines, err := os.ReadFile(filepath.Join(dir, csv.RecipeLinesFile))
		g.Expect(err).NotTo(HaveOccurred())
		return string(lines)
	}

	g.Expect(generate()).To(Equal(generate()))
}

func TestGenerateCommand_PricesEndToEnd(t *testing.T) {
	g := NewWithT(t)
	clearEnv(t)
	catalog := t.TempDir()
	results := t.TempDir()

	gen := NewGenerateCommand(GenerateConfig{
		Ingredients: 10,
		Recipes:     20,
		OutputDir:   catalog,
		Seed:        7,
		Stdout:      &bytes.Buffer{},
	})
	g.Expect(gen.Execute(context.Background())).To(Succeed())

	price := NewPriceCommand(Config{
		CatalogDir: catalog,
		LaborRate:  "30",
		Scale:      "1,10",
		Format:     "csv",
		OutputDir:  results,
		Stdout:     &bytes.Buffer{},
		Logger:     testr.New(t),
	})
	g.Expect(price.Execute(context.Background())).To(Succeed())

	summary, err := os.ReadFile(filepath.Join(results, output.SummaryCSVFile))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(bytes.Count(summary, []byte("\n"))).To(Equal(21))
}

func TestGenerateCommand_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		config  GenerateConfig
		message string
	}{
		{name: "no ingredients", config: GenerateConfig{Recipes: 1, OutputDir: "x"}, message: "ingredients must be at least 1"},
		{name: "no recipes", config: GenerateConfig{Ingredients: 1, OutputDir: "x"}, message: "recipes must be at least 1"},
		{name: "negative lines", config: GenerateConfig{Ingredients: 1, Recipes: 1, MaxLines: -1, OutputDir: "x"}, message: "max lines"},
		{name: "no output", config: GenerateConfig{Ingredients: 1, Recipes: 1}, message: "output directory is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			tc.config.Stdout = &bytes.Buffer{}
			err := NewGenerateCommand(tc.config).Execute(context.Background())
			g.Expect(err).To(MatchError(ContainSubstring(tc.message)))
		})
	}
}

func TestGenerateCommand_Help(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer

	g.Expect(NewGenerateCommand(GenerateConfig{Help: true, Stdout: &buf}).Execute(context.Background())).To(Succeed())
	g.Expect(buf.String()).To(ContainSubstring("patisserie generate"))
}
