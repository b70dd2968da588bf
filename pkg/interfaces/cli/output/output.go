package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/application/dto"
)

// Output file names written into Config.OutputDir
const (
	SummaryCSVFile = "pricing_summary.csv"
	LinesCSVFile   = "pricing_lines.csv"
	ScaleCSVFile   = "pricing_scale.csv"
	JSONFile       = "pricing_results.json"
	HTMLFile       = "pricing_report.html"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives text output and stdout-bound JSON; defaults to os.Stdout
	Writer      io.Writer
	PricingTime time.Duration
	InputFiles  map[string]string
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(run *dto.PricingRun, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(run, config)
	case "json":
		return generateJSONOutput(run, config)
	case "csv":
		return generateCSVOutput(run, config)
	case "html":
		return generateHTMLOutput(run, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// FormatMoney renders an amount with thousands separators and two decimals
func FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	return sign + humanize.Comma(rounded.IntPart()) + cents
}

func formatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

// generateTextOutput creates human-readable text output
func generateTextOutput(run *dto.PricingRun, config Config) error {
	w := config.writer()

	fmt.Fprintf(w, "🧁 Pricing Results Summary\n")
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Recipes: %d\n", len(run.Reports))
	fmt.Fprintf(w, "Invalid: %d\n", run.InvalidCount())
	if config.Verbose {
		fmt.Fprintf(w, "Pricing Time: %v\n", config.PricingTime)
	}
	fmt.Fprintln(w)

	for _, report := range run.Reports {
		b := report.Breakdown
		currency := report.Currency

		fmt.Fprintf(w, "📋 %s (%s, x%s)\n", report.RecipeName, b.Complexity, b.ProductionMultiplier)
		fmt.Fprintf(w, "%-24s %12s %s\n", "Ingredient", "Quantity", "Cost")
		fmt.Fprintf(w, "%-24s %12s %s\n", "------------------------", "------------", "------------")
		for _, line := range b.Lines {
			fmt.Fprintf(w, "%-24s %12s %s %s\n", line.IngredientName, line.Quantity, currency, FormatMoney(line.Cost))
		}
		fmt.Fprintln(w)

		marginNote := ""
		if report.MarginSuggested {
			marginNote = " (suggested)"
		}
		fmt.Fprintf(w, "  %-18s %s %s\n", "Ingredients:", currency, FormatMoney(b.IngredientCost))
		fmt.Fprintf(w, "  %-18s %s %s\n", "Labor:", currency, FormatMoney(b.LaborCost))
		fmt.Fprintf(w, "  %-18s %s %s\n", "Overhead:", currency, FormatMoney(b.OverheadCost))
		fmt.Fprintf(w, "  %-18s %s %s\n", "Total cost:", currency, FormatMoney(b.TotalCost))
		fmt.Fprintf(w, "  %-18s %s%s\n", "Margin:", formatPercent(b.MarginFraction), marginNote)
		fmt.Fprintf(w, "  %-18s %s %s\n", "Final price:", currency, FormatMoney(b.FinalPrice))
		fmt.Fprintf(w, "  %-18s %s %s\n", "Per unit:", currency, FormatMoney(report.PricePerUnit))
		fmt.Fprintf(w, "  %-18s %s %s - %s (suggested %s)\n", "Competitive band:", currency,
			FormatMoney(report.Band.MinPrice), FormatMoney(report.Band.MaxPrice), FormatMoney(report.Band.SuggestedPrice))
		fmt.Fprintf(w, "  %-18s %s, %s%% over cost\n", "Profitability:",
			report.Profitability.Classification, report.Profitability.MarginOverCostPercent)

		if len(report.Scale) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  %-8s %14s %14s %12s %8s\n", "Batches", "Total Cost", "Total Price", "Per Unit", "Savings")
			for _, entry := range report.Scale {
				fmt.Fprintf(w, "  %-8d %14s %14s %12s %7s%%\n",
					entry.Quantity,
					FormatMoney(entry.TotalCost),
					FormatMoney(entry.TotalPrice),
					FormatMoney(entry.PricePerUnit),
					entry.SavingsPercent)
			}
		}

		for _, msg := range report.Validation.Errors {
			fmt.Fprintf(w, "  ❌ %s\n", msg)
		}
		for _, msg := range report.Validation.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", msg)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(run *dto.PricingRun, config Config) error {
	jsonData, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, JSONFile)
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(run *dto.PricingRun, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, SummaryCSVFile)
	if err := writeSummaryCSV(run, summaryFile); err != nil {
		return fmt.Errorf("failed to write pricing summary CSV: %w", err)
	}

	linesFile := filepath.Join(config.OutputDir, LinesCSVFile)
	if err := writeLinesCSV(run, linesFile); err != nil {
		return fmt.Errorf("failed to write pricing lines CSV: %w", err)
	}

	scaleFile := filepath.Join(config.OutputDir, ScaleCSVFile)
	if err := writeScaleCSV(run, scaleFile); err != nil {
		return fmt.Errorf("failed to write pricing scale CSV: %w", err)
	}

	if config.Verbose {
		w := config.writer()
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Summary: %s\n", summaryFile)
		fmt.Fprintf(w, "  Lines: %s\n", linesFile)
		fmt.Fprintf(w, "  Scale: %s\n", scaleFile)
	}

	return nil
}

func writeSummaryCSV(run *dto.PricingRun, filename string) error {
	rows := [][]string{{
		"recipe", "complexity", "multiplier", "ingredient_cost", "labor_cost", "overhead_cost",
		"total_cost", "margin", "raw_price", "final_price", "price_per_unit",
		"band_min", "band_max", "band_suggested", "classification", "valid", "currency",
	}}
	for _, report := range run.Reports {
		b := report.Breakdown
		rows = append(rows, []string{
			report.RecipeName,
			b.Complexity.String(),
			b.ProductionMultiplier.String(),
			b.IngredientCost.String(),
			b.LaborCost.String(),
			b.OverheadCost.String(),
			b.TotalCost.String(),
			b.MarginFraction.String(),
			b.RawPrice.String(),
			b.FinalPrice.String(),
			report.PricePerUnit.String(),
			report.Band.MinPrice.String(),
			report.Band.MaxPrice.String(),
			report.Band.SuggestedPrice.String(),
			report.Profitability.Classification.String(),
			strconv.FormatBool(report.Validation.Valid),
			report.Currency,
		})
	}
	return writeCSV(filename, rows)
}

func writeLinesCSV(run *dto.PricingRun, filename string) error {
	rows := [][]string{{"recipe", "ingredient", "quantity", "cost"}}
	for _, report := range run.Reports {
		for _, line := range report.Breakdown.Lines {
			rows = append(rows, []string{
				report.RecipeName,
				line.IngredientName,
				line.Quantity.String(),
				line.Cost.String(),
			})
		}
	}
	return writeCSV(filename, rows)
}

func writeScaleCSV(run *dto.PricingRun, filename string) error {
	rows := [][]string{{"recipe", "quantity", "total_cost", "total_price", "price_per_unit", "savings_percent"}}
	for _, report := range run.Reports {
		for _, entry := range report.Scale {
			rows = append(rows, []string{
				report.RecipeName,
				strconv.Itoa(entry.Quantity),
				entry.TotalCost.String(),
				entry.TotalPrice.String(),
				entry.PricePerUnit.String(),
				entry.SavingsPercent.String(),
			})
		}
	}
	return writeCSV(filename, rows)
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

// SummaryLine is a one-line description of a report for progress output
func SummaryLine(report *dto.PricingReport) string {
	var sb strings.Builder
	sb.WriteString(report.RecipeName)
	sb.WriteString(": ")
	sb.WriteString(report.Currency)
	sb.WriteString(" ")
	sb.WriteString(FormatMoney(report.Breakdown.FinalPrice))
	if !report.Validation.Valid {
		sb.WriteString(" (invalid)")
	}
	return sb.String()
}
