package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/domain/services/costing"
)

func main() {
	recipe, err := buildBrigadeiro()
	if err != nil {
		fmt.Printf("❌ Invalid recipe: %v\n", err)
		return
	}

	engine := costing.NewEngine(nil)
	rate := decimal.NewFromInt(25)
	margin := decimal.RequireFromString("0.60")

	fmt.Println("🧁 Pricing a batch of brigadeiros...")
	fmt.Printf("Labor rate: %s/h | Margin: %s | Yield: %s\n", rate, margin, recipe.Yield)
	fmt.Println()

	breakdown := engine.ComputeRecipePrice(costing.PriceRequest{
		Recipe:               recipe,
		HourlyLaborRate:      rate,
		MarginFraction:       margin,
		ProductionMultiplier: decimal.NewFromInt(1),
	})

	fmt.Println("📊 Cost Breakdown:")
	for _, line := range breakdown.Lines {
		fmt.Printf("  %-16s %6s -> %s\n", line.IngredientName, line.Quantity, line.Cost.StringFixed(2))
	}
	fmt.Printf("  Ingredients: %s\n", breakdown.IngredientCost.StringFixed(2))
	fmt.Printf("  Labor:       %s\n", breakdown.LaborCost.StringFixed(2))
	fmt.Printf("  Overhead:    %s\n", breakdown.OverheadCost.StringFixed(2))
	fmt.Printf("  Total cost:  %s\n", breakdown.TotalCost.StringFixed(2))
	fmt.Printf("  Final price: %s (raw %s)\n", breakdown.FinalPrice.StringFixed(2), breakdown.RawPrice.StringFixed(4))
	fmt.Println()

	perUnit := engine.ComputePricePerUnit(recipe, rate, margin, false)
	fmt.Printf("🍬 Per brigadeiro: %s\n", perUnit.StringFixed(2))

	band := engine.DefaultCompetitiveBand(breakdown.TotalCost)
	fmt.Printf("🏷️  Competitive band: %s - %s (suggested %s)\n",
		band.MinPrice.StringFixed(2), band.MaxPrice.StringFixed(2), band.SuggestedPrice.StringFixed(2))

	profit := engine.AnalyzeProfitability(breakdown.FinalPrice, breakdown.TotalCost)
	fmt.Printf("💰 Profit: %s (%s%% over cost, %s)\n",
		profit.Profit.StringFixed(2), profit.MarginOverCostPercent, profit.Classification)
	fmt.Println()

	fmt.Println("📦 Scale economics:")
	for _, entry := range engine.ComputeScaleEconomics(recipe, rate, margin, []int{1, 5, 10}) {
		fmt.Printf("  %2d batches: %s total, %s per unit, %s%% savings\n",
			entry.Quantity, entry.TotalPrice.StringFixed(2), entry.PricePerUnit.StringFixed(2), entry.SavingsPercent)
	}
	fmt.Println()

	validation := engine.ValidateBreakdown(breakdown)
	for _, msg := range validation.Errors {
		fmt.Printf("❌ %s\n", msg)
	}
	for _, msg := range validation.Warnings {
		fmt.Printf("⚠️  %s\n", msg)
	}

	fmt.Println("✅ Pricing complete!")
}

func buildBrigadeiro() (*entities.Recipe, error) {
	condensedMilk, err := entities.NewIngredient("Condensed milk", entities.Gram, decimal.RequireFromString("0.01"))
	if err != nil {
		return nil, err
	}
	cocoa, err := entities.NewIngredient("Cocoa powder", entities.Gram, decimal.RequireFromString("0.04"))
	if err != nil {
		return nil, err
	}
	butter, err := entities.NewIngredient("Butter", entities.Gram, decimal.RequireFromString("0.05"))
	if err != nil {
		return nil, err
	}

	recipe, err := entities.NewRecipe(
		"Brigadeiro",
		decimal.NewFromInt(30),
		entities.Simple,
		decimal.NewFromInt(20),
		nil,
	)
	if err != nil {
		return nil, err
	}

	recipe.AddLine(*condensedMilk, decimal.NewFromInt(395))
	recipe.AddLine(*cocoa, decimal.NewFromInt(20))
	recipe.AddLine(*butter, decimal.NewFromInt(15))
	return recipe, nil
}
