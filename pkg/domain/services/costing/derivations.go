package costing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

// ScaleEntry is the pricing of one production quantity
type ScaleEntry struct {
	Quantity       int             `json:"quantity"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	SavingsPercent decimal.Decimal `json:"savings_percent"`
}

// ComputePricePerUnit prices a single batch and divides the final price by
// the recipe yield. The result is informational and is not rounded again.
// A missing recipe or a non-positive yield gives zero.
func (e *Engine) ComputePricePerUnit(
	recipe *entities.Recipe,
	hourlyLaborRate, marginFraction decimal.Decimal,
	includeTransport bool,
) decimal.Decimal {
	if recipe == nil || !recipe.Yield.IsPositive() {
		return decimal.Zero
	}

	breakdown := e.ComputeRecipePrice(PriceRequest{
		Recipe:               recipe,
		HourlyLaborRate:      hourlyLaborRate,
		MarginFraction:       marginFraction,
		ProductionMultiplier: one,
		IncludeTransport:     includeTransport,
	})
	return breakdown.FinalPrice.Div(recipe.Yield)
}

// ComputeScaleEconomics prices each production quantity and compares its
// per-unit price with a single batch. Per-unit prices are rounded up like
// final prices; savings are percentages rounded to two places. Quantities
// below 1 are skipped. Transport overhead is not included.
func (e *Engine) ComputeScaleEconomics(
	recipe *entities.Recipe,
	hourlyLaborRate, marginFraction decimal.Decimal,
	quantities []int,
) []ScaleEntry {
	entries := make([]ScaleEntry, 0, len(quantities))
	if recipe == nil {
		return entries
	}

	price := func(quantity int) entities.CostBreakdown {
		return e.ComputeRecipePrice(PriceRequest{
			Recipe:               recipe,
			HourlyLaborRate:      hourlyLaborRate,
			MarginFraction:       marginFraction,
			ProductionMultiplier: decimal.NewFromInt(int64(quantity)),
		})
	}

	baseline := e.perUnit(price(1).FinalPrice, recipe.Yield, 1)

	for _, quantity := range quantities {
		if quantity < 1 {
			continue
		}

		breakdown := price(quantity)
		perUnit := e.perUnit(breakdown.FinalPrice, recipe.Yield, quantity)

		savings := decimal.Zero
		if quantity != 1 && baseline.IsPositive() {
			savings = baseline.Sub(perUnit).Div(baseline).Mul(hundred).Round(2)
		}

		entries = append(entries, ScaleEntry{
			Quantity:       quantity,
			TotalCost:      breakdown.TotalCost,
			TotalPrice:     breakdown.FinalPrice,
			PricePerUnit:   perUnit,
			SavingsPercent: savings,
		})
	}

	return entries
}

func (e *Engine) perUnit(finalPrice, yield decimal.Decimal, quantity int) decimal.Decimal {
	units := yield.Mul(decimal.NewFromInt(int64(quantity)))
	if !units.IsPositive() {
		return decimal.Zero
	}
	return e.RoundUp(finalPrice.Div(units))
}
