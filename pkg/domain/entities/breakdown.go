package entities

import "github.com/shopspring/decimal"

// LineCost is the cost of one recipe line at the requested production multiplier
type LineCost struct {
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Cost           decimal.Decimal `json:"cost"`
}

// CostBreakdown is the result of pricing a recipe
type CostBreakdown struct {
	IngredientCost       decimal.Decimal `json:"ingredient_cost"`
	LaborCost            decimal.Decimal `json:"labor_cost"`
	OverheadCost         decimal.Decimal `json:"overhead_cost"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	MarginFraction       decimal.Decimal `json:"margin_fraction"`
	RawPrice             decimal.Decimal `json:"raw_price"`
	FinalPrice           decimal.Decimal `json:"final_price"`
	ProductionMultiplier decimal.Decimal `json:"production_multiplier"`
	IncludesTransport    bool            `json:"includes_transport"`
	Complexity           Complexity      `json:"complexity"`
	Lines                []LineCost      `json:"lines"`
}

// BaseCost is the direct cost (ingredients plus labor) overhead is charged on
func (b CostBreakdown) BaseCost() decimal.Decimal {
	return b.IngredientCost.Add(b.LaborCost)
}
