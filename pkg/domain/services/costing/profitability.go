package costing

import "github.com/shopspring/decimal"

// Classification grades a margin over cost
type Classification string

const (
	ClassificationLow       Classification = "low"
	ClassificationGood      Classification = "good"
	ClassificationExcellent Classification = "excellent"
)

// String returns the string representation of the classification
func (c Classification) String() string {
	return string(c)
}

// Profitability describes the profit of selling at a given price
type Profitability struct {
	Profit                 decimal.Decimal `json:"profit"`
	MarginOverCostPercent  decimal.Decimal `json:"margin_over_cost_percent"`
	MarginOverPricePercent decimal.Decimal `json:"margin_over_price_percent"`
	Classification         Classification  `json:"classification"`
}

// AnalyzeProfitability compares a selling price with its cost. Percentages are
// rounded to two places. A zero cost or zero price leaves the matching
// percentage at zero instead of dividing by it, and a zero cost is always
// classified as low.
func (e *Engine) AnalyzeProfitability(sellingPrice, totalCost decimal.Decimal) Profitability {
	profit := sellingPrice.Sub(totalCost)

	result := Profitability{
		Profit:                 profit,
		MarginOverCostPercent:  decimal.Zero,
		MarginOverPricePercent: decimal.Zero,
		Classification:         ClassificationLow,
	}

	if !sellingPrice.IsZero() {
		result.MarginOverPricePercent = profit.Div(sellingPrice).Mul(hundred).Round(2)
	}
	if totalCost.IsZero() {
		return result
	}

	result.MarginOverCostPercent = profit.Div(totalCost).Mul(hundred).Round(2)
	result.Classification = e.classify(result.MarginOverCostPercent)
	return result
}

func (e *Engine) classify(marginOverCost decimal.Decimal) Classification {
	switch {
	case marginOverCost.LessThan(e.config.Profitability.Good):
		return ClassificationLow
	case marginOverCost.LessThan(e.config.Profitability.Excellent):
		return ClassificationGood
	default:
		return ClassificationExcellent
	}
}
