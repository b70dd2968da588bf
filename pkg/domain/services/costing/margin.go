package costing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

// CompetitiveBand is the range of prices worth quoting for a cost
type CompetitiveBand struct {
	MinPrice       decimal.Decimal `json:"min_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
}

// SuggestMargin returns the customary margin for a complexity class, or the
// fallback margin for an unknown class
func (e *Engine) SuggestMargin(complexity entities.Complexity) decimal.Decimal {
	if margin, ok := e.config.MarginSuggestions[complexity]; ok {
		return margin
	}
	return e.config.FallbackMargin
}

// ComputeCompetitiveBand prices totalCost at the minimum, maximum and
// suggested margins, each rounded up like a final price
func (e *Engine) ComputeCompetitiveBand(totalCost, minMargin, maxMargin decimal.Decimal) CompetitiveBand {
	return CompetitiveBand{
		MinPrice:       e.priceAt(totalCost, minMargin),
		MaxPrice:       e.priceAt(totalCost, maxMargin),
		SuggestedPrice: e.priceAt(totalCost, e.config.BandSuggestedMargin),
	}
}

// DefaultCompetitiveBand is ComputeCompetitiveBand with the configured
// minimum and maximum margins (30% and 100% by default)
func (e *Engine) DefaultCompetitiveBand(totalCost decimal.Decimal) CompetitiveBand {
	return e.ComputeCompetitiveBand(totalCost, e.config.BandMinMargin, e.config.BandMaxMargin)
}

func (e *Engine) priceAt(totalCost, margin decimal.Decimal) decimal.Decimal {
	return e.RoundUp(totalCost.Mul(one.Add(margin)))
}
