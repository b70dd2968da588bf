package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RecipePricedEvent      = "recipe.priced"
	BreakdownRejectedEvent = "breakdown.rejected"
	CatalogPricedEvent     = "catalog.priced"
)

// CatalogStream is the stream that whole-catalog runs are recorded on
const CatalogStream = "catalog"

// RecipeStream returns the stream ID holding the price history of a recipe
func RecipeStream(recipeName string) string {
	return "recipe:" + strings.ToLower(strings.TrimSpace(recipeName))
}

type RecipePriced struct {
	ReportID       uuid.UUID       `json:"report_id"`
	RecipeName     string          `json:"recipe_name"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	MarginFraction decimal.Decimal `json:"margin_fraction"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	Multiplier     decimal.Decimal `json:"multiplier"`
}

type BreakdownRejected struct {
	ReportID   uuid.UUID `json:"report_id"`
	RecipeName string    `json:"recipe_name"`
	Errors     []string  `json:"errors"`
}

type CatalogPriced struct {
	Recipes  int           `json:"recipes"`
	Invalid  int           `json:"invalid"`
	Duration time.Duration `json:"duration"`
}
