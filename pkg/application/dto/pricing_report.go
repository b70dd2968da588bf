package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/domain/services/costing"
)

// PricingReport contains the complete output of pricing one recipe
type PricingReport struct {
	ID              uuid.UUID               `json:"id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	RecipeName      string                  `json:"recipe_name"`
	Currency        string                  `json:"currency"`
	HourlyLaborRate decimal.Decimal         `json:"hourly_labor_rate"`
	MarginSuggested bool                    `json:"margin_suggested"`
	Breakdown       entities.CostBreakdown  `json:"breakdown"`
	PricePerUnit    decimal.Decimal         `json:"price_per_unit"`
	Band            costing.CompetitiveBand `json:"competitive_band"`
	Profitability   costing.Profitability   `json:"profitability"`
	Validation      costing.Validation      `json:"validation"`
	Scale           []costing.ScaleEntry    `json:"scale,omitempty"`
}

// PricingRun groups the reports produced by one invocation
type PricingRun struct {
	Reports  []*PricingReport `json:"reports"`
	Duration time.Duration    `json:"duration_ns"`
}

// InvalidCount returns how many reports failed breakdown validation
func (r *PricingRun) InvalidCount() int {
	count := 0
	for _, report := range r.Reports {
		if !report.Validation.Valid {
			count++
		}
	}
	return count
}
