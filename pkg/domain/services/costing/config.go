// Package costing turns a recipe plus labor, overhead and margin parameters
// into a priced cost breakdown, and derives the secondary analyses built on
// it: per-unit and scale pricing, margin suggestions, competitive price
// bands, profitability and advisory validation.
//
// All arithmetic uses decimal values. Every operation is a pure function of
// its inputs and the Engine's Config; nothing is cached or shared, so an
// Engine may be used from any number of goroutines.
//
// Pricing steps for a single call:
//
//	ingredients = Σ quantity × multiplier × unit price   (quantity > 0 only)
//	labor       = prep minutes × multiplier / 60 × hourly rate × complexity multiplier
//	overhead    = (ingredients + labor) × overhead rate   (11%, or 13% with transport)
//	total       = ingredients + labor + overhead
//	final price = total × (1 + margin), rounded up to the next 0.50
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/domain/entities"
)

// OverheadRates are the indirect costs charged as fractions of direct cost
type OverheadRates struct {
	Energy    decimal.Decimal
	Gas       decimal.Decimal
	Packaging decimal.Decimal
	Transport decimal.Decimal
	Misc      decimal.Decimal
}

// Rate returns the combined overhead fraction. Transport is only counted
// when includeTransport is set.
func (o OverheadRates) Rate(includeTransport bool) decimal.Decimal {
	rate := o.Energy.Add(o.Gas).Add(o.Packaging).Add(o.Misc)
	if includeTransport {
		rate = rate.Add(o.Transport)
	}
	return rate
}

// ProfitabilityThresholds classify margin over cost, in percent
type ProfitabilityThresholds struct {
	Good      decimal.Decimal
	Excellent decimal.Decimal
}

// ValidationThresholds drive the advisory warnings of ValidateBreakdown
type ValidationThresholds struct {
	LowMargin  decimal.Decimal
	HighMargin decimal.Decimal
	LaborRatio decimal.Decimal
}

// Config holds every constant table the engine prices with
type Config struct {
	ComplexityMultipliers map[entities.Complexity]decimal.Decimal
	// FallbackMultiplier prices labor for a complexity class missing from
	// ComplexityMultipliers.
	FallbackMultiplier decimal.Decimal

	Overhead OverheadRates

	// RoundingIncrement is the currency step final prices are rounded up to.
	// Zero disables rounding.
	RoundingIncrement decimal.Decimal

	MarginSuggestions map[entities.Complexity]decimal.Decimal
	FallbackMargin    decimal.Decimal

	BandMinMargin       decimal.Decimal
	BandMaxMargin       decimal.Decimal
	BandSuggestedMargin decimal.Decimal

	Profitability ProfitabilityThresholds
	Validation    ValidationThresholds
}

// DefaultConfig returns the standard pricing tables
func DefaultConfig() *Config {
	return &Config{
		ComplexityMultipliers: map[entities.Complexity]decimal.Decimal{
			entities.Simple:  decimal.RequireFromString("1.0"),
			entities.Medium:  decimal.RequireFromString("1.5"),
			entities.Complex: decimal.RequireFromString("2.0"),
		},
		FallbackMultiplier: decimal.RequireFromString("1.5"),
		Overhead: OverheadRates{
			Energy:    decimal.RequireFromString("0.03"),
			Gas:       decimal.RequireFromString("0.02"),
			Packaging: decimal.RequireFromString("0.05"),
			Transport: decimal.RequireFromString("0.02"),
			Misc:      decimal.RequireFromString("0.01"),
		},
		RoundingIncrement: decimal.RequireFromString("0.50"),
		MarginSuggestions: map[entities.Complexity]decimal.Decimal{
			entities.Simple:  decimal.RequireFromString("0.40"),
			entities.Medium:  decimal.RequireFromString("0.60"),
			entities.Complex: decimal.RequireFromString("0.80"),
		},
		FallbackMargin:      decimal.RequireFromString("0.50"),
		BandMinMargin:       decimal.RequireFromString("0.30"),
		BandMaxMargin:       decimal.RequireFromString("1.00"),
		BandSuggestedMargin: decimal.RequireFromString("0.50"),
		Profitability: ProfitabilityThresholds{
			Good:      decimal.NewFromInt(30),
			Excellent: decimal.NewFromInt(60),
		},
		Validation: ValidationThresholds{
			LowMargin:  decimal.RequireFromString("0.20"),
			HighMargin: decimal.RequireFromString("1.50"),
			LaborRatio: decimal.NewFromInt(2),
		},
	}
}

// clone copies the maps so an Engine never shares them with its caller
func (c *Config) clone() Config {
	out := *c
	out.ComplexityMultipliers = cloneTable(c.ComplexityMultipliers)
	out.MarginSuggestions = cloneTable(c.MarginSuggestions)
	return out
}

func cloneTable(in map[entities.Complexity]decimal.Decimal) map[entities.Complexity]decimal.Decimal {
	out := make(map[entities.Complexity]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
