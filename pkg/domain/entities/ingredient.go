package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MeasurementUnit is the unit an ingredient quantity is expressed in
type MeasurementUnit int

const (
	Gram MeasurementUnit = iota
	Milliliter
	Unit
)

// String method for MeasurementUnit enum
func (u MeasurementUnit) String() string {
	switch u {
	case Gram:
		return "g"
	case Milliliter:
		return "ml"
	case Unit:
		return "unit"
	default:
		return "Unknown"
	}
}

// MarshalText renders the unit by name in JSON and CSV output
func (u MeasurementUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// ParseMeasurementUnit parses a unit name such as "g", "ml" or "unit"
func ParseMeasurementUnit(s string) (MeasurementUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gram", "grams", "grama", "gramas":
		return Gram, nil
	case "ml", "milliliter", "milliliters", "mililitro", "mililitros":
		return Milliliter, nil
	case "unit", "units", "un", "unidade", "unidades", "ea":
		return Unit, nil
	default:
		return Gram, fmt.Errorf("invalid measurement unit: %s (expected g, ml or unit)", s)
	}
}

// Ingredient is a purchasable item. UnitPrice is the price of one Unit
// (one gram, one milliliter or one piece); callers normalize package prices
// before building ingredients.
type Ingredient struct {
	Name      string          `json:"name"`
	Unit      MeasurementUnit `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewIngredient creates a validated Ingredient
func NewIngredient(name string, unit MeasurementUnit, unitPrice decimal.Decimal) (*Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("ingredient name cannot be empty")
	}
	if unit < Gram || unit > Unit {
		return nil, fmt.Errorf("invalid measurement unit: %d", unit)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}

	return &Ingredient{
		Name:      name,
		Unit:      unit,
		UnitPrice: unitPrice,
	}, nil
}
