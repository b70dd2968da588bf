package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIngredient_Validation(t *testing.T) {
	valid, err := NewIngredient("Condensed milk", Gram, decimal.RequireFromString("0.01"))
	if err != nil {
		t.Fatalf("Expected valid ingredient creation to succeed: %v", err)
	}
	if valid.Name != "Condensed milk" {
		t.Errorf("Expected name Condensed milk, got %s", valid.Name)
	}

	free, err := NewIngredient("Water", Milliliter, decimal.Zero)
	if err != nil {
		t.Fatalf("Expected zero-priced ingredient to be accepted: %v", err)
	}
	if !free.UnitPrice.IsZero() {
		t.Errorf("Expected zero unit price, got %s", free.UnitPrice)
	}

	testCases := []struct {
		name        string
		ingName     string
		unit        MeasurementUnit
		price       decimal.Decimal
		expectError string
	}{
		{"empty name", "", Gram, decimal.NewFromInt(1), "ingredient name cannot be empty"},
		{"blank name", "   ", Gram, decimal.NewFromInt(1), "ingredient name cannot be empty"},
		{"unknown unit", "Sugar", MeasurementUnit(9), decimal.NewFromInt(1), "invalid measurement unit: 9"},
		{"negative price", "Sugar", Gram, decimal.RequireFromString("-0.5"), "unit price cannot be negative, got -0.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIngredient(tc.ingName, tc.unit, tc.price)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestParseMeasurementUnit(t *testing.T) {
	testCases := []struct {
		input string
		want  MeasurementUnit
	}{
		{"g", Gram},
		{"Gramas", Gram},
		{" ml ", Milliliter},
		{"unidade", Unit},
		{"EA", Unit},
	}

	for _, tc := range testCases {
		got, err := ParseMeasurementUnit(tc.input)
		if err != nil {
			t.Errorf("ParseMeasurementUnit(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMeasurementUnit(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseMeasurementUnit("cup"); err == nil {
		t.Error("Expected error for unsupported unit cup")
	}
}

func TestMeasurementUnit_String(t *testing.T) {
	if Gram.String() != "g" || Milliliter.String() != "ml" || Unit.String() != "unit" {
		t.Errorf("Unexpected unit names: %s %s %s", Gram, Milliliter, Unit)
	}
	if MeasurementUnit(42).String() != "Unknown" {
		t.Errorf("Expected Unknown for undefined unit, got %s", MeasurementUnit(42))
	}
}
