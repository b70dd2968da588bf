package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment variables read by Load
const (
	EnvLaborRate        = "PATISSERIE_LABOR_RATE"
	EnvMargin           = "PATISSERIE_MARGIN"
	EnvIncludeTransport = "PATISSERIE_INCLUDE_TRANSPORT"
	EnvCurrency         = "PATISSERIE_CURRENCY"
	EnvScaleQuantities  = "PATISSERIE_SCALE_QUANTITIES"
)

// DefaultCurrency is the currency label used when none is configured
const DefaultCurrency = "BRL"

// Settings are the pricing defaults a run starts from before flags are applied
type Settings struct {
	LaborRate        decimal.Decimal
	Margin           *decimal.Decimal // nil means suggest from complexity
	IncludeTransport bool
	Currency         string
	ScaleQuantities  []int
}

// Load reads the dotenv file at path into the process environment and then
// builds Settings from it. A missing dotenv file is not an error; variables
// already set in the environment win over the file.
func Load(path string) (*Settings, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	return FromEnv()
}

// FromEnv builds Settings from the current environment
func FromEnv() (*Settings, error) {
	settings := &Settings{
		LaborRate: decimal.Zero,
		Currency:  DefaultCurrency,
	}

	if v := strings.TrimSpace(os.Getenv(EnvLaborRate)); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", EnvLaborRate, v)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("%s cannot be negative, got %s", EnvLaborRate, v)
		}
		settings.LaborRate = rate
	}

	if v := strings.TrimSpace(os.Getenv(EnvMargin)); v != "" {
		margin, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", EnvMargin, v)
		}
		settings.Margin = &margin
	}

	if v := strings.TrimSpace(os.Getenv(EnvIncludeTransport)); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", EnvIncludeTransport, v)
		}
		settings.IncludeTransport = include
	}

	if v := strings.TrimSpace(os.Getenv(EnvCurrency)); v != "" {
		settings.Currency = strings.ToUpper(v)
	}

	if v := strings.TrimSpace(os.Getenv(EnvScaleQuantities)); v != "" {
		quantities, err := ParseQuantities(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvScaleQuantities, err)
		}
		settings.ScaleQuantities = quantities
	}

	return settings, nil
}

// ParseQuantities parses a comma separated list of batch counts such as "1,5,10"
func ParseQuantities(s string) ([]int, error) {
	var quantities []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		q, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("quantity %q is not an integer", part)
		}
		if q < 1 {
			return nil, fmt.Errorf("quantity must be at least 1, got %d", q)
		}
		quantities = append(quantities, q)
	}
	return quantities, nil
}
