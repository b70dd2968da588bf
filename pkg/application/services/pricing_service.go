package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/application/dto"
	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/domain/repositories"
	"github.com/vsinha/patisserie/pkg/domain/services/costing"
	"github.com/vsinha/patisserie/pkg/infrastructure/events"
)

// PricingParams are the per-run inputs applied to every recipe priced
type PricingParams struct {
	LaborRate decimal.Decimal
	// Margin is the margin fraction to apply; nil means the engine suggests
	// one from the recipe complexity
	Margin           *decimal.Decimal
	Multiplier       decimal.Decimal
	IncludeTransport bool
	ScaleQuantities  []int
	Currency         string
}

// PricingService prices catalog recipes and assembles reports
type PricingService struct {
	engine  *costing.Engine
	recipes repositories.RecipeRepository
	logger  logr.Logger
	events  events.EventStore
	now     func() time.Time
}

// NewPricingService creates a pricing service over the given recipe catalog
func NewPricingService(engine *costing.Engine, recipes repositories.RecipeRepository, logger logr.Logger) *PricingService {
	if engine == nil {
		engine = costing.NewEngine(nil)
	}
	return &PricingService{
		engine:  engine,
		recipes: recipes,
		logger:  logger.WithName("pricing"),
		now:     time.Now,
	}
}

// NewPricingServiceWithEvents creates a pricing service that records every
// priced recipe and catalog run on store
func NewPricingServiceWithEvents(
	engine *costing.Engine,
	recipes repositories.RecipeRepository,
	logger logr.Logger,
	store events.EventStore,
) *PricingService {
	s := NewPricingService(engine, recipes, logger)
	s.events = store
	return s
}

// PriceHistory returns the recorded prices of a recipe, oldest first. It is
// empty when the service has no event store.
func (s *PricingService) PriceHistory(recipeName string) ([]events.RecipePriced, error) {
	if s.events == nil {
		return nil, nil
	}

	recorded, err := s.events.ReadStream(events.RecipeStream(recipeName), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read price history: %w", err)
	}

	history := make([]events.RecipePriced, 0, len(recorded))
	for _, event := range recorded {
		if priced, ok := event.Data.(events.RecipePriced); ok {
			history = append(history, priced)
		}
	}
	return history, nil
}

// PriceRecipe prices the named recipe
func (s *PricingService) PriceRecipe(ctx context.Context, name string, params PricingParams) (*dto.PricingReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetRecipe(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return s.price(recipe, params), nil
}

// PriceAll prices every recipe in catalog order
func (s *PricingService) PriceAll(ctx context.Context, params PricingParams) (*dto.PricingRun, error) {
	start := s.now()

	recipes, err := s.recipes.GetAllRecipes()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	run := &dto.PricingRun{
		Reports: make([]*dto.PricingReport, 0, len(recipes)),
	}
	for _, recipe := range recipes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.Reports = append(run.Reports, s.price(recipe, params))
	}
	run.Duration = s.now().Sub(start)

	s.record(events.CatalogStream, events.CatalogPricedEvent, events.CatalogPriced{
		Recipes:  len(run.Reports),
		Invalid:  run.InvalidCount(),
		Duration: run.Duration,
	})

	s.logger.V(1).Info("Priced catalog", "recipes", len(run.Reports), "invalid", run.InvalidCount(), "duration", run.Duration)
	return run, nil
}

func (s *PricingService) price(recipe *entities.Recipe, params PricingParams) *dto.PricingReport {
	margin := s.engine.SuggestMargin(recipe.Complexity)
	suggested := params.Margin == nil
	if !suggested {
		margin = *params.Margin
	}

	multiplier := params.Multiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	breakdown := s.engine.ComputeRecipePrice(costing.PriceRequest{
		Recipe:               recipe,
		HourlyLaborRate:      params.LaborRate,
		MarginFraction:       margin,
		ProductionMultiplier: multiplier,
		IncludeTransport:     params.IncludeTransport,
	})

	report := &dto.PricingReport{
		ID:              uuid.New(),
		GeneratedAt:     s.now(),
		RecipeName:      recipe.Name,
		Currency:        params.Currency,
		HourlyLaborRate: params.LaborRate,
		MarginSuggested: suggested,
		Breakdown:       breakdown,
		PricePerUnit:    s.engine.ComputePricePerUnit(recipe, params.LaborRate, margin, params.IncludeTransport),
		Band:            s.engine.DefaultCompetitiveBand(breakdown.TotalCost),
		Profitability:   s.engine.AnalyzeProfitability(breakdown.FinalPrice, breakdown.TotalCost),
		Validation:      s.engine.ValidateBreakdown(breakdown),
	}
	if len(params.ScaleQuantities) > 0 {
		report.Scale = s.engine.ComputeScaleEconomics(recipe, params.LaborRate, margin, params.ScaleQuantities)
	}

	stream := events.RecipeStream(recipe.Name)
	s.record(stream, events.RecipePricedEvent, events.RecipePriced{
		ReportID:       report.ID,
		RecipeName:     recipe.Name,
		TotalCost:      breakdown.TotalCost,
		MarginFraction: margin,
		FinalPrice:     breakdown.FinalPrice,
		Multiplier:     breakdown.ProductionMultiplier,
	})
	if !report.Validation.Valid {
		s.record(stream, events.BreakdownRejectedEvent, events.BreakdownRejected{
			ReportID:   report.ID,
			RecipeName: recipe.Name,
			Errors:     report.Validation.Errors,
		})
	}

	logger := s.logger.WithValues("recipe", recipe.Name)
	logger.V(1).Info("Priced recipe",
		"total_cost", breakdown.TotalCost.String(),
		"margin", margin.String(),
		"final_price", breakdown.FinalPrice.String())
	if !report.Validation.Valid {
		logger.Info("Breakdown failed validation", "errors", report.Validation.Errors)
	}

	return report
}

// record appends to the event store when one is configured. Pricing results
// never depend on it, so failures are only logged.
func (s *PricingService) record(streamID, eventType string, data any) {
	if s.events == nil {
		return
	}
	if _, err := s.events.Append(streamID, eventType, data); err != nil {
		s.logger.Error(err, "Failed to record pricing event", "type", eventType, "stream", streamID)
	}
}
