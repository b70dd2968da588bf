package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/infrastructure/events"
	testhelpers "github.com/vsinha/patisserie/pkg/infrastructure/testing"
)

func benchmarkParams() PricingParams {
	return PricingParams{
		LaborRate:       decimal.NewFromInt(25),
		ScaleQuantities: []int{1, 5, 10},
		Currency:        "BRL",
	}
}

func BenchmarkPricingService_SingleRecipe(b *testing.B) {
	ctx := context.Background()
	_, recipeRepo := testhelpers.BuildBakeryTestData()
	service := NewPricingService(nil, recipeRepo, logr.Discard())
	params := benchmarkParams()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.PriceRecipe(ctx, "Bolo de rolo", params); err != nil {
			b.Fatalf("PriceRecipe failed: %v", err)
		}
	}
}

func BenchmarkPricingService_Catalog(b *testing.B) {
	for _, size := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("recipes=%d", size), func(b *testing.B) {
			ctx := context.Background()
			_, recipeRepo := testhelpers.BuildLargeTestData(size)
			service := NewPricingService(nil, recipeRepo, logr.Discard())
			params := benchmarkParams()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := service.PriceAll(ctx, params); err != nil {
					b.Fatalf("PriceAll failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkPricingService_CatalogWithEvents(b *testing.B) {
	ctx := context.Background()
	_, recipeRepo := testhelpers.BuildLargeTestData(1000)
	params := benchmarkParams()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// fresh store per iteration so stream growth does not skew results
		store := events.NewInMemoryEventStore(logr.Discard())
		service := NewPricingServiceWithEvents(nil, recipeRepo, logr.Discard(), store)
		if _, err := service.PriceAll(ctx, params); err != nil {
			b.Fatalf("PriceAll failed: %v", err)
		}
	}
}

func TestPricingService_LargeCatalog(t *testing.T) {
	_, recipeRepo := testhelpers.BuildLargeTestData(300)
	service := NewPricingService(nil, recipeRepo, logr.Discard())

	run, err := service.PriceAll(context.Background(), benchmarkParams())
	if err != nil {
		t.Fatalf("PriceAll failed: %v", err)
	}

	if len(run.Reports) != 300 {
		t.Fatalf("Expected 300 reports, got %d", len(run.Reports))
	}
	if run.InvalidCount() != 0 {
		t.Errorf("Expected every generated recipe to validate, got %d invalid", run.InvalidCount())
	}
	for _, report := range run.Reports {
		if report.Breakdown.FinalPrice.LessThan(report.Breakdown.TotalCost) {
			t.Errorf("%s: final price %s below total cost %s",
				report.RecipeName, report.Breakdown.FinalPrice, report.Breakdown.TotalCost)
		}
		if len(report.Scale) != 3 {
			t.Errorf("%s: expected 3 scale entries, got %d", report.RecipeName, len(report.Scale))
		}
	}
}
