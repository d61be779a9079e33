package valuation

import (
	"math"
	"testing"

	"github.com/investboard/investboard/internal/domain"
)

func TestProfitability_ZeroCostIsZero(t *testing.T) {
	tests := []struct {
		name     string
		position domain.Position
	}{
		{"zero quantity", domain.Position{ID: "a", Quantity: 0, PurchasePrice: 30}},
		{"zero price", domain.Position{ID: "b", Quantity: 100, PurchasePrice: 0}},
		{"zero both", domain.Position{ID: "c", Quantity: 0, PurchasePrice: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Profitability(tt.position, map[string]float64{tt.position.ID: 50})
			if got != 0 {
				t.Errorf("Expected 0, got %v", got)
			}
			if math.IsNaN(got) {
				t.Error("Profitability must never be NaN")
			}
		})
	}
}

func TestProfitAndProfitability(t *testing.T) {
	p := domain.Position{ID: "a", Type: domain.AssetStock, Symbol: "PETR4", Quantity: 100, PurchasePrice: 30}
	quotes := map[string]float64{"a": 30.2}

	profit := Profit(p, quotes)
	if math.Abs(profit-20.0) > 1e-9 {
		t.Errorf("Expected profit 20, got %v", profit)
	}

	profitability := Profitability(p, quotes)
	if math.Abs(profitability-20.0/3000.0) > 1e-12 {
		t.Errorf("Expected profitability %v, got %v", 20.0/3000.0, profitability)
	}
}

func TestPriceOf_FallsBackToPurchasePrice(t *testing.T) {
	p := domain.Position{ID: "a", PurchasePrice: 30}

	if got := PriceOf(map[string]float64{}, p); got != 30 {
		t.Errorf("Expected fallback 30, got %v", got)
	}
	if got := PriceOf(map[string]float64{"a": 31.5}, p); got != 31.5 {
		t.Errorf("Expected quote 31.5, got %v", got)
	}
}

func TestByType_PartitionSumsToTotalCurrentValue(t *testing.T) {
	positions := []domain.Position{
		{ID: "a", Type: domain.AssetStock, Quantity: 100, PurchasePrice: 30},
		{ID: "b", Type: domain.AssetCrypto, Quantity: 0.5, PurchasePrice: 200000},
		{ID: "c", Type: domain.AssetStock, Quantity: 10, PurchasePrice: 15},
		{ID: "d", Type: domain.AssetFixedIncome, Quantity: 1, PurchasePrice: 5000},
	}
	// One quote missing so the fallback path is part of the sum
	quotes := map[string]float64{"a": 31.2, "b": 198000, "d": 5050}

	byType := ByType(positions, quotes)
	totals := ComputeTotals(positions, quotes)

	sum := 0.0
	for _, v := range byType {
		sum += v
	}
	if math.Abs(sum-totals.CurrentValue) > 1e-6 {
		t.Errorf("Partition sum %v != total current value %v", sum, totals.CurrentValue)
	}
}

func TestByType_EveryTypePresentEvenWhenEmpty(t *testing.T) {
	byType := ByType(nil, nil)

	if len(byType) != len(domain.AllAssetTypes()) {
		t.Fatalf("Expected %d entries, got %d", len(domain.AllAssetTypes()), len(byType))
	}
	for _, assetType := range domain.AllAssetTypes() {
		v, ok := byType[assetType]
		if !ok {
			t.Errorf("Missing entry for %s", assetType)
		}
		if v != 0 {
			t.Errorf("Expected 0 for %s, got %v", assetType, v)
		}
	}
}

func TestComputeTotals_EmptyPortfolio(t *testing.T) {
	totals := ComputeTotals(nil, nil)
	if totals.Invested != 0 || totals.CurrentValue != 0 || totals.Profit != 0 {
		t.Errorf("Expected all-zero totals, got %+v", totals)
	}
}

func TestDailyVariation(t *testing.T) {
	variation := DailyVariation(Totals{Invested: 3000, CurrentValue: 3020, Profit: 20})
	if variation.Value != 20 {
		t.Errorf("Expected value 20, got %v", variation.Value)
	}
	if math.Abs(variation.Percentage-20.0/3000.0*100) > 1e-9 {
		t.Errorf("Expected percentage %v, got %v", 20.0/3000.0*100, variation.Percentage)
	}

	// Nothing invested: percentage is defined as 0, never NaN
	empty := DailyVariation(Totals{})
	if empty.Value != 0 || empty.Percentage != 0 {
		t.Errorf("Expected zero variation, got %+v", empty)
	}
}

func TestBuildSummary_Example(t *testing.T) {
	positions := []domain.Position{
		{ID: "a", Type: domain.AssetStock, Symbol: "PETR4", Quantity: 100, PurchasePrice: 30, PurchaseDate: "2024-01-01"},
	}
	quotes := map[string]float64{"a": 30}

	summary := BuildSummary(positions, quotes)

	if summary.TotalInvested != 3000 {
		t.Errorf("Expected totalInvested 3000, got %v", summary.TotalInvested)
	}
	if summary.TotalByType[domain.AssetStock] != 3000 {
		t.Errorf("Expected STOCK 3000, got %v", summary.TotalByType[domain.AssetStock])
	}
	if summary.AssetCount != 1 {
		t.Errorf("Expected assetCount 1, got %d", summary.AssetCount)
	}
}
