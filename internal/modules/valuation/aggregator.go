package valuation

import (
	"math"

	"github.com/investboard/investboard/internal/domain"
)

// Pure valuation math over a {positions, quotes} snapshot. Nothing in
// this file holds state: every figure the dashboard shows is recomputed
// from the latest snapshot, so there is no derived state to invalidate.

// Totals are the portfolio-wide figures
type Totals struct {
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"currentValue"`
	Profit       float64 `json:"profit"`
}

// Variation is the headline "daily variation" card. Despite the name
// it is the point-in-time total profit and its share of invested cost,
// not a since-yesterday delta; the engine never tracks a previous day.
type Variation struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Summary is the dashboard's summary payload, exact shape
type Summary struct {
	TotalInvested float64                      `json:"totalInvested"`
	TotalByType   map[domain.AssetType]float64 `json:"totalByType"`
	AssetCount    int                          `json:"assetCount"`
}

// PriceOf resolves the current price for a position: the quote when
// one exists, the purchase price otherwise. A freshly created position
// must be valued before its first tick.
func PriceOf(quotes map[string]float64, p domain.Position) float64 {
	if price, ok := quotes[p.ID]; ok {
		return price
	}
	return p.PurchasePrice
}

// Profit returns the unrealized profit of a single position
func Profit(p domain.Position, quotes map[string]float64) float64 {
	return (PriceOf(quotes, p) - p.PurchasePrice) * p.Quantity
}

// Profitability returns profit relative to invested cost, as a ratio.
// A zero-cost position has profitability 0, never NaN.
func Profitability(p domain.Position, quotes map[string]float64) float64 {
	cost := p.Cost()
	if cost == 0 {
		return 0
	}
	return Profit(p, quotes) / cost
}

// ComputeTotals sums invested cost, current market value and profit
// over the snapshot. All three are 0 for an empty portfolio.
func ComputeTotals(positions []domain.Position, quotes map[string]float64) Totals {
	var t Totals
	for _, p := range positions {
		t.Invested += p.Cost()
		t.CurrentValue += PriceOf(quotes, p) * p.Quantity
	}
	t.Profit = t.CurrentValue - t.Invested
	return t
}

// ByType sums current market value per asset type. Every type appears
// in the result, zero when nothing of that type is held, so the UI can
// render a zero card instead of a missing one. The per-type values
// always partition ComputeTotals().CurrentValue.
func ByType(positions []domain.Position, quotes map[string]float64) map[domain.AssetType]float64 {
	byType := make(map[domain.AssetType]float64, len(domain.AllAssetTypes()))
	for _, t := range domain.AllAssetTypes() {
		byType[t] = 0
	}

	for _, p := range positions {
		byType[p.Type] += PriceOf(quotes, p) * p.Quantity
	}
	return byType
}

// DailyVariation derives the variation card from the totals,
// percentage defined as 0 when nothing is invested.
func DailyVariation(t Totals) Variation {
	v := Variation{Value: t.Profit}
	if t.Invested != 0 {
		v.Percentage = t.Profit / t.Invested * 100
	}
	return v
}

// BuildSummary assembles the summary payload
func BuildSummary(positions []domain.Position, quotes map[string]float64) Summary {
	return Summary{
		TotalInvested: ComputeTotals(positions, quotes).Invested,
		TotalByType:   ByType(positions, quotes),
		AssetCount:    len(positions),
	}
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
