package valuation

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/investboard/investboard/internal/domain"
)

// PositionLister supplies the current position snapshot
type PositionLister interface {
	List() ([]domain.Position, error)
}

// QuoteSource supplies the current simulated quotes
type QuoteSource interface {
	Snapshot() (map[string]float64, uint64)
}

// Handler handles summary and valuation HTTP requests
type Handler struct {
	positions PositionLister
	quotes    QuoteSource
	log       zerolog.Logger
}

// NewHandler creates a new valuation handler
func NewHandler(positions PositionLister, quotes QuoteSource, log zerolog.Logger) *Handler {
	return &Handler{
		positions: positions,
		quotes:    quotes,
		log:       log.With().Str("handler", "valuation").Logger(),
	}
}

// HandleGetSummary returns {totalInvested, totalByType, assetCount}
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positions.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	quotes, _ := h.quotes.Snapshot()
	summary := BuildSummary(positions, quotes)
	summary.TotalInvested = round(summary.TotalInvested, 2)
	for t, v := range summary.TotalByType {
		summary.TotalByType[t] = round(v, 2)
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleGetValuation returns the full derived view: per-position
// profit and profitability, totals, per-type current values and the
// variation card, tagged with the quote snapshot version.
func (h *Handler) HandleGetValuation(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positions.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	quotes, version := h.quotes.Snapshot()
	totals := ComputeTotals(positions, quotes)
	variation := DailyVariation(totals)

	items := make([]map[string]interface{}, 0, len(positions))
	for _, p := range positions {
		currentPrice := PriceOf(quotes, p)
		items = append(items, map[string]interface{}{
			"id":            p.ID,
			"type":          p.Type,
			"symbol":        p.Symbol,
			"quantity":      p.Quantity,
			"purchasePrice": p.PurchasePrice,
			"purchaseDate":  p.PurchaseDate,
			"currentPrice":  round(currentPrice, 2),
			"currentValue":  round(currentPrice*p.Quantity, 2),
			"profit":        round(Profit(p, quotes), 2),
			"profitability": round(Profitability(p, quotes)*100, 2),
		})
	}

	byType := ByType(positions, quotes)
	for t, v := range byType {
		byType[t] = round(v, 2)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":   version,
		"positions": items,
		"totals": Totals{
			Invested:     round(totals.Invested, 2),
			CurrentValue: round(totals.CurrentValue, 2),
			Profit:       round(totals.Profit, 2),
		},
		"byType": byType,
		"dailyVariation": Variation{
			Value:      round(variation.Value, 2),
			Percentage: round(variation.Percentage, 2),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
