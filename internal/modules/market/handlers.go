package market

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles quote HTTP requests
type Handler struct {
	feed *Feed
	log  zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(feed *Feed, log zerolog.Logger) *Handler {
	return &Handler{
		feed: feed,
		log:  log.With().Str("handler", "market").Logger(),
	}
}

// HandleGetQuotes returns the current simulated prices keyed by
// position id, tagged with the snapshot version so clients can drop
// stale responses.
func (h *Handler) HandleGetQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, version := h.feed.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"version": version,
		"prices":  quotes,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
