package ledger

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/investboard/investboard/internal/domain"
)

// Handler handles ledger HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "ledger").Logger(),
	}
}

// HandleGetEvolution returns the cumulative cash-flow series for the
// patrimony line chart.
func (h *Handler) HandleGetEvolution(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.repo.All()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	points := BuildEvolution(transactions)
	if points == nil {
		points = []domain.EvolutionPoint{}
	}

	h.writeJSON(w, http.StatusOK, points)
}

// HandleGetTransactions returns the raw ledger, newest-last
func (h *Handler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.repo.All()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	h.writeJSON(w, http.StatusOK, transactions)
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
