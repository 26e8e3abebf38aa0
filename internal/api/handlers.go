package api

import (
	"context"
	"encoding/json"
	"net/http"

	"signup_pulse/internal/summary"

	"github.com/rs/zerolog/log"
)

// SummaryProvider is the slice of the summary service the API needs.
type SummaryProvider interface {
	GetSummary(ctx context.Context) (summary.Summary, error)
}

type Handlers struct {
	summaries SummaryProvider
}

func NewHandlers(summaries SummaryProvider) *Handlers {
	return &Handlers{summaries: summaries}
}

// GetSummary serves the aggregated signup summary. Upstream failures are
// logged in full but collapse to a generic error for the client.
func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaries.GetSummary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load sheet data")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to load sheet data",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Health reports server liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
