package handlers

import (
	"net/http"
	"strconv"

	"streambuddy/internal/database"
	"streambuddy/internal/logging"
)

const defaultHistoryLimit = 20

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Airings []database.Airing     `json:"airings"`
	Stats   database.HistoryStats `json:"stats"`
}

// GetHistory returns the most recent airings, newest first. The optional
// limit query parameter must be a positive integer.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSONError(w, "history is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, database.MaxHistoryLimit)
	}

	airings, err := h.history.RecentAirings(r.Context(), limit)
	if err != nil {
		logging.Error("Failed to read history: %v", err)
		writeJSONError(w, "failed to read history", http.StatusInternalServerError)
		return
	}

	stats, err := h.history.HistoryStats(r.Context())
	if err != nil {
		logging.Error("Failed to read history stats: %v", err)
		writeJSONError(w, "failed to read history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, HistoryResponse{Airings: airings, Stats: stats})
}
