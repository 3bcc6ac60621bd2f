package handlers

import (
	"net/http"
	"time"

	"streambuddy/internal/rotation"
	"streambuddy/internal/title"
)

// NowPlayingResponse is the body of GET /api/now-playing.
type NowPlayingResponse struct {
	rotation.Snapshot
	NowPlayingTitle string  `json:"nowPlayingTitle,omitempty"`
	ElapsedSeconds  float64 `json:"elapsedSeconds,omitempty"`
}

// GetNowPlaying returns the overlay titles and the item on air.
func (h *Handlers) GetNowPlaying(w http.ResponseWriter, _ *http.Request) {
	if h.status == nil {
		writeJSONError(w, "rotation not started", http.StatusServiceUnavailable)
		return
	}

	snap := h.status.Snapshot()
	response := NowPlayingResponse{Snapshot: snap}
	if snap.NowPlaying != "" {
		response.NowPlayingTitle = title.FromPath(snap.NowPlaying)
	}
	if snap.StartedAt != nil {
		response.ElapsedSeconds = time.Since(*snap.StartedAt).Seconds()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, response)
}
