package handlers

import (
	"net/http"
	"runtime"
	"time"

	"streambuddy/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	NowPlaying   string `json:"nowPlaying,omitempty"`
	EpisodeCount int    `json:"episodeCount"`
	BumperCount  int    `json:"bumperCount"`
	History      bool   `json:"history"`

	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports whether the rotation has something to play. With no
// episodes loaded the service is degraded; before the engine exists it is
// still starting.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		History:      h.history != nil,
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	code := http.StatusOK
	switch {
	case h.status == nil:
		response.Status = statusStarting
		code = http.StatusServiceUnavailable
	default:
		snap := h.status.Snapshot()
		response.NowPlaying = snap.NowPlaying
		response.EpisodeCount = snap.EpisodeCount
		response.BumperCount = snap.BumperCount
		response.Status = statusHealthy
		if snap.EpisodeCount == 0 {
			response.Status = statusDegraded
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}
