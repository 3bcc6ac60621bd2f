package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"streambuddy/internal/handlers"
	"streambuddy/internal/overlay"
	"streambuddy/internal/rotation"
	"streambuddy/internal/startup"
)

type staticStatus struct{}

func (staticStatus) Snapshot() rotation.Snapshot {
	return rotation.Snapshot{
		Titles:       overlay.Titles{Last: "Welcome", Current: "Show - Pilot", Next: "Show - Second"},
		NowPlaying:   "/tv/Show - S01E01 - Pilot.mkv",
		Kind:         rotation.KindEpisode,
		EpisodeCount: 2,
		BumperCount:  1,
	}
}

func TestSetupRouter(t *testing.T) {
	handler := wrapHandler(setupRouter(handlers.New(staticStatus{}, nil)), false)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/livez", http.StatusOK},
		{"HEAD", "/livez", http.StatusOK},
		{"GET", "/version", http.StatusOK},
		{"GET", "/api/now-playing", http.StatusOK},
		{"GET", "/api/history", http.StatusServiceUnavailable},
		{"GET", "/metrics", http.StatusOK},
		{"POST", "/api/now-playing", http.StatusMethodNotAllowed},
		{"GET", "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestSetupRouterRoutesAreListed(t *testing.T) {
	routes, err := startup.GetRoutes(setupRouter(handlers.New(staticStatus{}, nil)))
	if err != nil {
		t.Fatalf("GetRoutes() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, r := range routes {
		seen[r.Path] = true
	}
	for _, path := range []string{"/health", "/livez", "/version", "/api/now-playing", "/api/history", "/metrics"} {
		if !seen[path] {
			t.Errorf("route %s not registered", path)
		}
	}
}

func TestNewPublisher(t *testing.T) {
	dir := t.TempDir()
	config := &startup.Config{
		Overlay: startup.OverlayConfig{
			LastFile:    filepath.Join(dir, "last.txt"),
			CurrentFile: filepath.Join(dir, "current.txt"),
			NextFile:    filepath.Join(dir, "next.txt"),
			CardFile:    filepath.Join(dir, "card.png"),
		},
	}

	if err := newPublisher(config).Publish(overlay.Titles{Current: "Show - Pilot"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for _, name := range []string{"last.txt", "current.txt", "next.txt", "card.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
