package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/health", nil).Methods("GET", "HEAD")
	router.HandleFunc("/api/now-playing", nil).Methods("GET")
	router.Handle("/metrics", nil)

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes() error = %v", err)
	}

	if len(routes) != 4 {
		t.Fatalf("GetRoutes() returned %d routes, want 4: %+v", len(routes), routes)
	}

	found := map[string]bool{}
	for _, r := range routes {
		found[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{"GET /health", "HEAD /health", "GET /api/now-playing", "* /metrics"} {
		if !found[want] {
			t.Errorf("missing route %q in %+v", want, routes)
		}
	}
}

func TestEnsureDirectory(t *testing.T) {
	dir := t.TempDir()

	created := filepath.Join(dir, "a", "b")
	if err := ensureDirectory(created, "test"); err != nil {
		t.Fatalf("ensureDirectory() error = %v", err)
	}
	if info, err := os.Stat(created); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureDirectory(file, "test"); err == nil {
		t.Error("expected error when the path is a file")
	}
}

func TestTestWriteAccess(t *testing.T) {
	dir := t.TempDir()
	if err := testWriteAccess(dir); err != nil {
		t.Errorf("testWriteAccess() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("write test file was left behind")
	}
	if err := testWriteAccess(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestLoggingHelpersDoNotPanic(_ *testing.T) {
	LogDatabaseInit(0)
	LogRotationInit(3, 1, true)
	LogWatcherInit("/tv", nil)
	LogWatcherInit("/tv", os.ErrNotExist)
	LogPlayerInit(nil, true)
	LogPlayerInit([]string{"streambuddy-no-such-player"}, false)
	LogHTTPRoutes(mux.NewRouter(), false)
	LogServerStarted(ServerConfig{Port: "8089", StatusEnabled: true})
	LogServerStarted(ServerConfig{})
	LogShutdownInitiated("SIGTERM")
	LogShutdownStep("Stopping rotation")
	LogShutdownStepComplete("Rotation stopped")
	LogShutdownComplete()
}
