package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"streambuddy/internal/database"
	"streambuddy/internal/filesystem"
	"streambuddy/internal/handlers"
	"streambuddy/internal/logging"
	"streambuddy/internal/metrics"
	"streambuddy/internal/middleware"
	"streambuddy/internal/overlay"
	"streambuddy/internal/playback"
	"streambuddy/internal/playlist"
	"streambuddy/internal/rotation"
	"streambuddy/internal/startup"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	testMode := flag.Bool("test", false, "play every item for a few seconds only")
	configPath := flag.String("config", "", "path to a configuration file (default ./streambuddy.yaml)")
	flag.Parse()

	// Load configuration
	config, err := startup.LoadConfig(*configPath)
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	config.TestMode = *testMode

	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize history database
	var db *database.Database
	var collector *metrics.Collector
	if config.Database.Enabled {
		dbStart := time.Now()
		db, err = database.New(ctx, config.Database.Path)
		if err != nil {
			logging.Warn("Play history disabled: %v", err)
			db = nil
		} else {
			startup.LogDatabaseInit(time.Since(dbStart))
			collector = metrics.NewCollector(db, time.Minute)
			collector.Start()
		}
	}

	// Initialize sources
	episodes, err := playlist.Open(config.Episodes)
	if err != nil {
		startup.LogFatal("Episode source error: %v", err)
	}
	bumpers, err := playlist.Open(config.Bumpers)
	if err != nil {
		startup.LogFatal("Bumper source error: %v", err)
	}

	// Initialize player
	command := config.PlayerCommand()
	startup.LogPlayerInit(command, config.TestMode)
	player := playback.NewDriver(playback.NewProcessBackend(command), nil, config.PlaybackOptions())

	engineConfig := rotation.Config{
		Episodes:      episodes,
		Bumpers:       bumpers,
		Player:        player,
		Publisher:     newPublisher(config),
		Greeting:      config.Overlay.Greeting,
		Farewell:      config.Overlay.Farewell,
		TestMode:      config.TestMode,
		RetryInterval: config.Rotation.RetryInterval,
		Resume:        config.Rotation.Resume,
	}
	if db != nil {
		engineConfig.Recorder = db
		engineConfig.Cursor = db
	}

	// Watch the episode folder so an empty queue refills without waiting
	// out the retry interval.
	if _, isDir := episodes.(*playlist.DirectorySource); isDir && config.Rotation.Watch {
		watcher, watchErr := filesystem.NewWatcher(config.Episodes)
		startup.LogWatcherInit(config.Episodes, watchErr)
		if watchErr == nil {
			go watcher.Run(ctx)
			engineConfig.Changes = watcher.Changes()
		}
	}

	engine, err := rotation.NewEngine(ctx, engineConfig)
	if err != nil {
		startup.LogFatal("Failed to start rotation: %v", err)
	}
	state := engine.State()
	startup.LogRotationInit(len(state.Episodes), len(state.Bumpers), config.Rotation.Resume)

	// Status server
	var srv *http.Server
	if config.Status.Enabled {
		var history handlers.HistoryStore
		if db != nil {
			history = db
		}
		h := handlers.New(engine, history)

		router := setupRouter(h)
		startup.LogHTTPRoutes(router, config.Status.LogHealthChecks)

		srv = &http.Server{
			Addr:              ":" + config.Status.Port,
			Handler:           wrapHandler(router, config.Status.LogHealthChecks),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Status server error: %v", err)
			}
		}()
	}

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Status.Port,
		StatusEnabled:   config.Status.Enabled,
		StartupDuration: time.Since(startTime),
	})

	runErr := engine.Run(ctx)

	reason := "rotation stopped"
	if ctx.Err() != nil {
		reason = "signal received"
	}
	startup.LogShutdownInitiated(reason)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logging.Error("Rotation stopped: %v", runErr)
	}

	handleShutdown(srv, db, collector)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		os.Exit(1)
	}
}

func newPublisher(config *startup.Config) overlay.Publisher {
	publishers := []overlay.Publisher{
		overlay.NewFilePublisher(overlay.Paths{
			Last:    config.Overlay.LastFile,
			Current: config.Overlay.CurrentFile,
			Next:    config.Overlay.NextFile,
		}),
	}
	if config.Overlay.CardFile != "" {
		publishers = append(publishers, overlay.NewCardPublisher(config.Overlay.CardFile, overlay.DefaultCardOptions()))
		logging.Info("Overlay card: %s", filepath.Clean(config.Overlay.CardFile))
	}
	return overlay.Multi(publishers...)
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/now-playing", h.GetNowPlaying).Methods("GET")
	api.HandleFunc("/history", h.GetHistory).Methods("GET")

	r.Handle("/metrics", h.MetricsHandler()).Methods("GET")

	return r
}

func wrapHandler(router *mux.Router, logHealthChecks bool) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = logHealthChecks

	router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	return middleware.Logger(loggingConfig)(router)
}

func handleShutdown(srv *http.Server, db *database.Database, collector *metrics.Collector) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if srv != nil {
		startup.LogShutdownStep("Shutting down status server")
		if err := srv.Shutdown(ctx); err != nil {
			logging.Warn("Server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Status server stopped")
		}
	}

	if collector != nil {
		collector.Stop()
	}

	if db != nil {
		startup.LogShutdownStep("Closing history database")
		if err := db.Close(); err != nil {
			logging.Warn("Database close error: %v", err)
		} else {
			startup.LogShutdownStepComplete("History database closed")
		}
	}

	startup.LogShutdownComplete()
}
