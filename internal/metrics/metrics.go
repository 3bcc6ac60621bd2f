package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rotation metrics
var (
	AiringsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_airings_total",
			Help: "Total number of items handed to the player",
		},
		[]string{"kind", "status"},
	)

	PlaybackDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streambuddy_playback_duration_seconds",
			Help:    "Wall-clock playback time per item in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 300, 900, 1800, 3600, 7200},
		},
		[]string{"kind"},
	)

	PlaybackStartWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streambuddy_playback_start_wait_seconds",
			Help:    "Time between launching the player and playback being reported as started",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	EpisodeReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_episode_reloads_total",
			Help: "Total number of episode queue reloads by outcome",
		},
		[]string{"status"},
	)

	EpisodeQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streambuddy_episode_queue_length",
			Help: "Number of episodes in the current pass",
		},
	)

	EpisodeIndex = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streambuddy_episode_index",
			Help: "Episode cursor after the most recent step",
		},
	)

	BumperIndex = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streambuddy_bumper_index",
			Help: "Bumper cursor after the most recent step",
		},
	)
)

// Overlay metrics
var (
	OverlayWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_overlay_writes_total",
			Help: "Total number of overlay publishes by target and status",
		},
		[]string{"target", "status"},
	)
)

// Library metrics
var (
	FolderEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_folder_events_total",
			Help: "Filesystem events observed in the watched episode folder",
		},
		[]string{"op"},
	)

	HistoryAiringsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "streambuddy_history_airings",
			Help: "Airings recorded in the history database",
		},
		[]string{"kind"},
	)

	HistoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_history_writes_total",
			Help: "History database writes by status",
		},
		[]string{"status"},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_db_query_total",
			Help: "Total number of history database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streambuddy_db_query_duration_seconds",
			Help:    "History database query duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streambuddy_db_connections_open",
			Help: "Open connections to the history database",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_filesystem_retry_attempts_total",
			Help: "Filesystem operations retried after a transient error",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_filesystem_retry_success_total",
			Help: "Filesystem operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_filesystem_retry_failures_total",
			Help: "Filesystem operations that failed after exhausting retries",
		},
		[]string{"operation"},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streambuddy_http_requests_total",
			Help: "Total number of status API requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streambuddy_http_request_duration_seconds",
			Help:    "Status API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
