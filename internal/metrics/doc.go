// Package metrics provides Prometheus instrumentation for StreamBuddy.
//
// All metrics are prefixed with "streambuddy_" and registered through
// promauto on the default registry, so the status server only needs to mount
// promhttp.Handler().
//
// # Metric Categories
//
// ## Rotation
//   - AiringsTotal: items played, by kind (episode/bumper) and status
//   - PlaybackDuration: wall-clock seconds per airing, by kind
//   - PlaybackStartWait: seconds between launch and the first "started" poll
//   - EpisodeReloadsTotal: episode queue reloads by outcome
//   - EpisodeQueueLength, EpisodeIndex, BumperIndex: current rotation cursor
//
// ## Overlay
//   - OverlayWritesTotal: title publishes by target (text/card) and status
//
// ## Library
//   - FolderEventsTotal: fsnotify events seen in the episode folder
//   - HistoryAiringsTotal: airings recorded in the history database, by kind
//
// ## Filesystem
//   - FilesystemRetryAttempts, FilesystemRetrySuccess, FilesystemRetryFailures
//
// ## HTTP
//   - HTTPRequestsTotal, HTTPRequestDuration for the status API
//
// Call InitializeMetrics once at startup so every label combination is
// exported from the first scrape.
package metrics
