// Package main provides the entry point for StreamBuddy.
//
// StreamBuddy drives a continuous TV-style stream: it alternates short
// bumper clips with episodes from a folder or XSPF playlist, plays each one
// through an external player, and keeps a set of overlay files (last,
// current, next) up to date for the streaming software to display.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads streambuddy.yaml and STREAMBUDDY_*
//     environment variables, validates sources and overlay directories
//  2. History Database: Opens the SQLite play history (optional)
//  3. Component Initialization:
//     - Sources: episode folder or playlist, bumper folder, playlist or file
//     - Player: external process driven until each file finishes
//     - Folder Watcher: wakes an idle rotation when episodes appear
//     - Rotation Engine: loads both queues, resumes a saved position
//  4. Status Server: health, now-playing, history and Prometheus metrics
//  5. Graceful Shutdown: SIGINT/SIGTERM stops the player and the server
//
// # Flags
//
//	--test     play each item for a few seconds only
//	--config   configuration file path
package main
