// Package startup handles configuration loading and startup/shutdown
// logging.
//
// # Configuration
//
// [LoadConfig] reads configuration with viper. Values come from, in order of
// precedence, environment variables prefixed with STREAMBUDDY_ (dots become
// underscores, so overlay.current_file is STREAMBUDDY_OVERLAY_CURRENT_FILE),
// an optional YAML file (streambuddy.yaml in the working directory, or the
// path given with --config), and built-in defaults:
//
//   - episodes: episode folder or .xspf playlist (default: ./episodes)
//   - bumpers: bumper folder, .xspf playlist or single video (default: ./bumpers)
//   - overlay.last_file, overlay.current_file, overlay.next_file: overlay text
//     files (default: ./overlay/last.txt, current.txt, next.txt)
//   - overlay.card_file: optional PNG title card (default: disabled)
//   - overlay.greeting, overlay.farewell: text used when there is no previous
//     or next episode
//   - player.command: player command line, the file path is appended
//     (default: cvlc --play-and-exit --fullscreen --no-video-title-show --quiet)
//   - player.test_command: player used with --test (default: windowed cvlc)
//   - player.poll_interval, player.test_duration, player.stall_warn_after
//   - rotation.retry_interval: wait after an empty or failed reload (default: 30s)
//   - rotation.resume: continue from the saved position (default: false)
//   - rotation.watch: reload early when the episode folder changes (default: true)
//   - database.enabled, database.path: play history (default: ./data/streambuddy.db)
//   - status.enabled, status.port, status.log_health_checks: status API
//   - log_level: debug, info, warn, error
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
// The Log* functions print the sectioned startup and shutdown report.
package startup
