// Package logging provides a small leveled logger for StreamBuddy.
//
// Levels, lowest first:
//   - DEBUG: poll ticks, per-file scan decisions
//   - INFO: rotation progress (titles published, items played, reloads)
//   - WARN: recoverable problems (overlay write failures, reload retries)
//   - ERROR: playback failures the rotation skips past
//   - FATAL: startup errors that terminate the process
//
// The initial level comes from DEBUG=true or LOG_LEVEL. The configuration
// loader may override it with SetLevel once the config file has been read.
package logging
