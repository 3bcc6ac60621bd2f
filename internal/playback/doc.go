// Package playback plays one media file at a time on behalf of the rotation.
//
// A Backend opens a Session for a path; the Driver then polls the session
// until it reports that playback started and later that it stopped. In
// bounded (test) mode the Driver instead lets the session run for a fixed
// duration and stops it. All waiting goes through a Clock so that tests
// never sleep.
//
// ProcessBackend launches an external player (VLC by default) and treats
// process exit as end of playback. The media duration is resolved in the
// background with ffprobe and is unknown until that finishes.
//
// Start detection has no timeout. A file the player cannot open and never
// reports as started blocks the rotation; the Driver logs a warning every
// StallWarnAfter while that happens.
package playback
