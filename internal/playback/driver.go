package playback

import (
	"context"
	"fmt"
	"time"

	"streambuddy/internal/logging"
	"streambuddy/internal/metrics"
)

// Session is one playback of one file.
type Session interface {
	// Started reports whether the backend has begun playing.
	Started() bool
	// Playing reports whether playback is still in progress.
	Playing() bool
	// Duration returns the media length in seconds once it is known.
	Duration() (float64, bool)
	// Stop ends playback. It is safe to call more than once.
	Stop() error
}

// Backend opens playback sessions.
type Backend interface {
	Open(ctx context.Context, path string) (Session, error)
}

// Options tune the Driver's polling.
type Options struct {
	PollInterval   time.Duration
	TestDuration   time.Duration
	StallWarnAfter time.Duration
}

// DefaultOptions polls twice a second and bounds test plays to five seconds.
func DefaultOptions() Options {
	return Options{
		PollInterval:   500 * time.Millisecond,
		TestDuration:   5 * time.Second,
		StallWarnAfter: 30 * time.Second,
	}
}

// Driver plays files to completion through a Backend.
type Driver struct {
	backend Backend
	clock   Clock
	opts    Options
}

// NewDriver creates a Driver. A nil clock uses RealClock and zero options
// fall back to DefaultOptions.
func NewDriver(backend Backend, clock Clock, opts Options) *Driver {
	if clock == nil {
		clock = RealClock{}
	}
	defaults := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaults.PollInterval
	}
	if opts.TestDuration <= 0 {
		opts.TestDuration = defaults.TestDuration
	}
	if opts.StallWarnAfter <= 0 {
		opts.StallWarnAfter = defaults.StallWarnAfter
	}
	return &Driver{backend: backend, clock: clock, opts: opts}
}

// Play blocks until path has finished playing. With bounded set, playback is
// cut off after the configured test duration regardless of media length.
// The session is always stopped before Play returns.
func (d *Driver) Play(ctx context.Context, path string, bounded bool) error {
	logging.Info("Attempting to play video: %s", path)

	session, err := d.backend.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to start playback of %s: %w", path, err)
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			logging.Debug("Stopping playback of %s: %v", path, stopErr)
		}
	}()

	if bounded {
		logging.Info("Test mode active. Playing video for %v only.", d.opts.TestDuration)
		return d.clock.Sleep(ctx, d.opts.TestDuration)
	}

	if err := d.waitForStart(ctx, path, session); err != nil {
		return err
	}

	return d.waitForEnd(ctx, path, session)
}

func (d *Driver) waitForStart(ctx context.Context, path string, session Session) error {
	begin := d.clock.Now()
	lastWarn := begin

	for !session.Started() {
		if err := d.clock.Sleep(ctx, d.opts.PollInterval); err != nil {
			return err
		}
		if now := d.clock.Now(); now.Sub(lastWarn) >= d.opts.StallWarnAfter {
			logging.Warn("Playback of %s has not started after %v", path, now.Sub(begin).Round(time.Second))
			lastWarn = now
		}
	}

	metrics.PlaybackStartWait.Observe(d.clock.Now().Sub(begin).Seconds())
	return nil
}

func (d *Driver) waitForEnd(ctx context.Context, path string, session Session) error {
	reported := false

	for session.Playing() {
		if !reported {
			if seconds, ok := session.Duration(); ok {
				logging.Info("Video duration: %.2f seconds", seconds)
				reported = true
			}
		}
		if err := d.clock.Sleep(ctx, d.opts.PollInterval); err != nil {
			return err
		}
	}

	logging.Debug("Playback of %s finished", path)
	return nil
}
