package rotation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"streambuddy/internal/logging"
	"streambuddy/internal/metrics"
	"streambuddy/internal/overlay"
	"streambuddy/internal/playback"
	"streambuddy/internal/playlist"
)

var (
	// ErrConfiguration marks problems that prevent the rotation from starting.
	ErrConfiguration = errors.New("rotation configuration error")
	// ErrNoEpisodes is returned by Step when a reload found nothing to play.
	ErrNoEpisodes = errors.New("no episodes available")
	// ErrReload is returned by Step when the episode source could not be read.
	ErrReload = errors.New("episode reload failed")
)

// Kind distinguishes bumpers from episodes in history and metrics.
type Kind string

const (
	KindBumper  Kind = "bumper"
	KindEpisode Kind = "episode"
)

// Airing is one play of one item.
type Airing struct {
	Kind      Kind
	Item      playlist.MediaItem
	StartedAt time.Time
	EndedAt   time.Time
	Err       error
}

// Player plays a file to completion.
type Player interface {
	Play(ctx context.Context, path string, bounded bool) error
}

// Recorder stores airings.
type Recorder interface {
	RecordAiring(ctx context.Context, airing Airing) error
}

// Cursor is the persisted rotation position.
type Cursor struct {
	EpisodePath  string
	EpisodeIndex int
	BumperIndex  int
}

// CursorStore persists the rotation position across restarts.
type CursorStore interface {
	LoadCursor(ctx context.Context) (Cursor, bool, error)
	SaveCursor(ctx context.Context, cursor Cursor) error
}

// Config wires an Engine to its collaborators. Episodes, Bumpers, Player
// and Publisher are required.
type Config struct {
	Episodes  playlist.Source
	Bumpers   playlist.Source
	Player    Player
	Publisher overlay.Publisher

	Greeting string
	Farewell string
	// TestMode plays every item for the player's bounded test duration.
	TestMode bool

	// RetryInterval is the wait after an empty or failed reload.
	RetryInterval time.Duration
	// Changes, when set, cuts a retry wait short.
	Changes <-chan struct{}
	Clock   playback.Clock

	Recorder Recorder
	Cursor   CursorStore
	Resume   bool
}

// Snapshot is a point-in-time view of the rotation for the status API.
type Snapshot struct {
	Titles       overlay.Titles `json:"titles"`
	NowPlaying   string         `json:"nowPlaying"`
	Kind         Kind           `json:"kind,omitempty"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	EpisodeIndex int            `json:"episodeIndex"`
	EpisodeCount int            `json:"episodeCount"`
	BumperIndex  int            `json:"bumperIndex"`
	BumperCount  int            `json:"bumperCount"`
	Passes       int            `json:"passes"`
}

// Engine runs the rotation.
type Engine struct {
	cfg Config

	mu       sync.RWMutex
	state    State
	snapshot Snapshot
}

// NewEngine validates cfg, loads both queues and applies a persisted cursor
// when resuming. Any failure wraps ErrConfiguration.
func NewEngine(ctx context.Context, cfg Config) (*Engine, error) {
	if cfg.Episodes == nil || cfg.Bumpers == nil {
		return nil, fmt.Errorf("%w: episode and bumper sources are required", ErrConfiguration)
	}
	if cfg.Player == nil || cfg.Publisher == nil {
		return nil, fmt.Errorf("%w: player and publisher are required", ErrConfiguration)
	}
	if cfg.Greeting == "" {
		cfg.Greeting = DefaultGreeting
	}
	if cfg.Farewell == "" {
		cfg.Farewell = DefaultFarewell
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 30 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = playback.RealClock{}
	}

	bumpers, err := cfg.Bumpers.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading bumpers from %s: %w", ErrConfiguration, cfg.Bumpers, err)
	}
	if len(bumpers) == 0 {
		return nil, fmt.Errorf("%w: no bumpers found in %s", ErrConfiguration, cfg.Bumpers)
	}

	episodes, err := cfg.Episodes.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading episodes from %s: %w", ErrConfiguration, cfg.Episodes, err)
	}
	if len(episodes) == 0 {
		logging.Warn("No episodes found in %s yet", cfg.Episodes)
	}

	e := &Engine{
		cfg:   cfg,
		state: State{Episodes: episodes, Bumpers: bumpers},
	}

	if cfg.Resume && cfg.Cursor != nil {
		e.resume(ctx)
	}

	e.mu.Lock()
	e.updateCounts()
	e.mu.Unlock()

	logging.Info("Rotation ready: %d episodes, %d bumpers", len(episodes), len(bumpers))
	return e, nil
}

func (e *Engine) resume(ctx context.Context) {
	cursor, ok, err := e.cfg.Cursor.LoadCursor(ctx)
	if err != nil {
		logging.Warn("Failed to load saved rotation position: %v", err)
		return
	}
	if !ok {
		return
	}

	if e.state.ApplyCursor(cursor) {
		logging.Info("Resuming rotation at episode %d: %s", cursor.EpisodeIndex+1, cursor.EpisodePath)
		return
	}
	if cursor.EpisodePath != "" {
		logging.Info("Saved episode %s is no longer at position %d, starting from the top", cursor.EpisodePath, cursor.EpisodeIndex+1)
	}
}

// State returns a copy of the current rotation state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.state
	s.Episodes = append([]playlist.MediaItem(nil), e.state.Episodes...)
	s.Bumpers = append([]playlist.MediaItem(nil), e.state.Bumpers...)
	return s
}

// Snapshot returns the current status view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.snapshot
	if s.StartedAt != nil {
		started := *s.StartedAt
		s.StartedAt = &started
	}
	return s
}

// Run steps the rotation until ctx is done. Empty or failed reloads wait
// RetryInterval, or until a change notification arrives, and try again.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := e.Step(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, ErrNoEpisodes), errors.Is(err, ErrReload):
			logging.Warn("%v; retrying in %v", err, e.cfg.RetryInterval)
			if err := e.waitForRetry(ctx); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

func (e *Engine) waitForRetry(ctx context.Context) error {
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if e.cfg.Changes != nil {
		go func() {
			select {
			case <-e.cfg.Changes:
				logging.Info("Episode source changed, reloading now")
				cancel()
			case <-waitCtx.Done():
			}
		}()
	}

	_ = e.cfg.Clock.Sleep(waitCtx, e.cfg.RetryInterval)
	return ctx.Err()
}

// Step performs one cycle: reload if needed, publish titles, play a bumper,
// clear the overlay and play the episode. Playback failures are logged and
// do not fail the step; cancellation returns ctx.Err() immediately and
// leaves the overlay untouched.
func (e *Engine) Step(ctx context.Context) error {
	e.mu.Lock()
	if e.state.NeedsReload() {
		if err := e.reload(ctx); err != nil {
			e.mu.Unlock()
			return err
		}
	}

	titles := e.state.Titles(e.cfg.Greeting, e.cfg.Farewell)
	episode := e.state.Episodes[e.state.EpisodeIndex]
	bumper := e.state.Bumpers[e.state.BumperIndex]
	e.state.EpisodeIndex++
	e.snapshot.Titles = titles
	e.updateCounts()
	e.mu.Unlock()

	logging.Info("Next up: %s (last: %s, next: %s)", titles.Current, titles.Last, titles.Next)
	e.publish(titles)

	if err := e.play(ctx, KindBumper, bumper); err != nil {
		return err
	}

	e.publish(overlay.Clear)

	e.mu.Lock()
	e.state.AdvanceBumper()
	e.snapshot.Titles = overlay.Clear
	e.updateCounts()
	e.mu.Unlock()

	if err := e.play(ctx, KindEpisode, episode); err != nil {
		return err
	}

	e.saveCursor(ctx)
	return nil
}

// reload must be called with mu held.
func (e *Engine) reload(ctx context.Context) error {
	logging.Info("Loading episodes from %s", e.cfg.Episodes)

	items, err := e.cfg.Episodes.Items(ctx)
	if err != nil {
		metrics.EpisodeReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %s: %w", ErrReload, e.cfg.Episodes, err)
	}
	if len(items) == 0 {
		metrics.EpisodeReloadsTotal.WithLabelValues("empty").Inc()
		e.state.Episodes = nil
		e.state.EpisodeIndex = 0
		e.updateCounts()
		return fmt.Errorf("%w in %s", ErrNoEpisodes, e.cfg.Episodes)
	}

	metrics.EpisodeReloadsTotal.WithLabelValues("success").Inc()
	if len(e.state.Episodes) > 0 {
		e.snapshot.Passes++
	}
	e.state.Episodes = items
	e.state.EpisodeIndex = 0
	logging.Info("Loaded %d episodes", len(items))
	return nil
}

// updateCounts must be called with mu held.
func (e *Engine) updateCounts() {
	e.snapshot.EpisodeIndex = e.state.EpisodeIndex
	e.snapshot.EpisodeCount = len(e.state.Episodes)
	e.snapshot.BumperIndex = e.state.BumperIndex
	e.snapshot.BumperCount = len(e.state.Bumpers)

	metrics.EpisodeQueueLength.Set(float64(len(e.state.Episodes)))
	metrics.EpisodeIndex.Set(float64(e.state.EpisodeIndex))
	metrics.BumperIndex.Set(float64(e.state.BumperIndex))
}

func (e *Engine) publish(titles overlay.Titles) {
	if err := e.cfg.Publisher.Publish(titles); err != nil {
		logging.Error("Failed to update overlay: %v", err)
	}
}

// play returns an error only when ctx was cancelled.
func (e *Engine) play(ctx context.Context, kind Kind, item playlist.MediaItem) error {
	started := time.Now()

	e.mu.Lock()
	e.snapshot.NowPlaying = item.Path
	e.snapshot.Kind = kind
	e.snapshot.StartedAt = &started
	e.mu.Unlock()

	err := e.cfg.Player.Play(ctx, item.Path, e.cfg.TestMode)
	ended := time.Now()

	status := "success"
	switch {
	case ctx.Err() != nil:
		status = "cancelled"
	case err != nil:
		status = "error"
		logging.Error("Playback of %s failed: %v", item.Path, err)
	}
	metrics.AiringsTotal.WithLabelValues(string(kind), status).Inc()
	metrics.PlaybackDuration.WithLabelValues(string(kind)).Observe(ended.Sub(started).Seconds())

	e.mu.Lock()
	e.snapshot.NowPlaying = ""
	e.snapshot.Kind = ""
	e.snapshot.StartedAt = nil
	e.mu.Unlock()

	if e.cfg.Recorder != nil {
		airing := Airing{Kind: kind, Item: item, StartedAt: started, EndedAt: ended, Err: err}
		// Cancelled airings are stored too.
		if recErr := e.cfg.Recorder.RecordAiring(context.WithoutCancel(ctx), airing); recErr != nil {
			logging.Warn("Failed to record airing of %s: %v", item.Path, recErr)
		}
	}

	return ctx.Err()
}

func (e *Engine) saveCursor(ctx context.Context) {
	if e.cfg.Cursor == nil {
		return
	}

	e.mu.RLock()
	cursor := Cursor{EpisodeIndex: e.state.EpisodeIndex, BumperIndex: e.state.BumperIndex}
	if cursor.EpisodeIndex < len(e.state.Episodes) {
		cursor.EpisodePath = e.state.Episodes[cursor.EpisodeIndex].Path
	}
	e.mu.RUnlock()

	if err := e.cfg.Cursor.SaveCursor(ctx, cursor); err != nil {
		logging.Warn("Failed to save rotation position: %v", err)
	}
}
