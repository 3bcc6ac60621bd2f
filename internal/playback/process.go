package playback

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// DefaultCommand plays one file fullscreen and exits when it ends.
var DefaultCommand = []string{"cvlc", "--play-and-exit", "--fullscreen", "--no-video-title-show", "--quiet"}

// ErrNoCommand is returned when a ProcessBackend has no player configured.
var ErrNoCommand = errors.New("no player command configured")

// DurationFunc resolves the length of a media file in seconds.
type DurationFunc func(ctx context.Context, path string) (float64, error)

// ProcessBackend launches an external player per file. The file path is
// appended to Command.
type ProcessBackend struct {
	Command  []string
	Duration DurationFunc
}

// NewProcessBackend creates a backend for command, falling back to
// DefaultCommand when it is empty. Durations are read with ffprobe.
func NewProcessBackend(command []string) *ProcessBackend {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &ProcessBackend{Command: command, Duration: ProbeDuration}
}

// ParseCommand splits a whitespace separated command line.
func ParseCommand(line string) []string {
	return strings.Fields(line)
}

// Open starts the player for path.
func (b *ProcessBackend) Open(ctx context.Context, path string) (Session, error) {
	if len(b.Command) == 0 {
		return nil, ErrNoCommand
	}

	runCtx, cancel := context.WithCancel(ctx)
	args := append(append([]string{}, b.Command[1:]...), path)
	cmd := exec.CommandContext(runCtx, b.Command[0], args...)

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start %s: %w", b.Command[0], err)
	}

	s := &processSession{
		cmd:    cmd,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.wait()

	if b.Duration != nil {
		go s.resolveDuration(runCtx, path, b.Duration)
	}

	return s, nil
}

type processSession struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	waitErr  error
	stopped  bool
	duration float64
	known    bool
}

func (s *processSession) wait() {
	err := s.cmd.Wait()
	s.mu.Lock()
	s.waitErr = err
	s.mu.Unlock()
	close(s.done)
}

func (s *processSession) resolveDuration(ctx context.Context, path string, probe DurationFunc) {
	seconds, err := probe(ctx, path)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.duration, s.known = seconds, true
	s.mu.Unlock()
}

// Started is true as soon as the player process is running.
func (s *processSession) Started() bool {
	return true
}

func (s *processSession) Playing() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *processSession) Duration() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration, s.known
}

// Stop kills the player if it is still running. A player that exited on its
// own with a failure status reports that failure.
func (s *processSession) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.mu.Unlock()

	killed := s.Playing()
	s.cancel()
	<-s.done

	if killed {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitErr
}
