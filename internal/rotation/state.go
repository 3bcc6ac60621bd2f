package rotation

import (
	"streambuddy/internal/overlay"
	"streambuddy/internal/playlist"
	"streambuddy/internal/title"
)

// Default overlay text used when there is no previous or next episode.
const (
	DefaultGreeting = "Welcome to the stream!"
	DefaultFarewell = "Thanks for watching!"
)

// State holds both queues and their cursors.
//
// EpisodeIndex ranges over [0, len(Episodes)]; len(Episodes) means the pass
// is complete and the next Step reloads. BumperIndex is always a valid index
// into a non-empty Bumpers.
type State struct {
	Episodes     []playlist.MediaItem
	EpisodeIndex int
	Bumpers      []playlist.MediaItem
	BumperIndex  int
}

// NeedsReload reports whether the episode queue is exhausted.
func (s *State) NeedsReload() bool {
	return len(s.Episodes) == 0 || s.EpisodeIndex >= len(s.Episodes)
}

// Titles derives the overlay triple around the current episode.
func (s *State) Titles(greeting, farewell string) overlay.Titles {
	titles := overlay.Titles{Last: greeting, Next: farewell}

	i := s.EpisodeIndex
	if i > 0 && i-1 < len(s.Episodes) {
		titles.Last = title.FromPath(s.Episodes[i-1].Path)
	}
	if i >= 0 && i < len(s.Episodes) {
		titles.Current = title.FromPath(s.Episodes[i].Path)
	}
	if i >= 0 && i+1 < len(s.Episodes) {
		titles.Next = title.FromPath(s.Episodes[i+1].Path)
	}
	return titles
}

// AdvanceBumper moves to the next bumper, wrapping at the end.
func (s *State) AdvanceBumper() {
	if len(s.Bumpers) == 0 {
		return
	}
	s.BumperIndex = (s.BumperIndex + 1) % len(s.Bumpers)
}

// ApplyCursor moves the state to a saved position. The bumper index is
// taken whenever it is in range; the episode index only when the same file
// is still at that position. It reports whether the episode position was
// restored.
func (s *State) ApplyCursor(c Cursor) bool {
	if c.BumperIndex >= 0 && c.BumperIndex < len(s.Bumpers) {
		s.BumperIndex = c.BumperIndex
	}

	i := c.EpisodeIndex
	if i > 0 && i < len(s.Episodes) && s.Episodes[i].Path == c.EpisodePath {
		s.EpisodeIndex = i
		return true
	}
	return false
}

// Upcoming lists the next n items that Step would play from the current
// state, without reloading. Bumpers and episodes alternate.
func (s *State) Upcoming(n int) []Airing {
	if n <= 0 || len(s.Bumpers) == 0 {
		return nil
	}

	var out []Airing
	bumper := s.BumperIndex
	for i := s.EpisodeIndex; i < len(s.Episodes) && len(out) < n; i++ {
		out = append(out, Airing{Kind: KindBumper, Item: s.Bumpers[bumper]})
		bumper = (bumper + 1) % len(s.Bumpers)
		if len(out) < n {
			out = append(out, Airing{Kind: KindEpisode, Item: s.Episodes[i]})
		}
	}
	return out
}
