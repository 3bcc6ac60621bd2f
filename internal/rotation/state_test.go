package rotation

import (
	"testing"

	"streambuddy/internal/overlay"
)

func TestStateTitles(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  overlay.Titles
	}{
		{
			name:  "First of three",
			state: State{Episodes: items(ep1, ep2, ep3), EpisodeIndex: 0},
			want:  overlay.Titles{Last: "hi", Current: "Show - Pilot", Next: "Show - Second"},
		},
		{
			name:  "Middle",
			state: State{Episodes: items(ep1, ep2, ep3), EpisodeIndex: 1},
			want:  overlay.Titles{Last: "Show - Pilot", Current: "Show - Second", Next: "Show - Finale"},
		},
		{
			name:  "Last",
			state: State{Episodes: items(ep1, ep2, ep3), EpisodeIndex: 2},
			want:  overlay.Titles{Last: "Show - Second", Current: "Show - Finale", Next: "bye"},
		},
		{
			name:  "Exhausted",
			state: State{Episodes: items(ep1), EpisodeIndex: 1},
			want:  overlay.Titles{Last: "Show - Pilot", Next: "bye"},
		},
		{
			name:  "Empty",
			state: State{},
			want:  overlay.Titles{Last: "hi", Next: "bye"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Titles("hi", "bye"); got != tt.want {
				t.Errorf("Titles() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStateNeedsReload(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"Empty", State{}, true},
		{"Fresh", State{Episodes: items(ep1, ep2)}, false},
		{"On last", State{Episodes: items(ep1, ep2), EpisodeIndex: 1}, false},
		{"Past last", State{Episodes: items(ep1, ep2), EpisodeIndex: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.NeedsReload(); got != tt.want {
				t.Errorf("NeedsReload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateAdvanceBumper(t *testing.T) {
	s := State{Bumpers: items(b1, b2, b3)}
	for i := 0; i < 7; i++ {
		s.AdvanceBumper()
	}
	if s.BumperIndex != 1 {
		t.Errorf("BumperIndex after 7 advances over 3 = %d, want 1", s.BumperIndex)
	}

	empty := State{}
	empty.AdvanceBumper()
	if empty.BumperIndex != 0 {
		t.Error("advancing with no bumpers should be a no-op")
	}
}

func TestStateUpcoming(t *testing.T) {
	s := State{Episodes: items(ep1, ep2, ep3), EpisodeIndex: 1, Bumpers: items(b1, b2), BumperIndex: 1}

	got := s.Upcoming(10)
	want := []string{b2, ep2, b1, ep3}
	if len(got) != len(want) {
		t.Fatalf("Upcoming() returned %d airings, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.Item.Path != want[i] {
			t.Errorf("Upcoming()[%d] = %s, want %s", i, a.Item.Path, want[i])
		}
	}

	if got := s.Upcoming(3); len(got) != 3 || got[2].Kind != KindBumper {
		t.Errorf("Upcoming(3) = %+v", got)
	}
	if got := (&State{Episodes: items(ep1)}).Upcoming(4); got != nil {
		t.Errorf("Upcoming without bumpers = %+v, want nil", got)
	}
}

func TestStateApplyCursor(t *testing.T) {
	tests := []struct {
		name        string
		cursor      Cursor
		wantApplied bool
		wantEpisode int
		wantBumper  int
	}{
		{"Matching path", Cursor{EpisodePath: ep2, EpisodeIndex: 1, BumperIndex: 1}, true, 1, 1},
		{"Moved file", Cursor{EpisodePath: ep3, EpisodeIndex: 1, BumperIndex: 1}, false, 0, 1},
		{"Start of pass", Cursor{EpisodePath: ep1, EpisodeIndex: 0}, false, 0, 0},
		{"Past the end", Cursor{EpisodePath: ep3, EpisodeIndex: 7}, false, 0, 0},
		{"Bumper out of range", Cursor{EpisodePath: ep2, EpisodeIndex: 1, BumperIndex: 9}, true, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Episodes: items(ep1, ep2, ep3), Bumpers: items(b1, b2)}

			if got := s.ApplyCursor(tt.cursor); got != tt.wantApplied {
				t.Errorf("ApplyCursor() = %v, want %v", got, tt.wantApplied)
			}
			if s.EpisodeIndex != tt.wantEpisode || s.BumperIndex != tt.wantBumper {
				t.Errorf("indexes = %d/%d, want %d/%d", s.EpisodeIndex, s.BumperIndex, tt.wantEpisode, tt.wantBumper)
			}
		})
	}
}
