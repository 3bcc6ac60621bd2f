package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"streambuddy/internal/playlist"
	"streambuddy/internal/rotation"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func airing(kind rotation.Kind, path string, started time.Time, err error) rotation.Airing {
	return rotation.Airing{
		Kind:      kind,
		Item:      playlist.NewMediaItem(path),
		StartedAt: started,
		EndedAt:   started.Add(90 * time.Second),
		Err:       err,
	}
}

func TestNewCreatesSchema(t *testing.T) {
	db := newTestDB(t)

	if db.SessionID() == "" {
		t.Error("SessionID() is empty")
	}

	version, err := db.GetMetadata(context.Background(), "schema_version")
	if err != nil || version != "1" {
		t.Errorf("schema_version = %q, %v", version, err)
	}

	session, err := db.GetMetadata(context.Background(), "last_session_id")
	if err != nil || session != db.SessionID() {
		t.Errorf("last_session_id = %q, want %q (%v)", session, db.SessionID(), err)
	}
}

func TestNewReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first, err := New(ctx, path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := first.RecordAiring(ctx, airing(rotation.KindEpisode, "/tv/a.mkv", time.Now(), nil)); err != nil {
		t.Fatalf("RecordAiring() error = %v", err)
	}
	_ = first.Close()

	second, err := New(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	if second.SessionID() == first.SessionID() {
		t.Error("each open should get a fresh session ID")
	}
	airings, err := second.RecentAirings(ctx, 10)
	if err != nil || len(airings) != 1 {
		t.Errorf("RecentAirings() = %d rows, %v; want 1", len(airings), err)
	}
}

func TestNewRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	db, err := New(ctx, path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.SetMetadata(ctx, "schema_version", "99"); err != nil {
		t.Fatalf("SetMetadata() error = %v", err)
	}
	_ = db.Close()

	if _, err := New(ctx, path); err == nil {
		t.Error("expected error opening a database with a newer schema")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "history.db")); err == nil {
		t.Error("expected error for a database in a missing directory")
	}
}

func TestRecordAndListAirings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	records := []rotation.Airing{
		airing(rotation.KindBumper, "/bumpers/b1.mp4", base, nil),
		airing(rotation.KindEpisode, "/tv/Show - S01E01 - Pilot.mkv", base.Add(time.Minute), nil),
		airing(rotation.KindBumper, "/bumpers/b2.mp4", base.Add(30*time.Minute), errors.New("player crashed")),
	}
	for _, a := range records {
		if err := db.RecordAiring(ctx, a); err != nil {
			t.Fatalf("RecordAiring() error = %v", err)
		}
	}

	got, err := db.RecentAirings(ctx, 10)
	if err != nil {
		t.Fatalf("RecentAirings() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("RecentAirings() returned %d rows, want 3", len(got))
	}

	newest := got[0]
	if newest.Path != "/bumpers/b2.mp4" || newest.Kind != "bumper" || newest.Error != "player crashed" {
		t.Errorf("newest airing = %+v", newest)
	}
	if got[1].Title != "Show - Pilot" || !got[1].StartedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("episode airing = %+v", got[1])
	}
	if got[1].Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, want 90s", got[1].Duration())
	}
	if got[1].SessionID != db.SessionID() {
		t.Errorf("SessionID = %q, want %q", got[1].SessionID, db.SessionID())
	}
}

func TestRecentAiringsLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		if err := db.RecordAiring(ctx, airing(rotation.KindEpisode, "/tv/a.mkv", base.Add(time.Duration(i)*time.Minute), nil)); err != nil {
			t.Fatalf("RecordAiring() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Within range", 3, 3},
		{"Larger than table", 50, 5},
		{"Zero clamps to one", 0, 1},
		{"Negative clamps to one", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.RecentAirings(ctx, tt.limit)
			if err != nil {
				t.Fatalf("RecentAirings() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("RecentAirings(%d) = %d rows, want %d", tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestHistoryStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	empty, err := db.HistoryStats(ctx)
	if err != nil {
		t.Fatalf("HistoryStats() error = %v", err)
	}
	if empty.TotalEpisodes != 0 || empty.TotalBumpers != 0 || empty.LastAiredAt != nil {
		t.Errorf("empty stats = %+v", empty)
	}

	base := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	_ = db.RecordAiring(ctx, airing(rotation.KindBumper, "/b.mp4", base, nil))
	_ = db.RecordAiring(ctx, airing(rotation.KindEpisode, "/e1.mkv", base.Add(time.Minute), nil))
	_ = db.RecordAiring(ctx, airing(rotation.KindEpisode, "/e2.mkv", base.Add(time.Hour), errors.New("boom")))

	stats, err := db.HistoryStats(ctx)
	if err != nil {
		t.Fatalf("HistoryStats() error = %v", err)
	}
	if stats.TotalEpisodes != 2 || stats.TotalBumpers != 1 || stats.Failures != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastAiredAt == nil || !stats.LastAiredAt.Equal(base.Add(time.Hour)) {
		t.Errorf("LastAiredAt = %v", stats.LastAiredAt)
	}

	if got := db.GetStats(); got.TotalEpisodes != 2 || got.TotalBumpers != 1 {
		t.Errorf("GetStats() = %+v", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, ok, err := db.LoadCursor(ctx); err != nil || ok {
		t.Fatalf("LoadCursor() on empty db = ok %v, err %v", ok, err)
	}

	cursors := []rotation.Cursor{
		{EpisodePath: "/tv/b.mkv", EpisodeIndex: 1, BumperIndex: 2},
		{EpisodePath: "", EpisodeIndex: 3, BumperIndex: 0},
	}
	for _, want := range cursors {
		if err := db.SaveCursor(ctx, want); err != nil {
			t.Fatalf("SaveCursor() error = %v", err)
		}
		got, ok, err := db.LoadCursor(ctx)
		if err != nil || !ok {
			t.Fatalf("LoadCursor() ok %v, err %v", ok, err)
		}
		if got != want {
			t.Errorf("LoadCursor() = %+v, want %+v", got, want)
		}
	}
}

func TestGetMetadataMissingKey(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetMetadata(context.Background(), "nope"); err == nil {
		t.Error("expected error for a missing key")
	}
}

func TestDatabaseImplementsRotationInterfaces(t *testing.T) {
	var _ rotation.Recorder = (*Database)(nil)
	var _ rotation.CursorStore = (*Database)(nil)
}
