package handlers

import (
	"context"
	"time"

	"streambuddy/internal/database"
	"streambuddy/internal/rotation"
)

// StatusProvider exposes the live rotation state.
type StatusProvider interface {
	Snapshot() rotation.Snapshot
}

// HistoryStore reads the play history.
type HistoryStore interface {
	RecentAirings(ctx context.Context, limit int) ([]database.Airing, error)
	HistoryStats(ctx context.Context) (database.HistoryStats, error)
}

type Handlers struct {
	status    StatusProvider
	history   HistoryStore
	startTime time.Time
}

// New creates the handlers. history may be nil when the history database is
// disabled.
func New(status StatusProvider, history HistoryStore) *Handlers {
	return &Handlers{
		status:    status,
		history:   history,
		startTime: time.Now(),
	}
}
