package database

import "time"

// Airing is a stored history row.
type Airing struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	Error     string    `json:"error,omitempty"`
}

// Duration is how long the airing lasted.
func (a Airing) Duration() time.Duration {
	return a.EndedAt.Sub(a.StartedAt)
}

// HistoryStats summarizes the airings table.
type HistoryStats struct {
	TotalEpisodes int        `json:"totalEpisodes"`
	TotalBumpers  int        `json:"totalBumpers"`
	Failures      int        `json:"failures"`
	LastAiredAt   *time.Time `json:"lastAiredAt,omitempty"`
}
