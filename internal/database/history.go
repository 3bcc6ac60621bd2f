package database

import (
	"context"
	"database/sql"
	"time"

	"streambuddy/internal/logging"
	"streambuddy/internal/metrics"
	"streambuddy/internal/rotation"
)

// MaxHistoryLimit caps RecentAirings.
const MaxHistoryLimit = 500

// RecordAiring appends one airing to the history.
func (d *Database) RecordAiring(ctx context.Context, airing rotation.Airing) error {
	start := time.Now()
	var err error
	defer func() {
		recordQuery("record_airing", start, err)
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.HistoryWritesTotal.WithLabelValues(status).Inc()
	}()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	errText := ""
	if airing.Err != nil {
		errText = airing.Err.Error()
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO airings (session_id, kind, path, title, started_at, ended_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		d.sessionID,
		string(airing.Kind),
		airing.Item.Path,
		airing.Item.Title,
		airing.StartedAt.UnixMilli(),
		airing.EndedAt.UnixMilli(),
		errText,
	)
	return err
}

// RecentAirings returns up to limit airings, newest first. A limit outside
// 1..MaxHistoryLimit is clamped.
func (d *Database) RecentAirings(ctx context.Context, limit int) ([]Airing, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("recent_airings", start, err) }()

	if limit <= 0 {
		limit = 1
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows *sql.Rows
	rows, err = d.db.QueryContext(ctx, `
		SELECT id, session_id, kind, path, title, started_at, ended_at, error
		FROM airings
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn("failed to close rows: %v", closeErr)
		}
	}()

	airings := make([]Airing, 0, limit)
	for rows.Next() {
		var a Airing
		var startedAt, endedAt int64
		if err = rows.Scan(&a.ID, &a.SessionID, &a.Kind, &a.Path, &a.Title, &startedAt, &endedAt, &a.Error); err != nil {
			return nil, err
		}
		a.StartedAt = time.UnixMilli(startedAt)
		a.EndedAt = time.UnixMilli(endedAt)
		airings = append(airings, a)
	}
	err = rows.Err()
	return airings, err
}

// HistoryStats counts airings by kind.
func (d *Database) HistoryStats(ctx context.Context) (HistoryStats, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_airings", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var stats HistoryStats
	var last sql.NullInt64
	err = d.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'episode' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'bumper' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0),
			MAX(started_at)
		FROM airings
	`).Scan(&stats.TotalEpisodes, &stats.TotalBumpers, &stats.Failures, &last)
	if err != nil {
		return HistoryStats{}, err
	}

	if last.Valid {
		t := time.UnixMilli(last.Int64)
		stats.LastAiredAt = &t
	}
	return stats, nil
}

// GetStats implements metrics.StatsProvider.
func (d *Database) GetStats() metrics.Stats {
	stats, err := d.HistoryStats(context.Background())
	if err != nil {
		logging.Warn("Failed to count airings: %v", err)
		return metrics.Stats{}
	}
	d.UpdateDBMetrics()
	return metrics.Stats{TotalEpisodes: stats.TotalEpisodes, TotalBumpers: stats.TotalBumpers}
}
