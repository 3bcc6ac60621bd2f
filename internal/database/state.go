package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"streambuddy/internal/rotation"
)

// LoadCursor returns the saved rotation position. The boolean is false when
// nothing has been saved yet.
func (d *Database) LoadCursor(ctx context.Context) (rotation.Cursor, bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("load_cursor", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cursor rotation.Cursor
	err = d.db.QueryRowContext(ctx, `
		SELECT episode_path, episode_index, bumper_index FROM stream_state WHERE id = 1
	`).Scan(&cursor.EpisodePath, &cursor.EpisodeIndex, &cursor.BumperIndex)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return rotation.Cursor{}, false, nil
	}
	if err != nil {
		return rotation.Cursor{}, false, err
	}
	return cursor, true, nil
}

// SaveCursor overwrites the saved rotation position.
func (d *Database) SaveCursor(ctx context.Context, cursor rotation.Cursor) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("save_cursor", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO stream_state (id, episode_path, episode_index, bumper_index, updated_at)
		VALUES (1, ?, ?, ?, strftime('%s', 'now'))
		ON CONFLICT(id) DO UPDATE SET
			episode_path = excluded.episode_path,
			episode_index = excluded.episode_index,
			bumper_index = excluded.bumper_index,
			updated_at = excluded.updated_at
	`, cursor.EpisodePath, cursor.EpisodeIndex, cursor.BumperIndex)
	return err
}
