package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// The active-session pointer lives in the meta table under a fixed key so
// an interrupted session can be resumed after restart.
const activeSessionKey = "activeSessionId"

// SetActiveSessionID records the in-progress session id.
func (db *DB) SetActiveSessionID(ctx context.Context, sessionID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		activeSessionKey, sessionID)
	if err != nil {
		return fmt.Errorf("setting active session pointer: %w", err)
	}
	return nil
}

// ActiveSessionID returns the in-progress session id, or "" when no session
// is active. Absence is a legitimate empty result, not an error.
func (db *DB) ActiveSessionID(ctx context.Context) (string, error) {
	var id string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, activeSessionKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying active session pointer: %w", err)
	}
	return id, nil
}

// ClearActiveSessionID removes the pointer once a session completes.
func (db *DB) ClearActiveSessionID(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM meta WHERE key = ?`, activeSessionKey); err != nil {
		return fmt.Errorf("clearing active session pointer: %w", err)
	}
	return nil
}
