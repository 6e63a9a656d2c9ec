package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/compound/internal/models"
)

// PutSession inserts or fully replaces a session by primary key.
func (db *DB) PutSession(ctx context.Context, s models.Session) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (id, template_id, started_at, completed_at, notes)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   template_id = excluded.template_id, started_at = excluded.started_at,
		   completed_at = excluded.completed_at, notes = excluded.notes`,
		s.ID, s.TemplateID, formatTime(s.StartedAt), formatNullTime(s.CompletedAt), s.Notes)
	if err != nil {
		return fmt.Errorf("putting session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id, or ErrNotFound.
func (db *DB) GetSession(ctx context.Context, id string) (models.Session, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, template_id, started_at, completed_at, notes
		 FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("querying session: %w", err)
	}
	return s, nil
}

// ListSessionsByTemplate retrieves all sessions of a template, most recent
// first.
func (db *DB) ListSessionsByTemplate(ctx context.Context, templateID string) ([]models.Session, error) {
	return db.querySessions(ctx,
		`SELECT id, template_id, started_at, completed_at, notes
		 FROM sessions WHERE template_id = ? ORDER BY started_at DESC`, templateID)
}

// ListCompletedSessions retrieves all completed sessions, most recent first.
// In-progress sessions are excluded; they are not history yet.
func (db *DB) ListCompletedSessions(ctx context.Context) ([]models.Session, error) {
	return db.querySessions(ctx,
		`SELECT id, template_id, started_at, completed_at, notes
		 FROM sessions WHERE completed_at IS NOT NULL ORDER BY started_at DESC`)
}

// LastCompletedSession retrieves the most recently started completed session
// of a template, or ErrNotFound if the template has never been done.
func (db *DB) LastCompletedSession(ctx context.Context, templateID string) (models.Session, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, template_id, started_at, completed_at, notes
		 FROM sessions
		 WHERE template_id = ? AND completed_at IS NOT NULL
		 ORDER BY started_at DESC LIMIT 1`, templateID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("last completed session for template %s: %w", templateID, ErrNotFound)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("querying last completed session: %w", err)
	}
	return s, nil
}

func (db *DB) querySessions(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanSession(row scanner) (models.Session, error) {
	var (
		s           models.Session
		startedAt   string
		completedAt sql.NullString
	)
	if err := row.Scan(&s.ID, &s.TemplateID, &startedAt, &completedAt, &s.Notes); err != nil {
		return models.Session{}, err
	}
	var err error
	if s.StartedAt, err = parseTime(startedAt); err != nil {
		return models.Session{}, err
	}
	if s.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return models.Session{}, err
	}
	return s, nil
}
