package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meltforce/compound/internal/models"
)

// PutExerciseLog inserts or fully replaces a log by primary key. Mutators
// always write the whole record, never individual fields.
func (db *DB) PutExerciseLog(ctx context.Context, l models.ExerciseLog) error {
	sets, err := marshalSets(l.Sets)
	if err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO exercise_logs (id, session_id, exercise_id, completed, weight_used, go_up, completed_at, sets)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   session_id = excluded.session_id, exercise_id = excluded.exercise_id,
		   completed = excluded.completed, weight_used = excluded.weight_used,
		   go_up = excluded.go_up, completed_at = excluded.completed_at,
		   sets = excluded.sets`,
		l.ID, l.SessionID, l.ExerciseID, l.Completed, nullFloat(l.WeightUsed),
		l.GoUp, formatNullTime(l.CompletedAt), sets)
	if err != nil {
		return fmt.Errorf("putting exercise log: %w", err)
	}
	return nil
}

// InsertExerciseLogIfAbsent inserts a log only if none exists for its key.
// Returns true if inserted, false if a log for the (session, exercise) pair
// was already present.
func (db *DB) InsertExerciseLogIfAbsent(ctx context.Context, l models.ExerciseLog) (bool, error) {
	sets, err := marshalSets(l.Sets)
	if err != nil {
		return false, err
	}
	tag, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercise_logs (id, session_id, exercise_id, completed, weight_used, go_up, completed_at, sets)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		l.ID, l.SessionID, l.ExerciseID, l.Completed, nullFloat(l.WeightUsed),
		l.GoUp, formatNullTime(l.CompletedAt), sets)
	if err != nil {
		return false, fmt.Errorf("inserting exercise log: %w", err)
	}
	n, err := tag.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting exercise log: %w", err)
	}
	return n > 0, nil
}

// GetExerciseLog retrieves a log by id, or ErrNotFound.
func (db *DB) GetExerciseLog(ctx context.Context, id string) (models.ExerciseLog, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, session_id, exercise_id, completed, weight_used, go_up, completed_at, sets
		 FROM exercise_logs WHERE id = ?`, id)
	l, err := scanExerciseLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExerciseLog{}, fmt.Errorf("exercise log %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.ExerciseLog{}, fmt.Errorf("querying exercise log: %w", err)
	}
	return l, nil
}

// ListLogsBySession retrieves all logs of a session.
func (db *DB) ListLogsBySession(ctx context.Context, sessionID string) ([]models.ExerciseLog, error) {
	return db.queryLogs(ctx,
		`SELECT id, session_id, exercise_id, completed, weight_used, go_up, completed_at, sets
		 FROM exercise_logs WHERE session_id = ?`, sessionID)
}

// ListLogsByExercise retrieves all logs of an exercise across sessions.
func (db *DB) ListLogsByExercise(ctx context.Context, exerciseID string) ([]models.ExerciseLog, error) {
	return db.queryLogs(ctx,
		`SELECT id, session_id, exercise_id, completed, weight_used, go_up, completed_at, sets
		 FROM exercise_logs WHERE exercise_id = ?`, exerciseID)
}

// CountLogsForPair returns how many log rows exist for a (session, exercise)
// pair. The unique index keeps this at most 1; the count exists for tests
// and consistency checks.
func (db *DB) CountLogsForPair(ctx context.Context, sessionID, exerciseID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercise_logs WHERE session_id = ? AND exercise_id = ?`,
		sessionID, exerciseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting exercise logs: %w", err)
	}
	return n, nil
}

func (db *DB) queryLogs(ctx context.Context, query string, args ...any) ([]models.ExerciseLog, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercise logs: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseLog
	for rows.Next() {
		l, err := scanExerciseLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func marshalSets(sets []models.SetLog) (string, error) {
	if sets == nil {
		sets = []models.SetLog{}
	}
	data, err := json.Marshal(sets)
	if err != nil {
		return "", fmt.Errorf("marshaling sets: %w", err)
	}
	return string(data), nil
}

// scanExerciseLog hydrates a row. Legacy rows written before per-set
// tracking have a NULL sets column; they hydrate to an empty slice without
// any write-back.
func scanExerciseLog(row scanner) (models.ExerciseLog, error) {
	var (
		l           models.ExerciseLog
		weightUsed  sql.NullFloat64
		completedAt sql.NullString
		sets        sql.NullString
	)
	if err := row.Scan(&l.ID, &l.SessionID, &l.ExerciseID, &l.Completed,
		&weightUsed, &l.GoUp, &completedAt, &sets); err != nil {
		return models.ExerciseLog{}, err
	}
	l.WeightUsed = floatPtr(weightUsed)
	var err error
	if l.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return models.ExerciseLog{}, err
	}
	l.Sets = []models.SetLog{}
	if sets.Valid && sets.String != "" {
		if err := json.Unmarshal([]byte(sets.String), &l.Sets); err != nil {
			return models.ExerciseLog{}, fmt.Errorf("unmarshaling sets for log %s: %w", l.ID, err)
		}
		if l.Sets == nil {
			l.Sets = []models.SetLog{}
		}
	}
	return l, nil
}
