package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/compound/internal/models"
)

// PutExercise inserts or fully replaces an exercise by primary key.
// Soft deletion is a put with Active=false; there is no hard delete.
func (db *DB) PutExercise(ctx context.Context, e models.Exercise) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (id, template_id, name, sets_reps, is_weighted, sort_order, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   template_id = excluded.template_id, name = excluded.name,
		   sets_reps = excluded.sets_reps, is_weighted = excluded.is_weighted,
		   sort_order = excluded.sort_order, active = excluded.active,
		   created_at = excluded.created_at`,
		e.ID, e.TemplateID, e.Name, e.SetsReps, e.IsWeighted, e.SortOrder, e.Active, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("putting exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by id, or ErrNotFound.
func (db *DB) GetExercise(ctx context.Context, id string) (models.Exercise, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, template_id, name, sets_reps, is_weighted, sort_order, active, created_at
		 FROM exercises WHERE id = ?`, id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exercise{}, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Exercise{}, fmt.Errorf("querying exercise: %w", err)
	}
	return e, nil
}

// ListExercisesByTemplate retrieves all exercises of a template, active and
// inactive, in template-scoped sort order. Callers filter on Active.
func (db *DB) ListExercisesByTemplate(ctx context.Context, templateID string) ([]models.Exercise, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, template_id, name, sets_reps, is_weighted, sort_order, active, created_at
		 FROM exercises WHERE template_id = ? ORDER BY sort_order ASC`, templateID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func scanExercise(row scanner) (models.Exercise, error) {
	var (
		e         models.Exercise
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.TemplateID, &e.Name, &e.SetsReps, &e.IsWeighted,
		&e.SortOrder, &e.Active, &createdAt); err != nil {
		return models.Exercise{}, err
	}
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}
