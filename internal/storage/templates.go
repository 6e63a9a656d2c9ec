package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/compound/internal/models"
)

// PutTemplate inserts or fully replaces a template by primary key.
func (db *DB) PutTemplate(ctx context.Context, t models.Template) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO templates (id, name, emoji, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, emoji = excluded.emoji, sort_order = excluded.sort_order,
		   created_at = excluded.created_at, updated_at = excluded.updated_at`,
		t.ID, t.Name, t.Emoji, t.SortOrder, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("putting template: %w", err)
	}
	return nil
}

// GetTemplate retrieves a template by id, or ErrNotFound.
func (db *DB) GetTemplate(ctx context.Context, id string) (models.Template, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, emoji, sort_order, created_at, updated_at
		 FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Template{}, fmt.Errorf("querying template: %w", err)
	}
	return t, nil
}

// ListTemplates retrieves all templates in manual sort order.
func (db *DB) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, emoji, sort_order, created_at, updated_at
		 FROM templates ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// CountTemplates returns the number of stored templates.
func (db *DB) CountTemplates(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return n, nil
}

// DeleteTemplate hard-deletes a template. Templates are the only entity with
// a true delete; exercises are only ever soft-deactivated.
func (db *DB) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (models.Template, error) {
	var (
		t                  models.Template
		createdAt, updated string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Emoji, &t.SortOrder, &createdAt, &updated); err != nil {
		return models.Template{}, err
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Template{}, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return models.Template{}, err
	}
	return t, nil
}
