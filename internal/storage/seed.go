package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/compound/internal/models"
)

type seedExercise struct {
	id         string
	name       string
	setsReps   string
	isWeighted bool
}

var seedTemplates = []struct {
	id        string
	name      string
	emoji     string
	exercises []seedExercise
}{
	{
		id: "tpl-leg", name: "Leg Day", emoji: "🦵",
		exercises: []seedExercise{
			{"ex-1", "Goblet Squats", "3 × 8-10", true},
			{"ex-2", "Romanian Deadlifts", "3 × 10-12", true},
			{"ex-3", "Walking Lunges", "3 × 10/leg", true},
			{"ex-4", "Glute Bridges", "3 × 15", true},
		},
	},
	{
		id: "tpl-upper", name: "Upper Body", emoji: "💪",
		exercises: []seedExercise{
			{"ex-5", "DB Overhead Press", "3 × 8-10", true},
			{"ex-6", "Bent Over Rows", "3 × 10-12", true},
			{"ex-7", "Push-Ups", "3 × failure", true},
			{"ex-8", "Lat Pulldowns", "3 × 10-12", true},
		},
	},
	{
		id: "tpl-full", name: "Full Body", emoji: "⚡",
		exercises: []seedExercise{
			{"ex-9", "Deadlifts", "3 × 5-8", true},
			{"ex-10", "Bench Press", "3 × 8-10", true},
			{"ex-11", "Bulgarian Split Squats", "3 × 8-10/leg", true},
			{"ex-12", "Plank Rows", "3 × 10/arm", true},
		},
	},
	{
		id: "tpl-recovery", name: "Active Recovery", emoji: "❤️",
		exercises: []seedExercise{
			{"ex-13", "Light Cardio", "1 × 20-30 min", false},
			{"ex-14", "Mobility Work", "1 × 15 min", false},
			{"ex-15", "Yoga/Stretching", "1 × 15 min", false},
		},
	},
}

// Seed populates the default templates and exercises when the store is
// empty. It is a no-op on any store that already has templates, and commits
// in a single transaction so a failed seed leaves the store untouched.
func (db *DB) Seed(ctx context.Context) error {
	n, err := db.CountTemplates(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	for ti, st := range seedTemplates {
		t := models.Template{
			ID: st.id, Name: st.name, Emoji: st.emoji,
			SortOrder: ti, CreatedAt: now, UpdatedAt: now,
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO templates (id, name, emoji, sort_order, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Emoji, t.SortOrder, formatTime(t.CreatedAt), formatTime(t.UpdatedAt)); err != nil {
			return fmt.Errorf("seeding template %s: %w", t.ID, err)
		}

		for ei, se := range st.exercises {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO exercises (id, template_id, name, sets_reps, is_weighted, sort_order, active, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, 1, ?)`,
				se.id, st.id, se.name, se.setsReps, se.isWeighted, ei, formatTime(now)); err != nil {
				return fmt.Errorf("seeding exercise %s: %w", se.id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}
