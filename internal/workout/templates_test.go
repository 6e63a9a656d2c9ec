package workout

import (
	"context"
	"errors"
	"testing"

	"github.com/meltforce/compound/internal/storage"
)

// TestCreateTemplateOrdering verifies that new templates append after the
// highest existing manual position.
func TestCreateTemplateOrdering(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	putTemplate(t, db, "tpl-a", "A", 0)
	putTemplate(t, db, "tpl-b", "B", 5)

	created, err := svc.CreateTemplate(ctx, "C", "🔥")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SortOrder != 6 {
		t.Errorf("sort order = %d, want 6", created.SortOrder)
	}
	if created.ID == "" {
		t.Error("created template has empty id")
	}
	if !created.CreatedAt.Equal(testClock) {
		t.Errorf("createdAt = %v, want frozen clock", created.CreatedAt)
	}
}

// TestRenameAndDeleteTemplate verifies rename persists and delete removes
// the template while erroring on unknown ids.
func TestRenameAndDeleteTemplate(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	putTemplate(t, db, "tpl-a", "A", 0)

	renamed, err := svc.RenameTemplate(ctx, "tpl-a", "Heavy Day")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Heavy Day" {
		t.Errorf("name = %q", renamed.Name)
	}

	if err := svc.DeleteTemplate(ctx, "tpl-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetTemplate(ctx, "tpl-a"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("template survived delete: %v", err)
	}
	if err := svc.DeleteTemplate(ctx, "tpl-a"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}

// TestExerciseLifecycle verifies add, partial update, soft delete, and
// restore.
func TestExerciseLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	putTemplate(t, db, "tpl-a", "A", 0)

	ex, err := svc.AddExercise(ctx, "tpl-a", "Squats", "3 × 5", true)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !ex.Active || ex.SortOrder != 0 {
		t.Errorf("new exercise = %+v, want active at position 0", ex)
	}

	ex, err = svc.UpdateExercise(ctx, ex.ID, ExerciseUpdate{Name: ptr("Back Squats")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ex.Name != "Back Squats" || ex.SetsReps != "3 × 5" {
		t.Errorf("partial update touched other fields: %+v", ex)
	}

	ex, err = svc.RemoveExercise(ctx, ex.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ex.Active {
		t.Error("remove did not deactivate")
	}
	// Soft delete: the row is still there.
	if _, err := db.GetExercise(ctx, ex.ID); err != nil {
		t.Errorf("soft-deleted exercise gone from store: %v", err)
	}

	ex, err = svc.RestoreExercise(ctx, ex.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !ex.Active {
		t.Error("restore did not reactivate")
	}

	if _, err := svc.AddExercise(ctx, "tpl-missing", "X", "1 × 1", false); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("add to unknown template: got %v, want ErrNotFound", err)
	}
}

// TestAdjustExerciseNotation verifies the set/rep bump operations rewrite
// the stored notation.
func TestAdjustExerciseNotation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	putTemplate(t, db, "tpl-a", "A", 0)
	ex := putExercise(t, db, "ex-1", "tpl-a", "Squats", "3 × 8-10", 0, true)

	got, err := svc.AdjustExerciseSets(ctx, ex.ID, 1)
	if err != nil {
		t.Fatalf("adjust sets: %v", err)
	}
	if got.SetsReps != "4 × 8-10" {
		t.Errorf("after +1 set: %q, want 4 × 8-10", got.SetsReps)
	}

	got, err = svc.AdjustExerciseReps(ctx, ex.ID, 2)
	if err != nil {
		t.Fatalf("adjust reps: %v", err)
	}
	if got.SetsReps != "4 × 10-12" {
		t.Errorf("after +2 reps: %q, want 4 × 10-12", got.SetsReps)
	}

	stored, _ := db.GetExercise(ctx, ex.ID)
	if stored.SetsReps != "4 × 10-12" {
		t.Errorf("adjustment not persisted: %q", stored.SetsReps)
	}
}
