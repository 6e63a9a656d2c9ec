package storage

import (
	"context"
	"testing"
)

// TestSeedPopulatesDefaults verifies that seeding a fresh store creates the
// four starter templates with their exercises in order.
func TestSeedPopulatesDefaults(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	templates, err := db.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(templates) != 4 {
		t.Fatalf("got %d templates, want 4", len(templates))
	}
	if templates[0].ID != "tpl-leg" || templates[3].ID != "tpl-recovery" {
		t.Errorf("template order = [%s ... %s], want tpl-leg first, tpl-recovery last",
			templates[0].ID, templates[3].ID)
	}

	exs, err := db.ListExercisesByTemplate(ctx, "tpl-upper")
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(exs) != 4 {
		t.Fatalf("tpl-upper has %d exercises, want 4", len(exs))
	}
	if exs[2].Name != "Push-Ups" || exs[2].SetsReps != "3 × failure" {
		t.Errorf("exercise 3 = %+v, want Push-Ups with notation 3 × failure", exs[2])
	}
}

// TestSeedIsIdempotent verifies that seeding never duplicates or overwrites
// user data: a second seed on a populated store is a no-op.
func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	// User edits a seeded template; re-seeding must not revert it.
	tpl, err := db.GetTemplate(ctx, "tpl-leg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	tpl.Name = "Heavy Legs"
	if err := db.PutTemplate(ctx, tpl); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	n, err := db.CountTemplates(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Errorf("template count after re-seed = %d, want 4", n)
	}
	got, err := db.GetTemplate(ctx, "tpl-leg")
	if err != nil {
		t.Fatalf("get after re-seed: %v", err)
	}
	if got.Name != "Heavy Legs" {
		t.Errorf("re-seed reverted template name to %q", got.Name)
	}
}

// TestSeedAfterReset verifies the reset-then-seed cycle used by the reset
// command restores the defaults.
func TestSeedAfterReset(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := db.Seed(ctx); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	n, err := db.CountTemplates(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Errorf("template count = %d, want 4", n)
	}
}
