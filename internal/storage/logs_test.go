package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/meltforce/compound/internal/models"
)

func somePtr[T any](v T) *T { return &v }

// TestExerciseLogRoundTrip verifies that a log with per-set entries reads
// back exactly as written, pointers and timestamps included.
func TestExerciseLogRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	completedAt := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	log := models.ExerciseLog{
		ID:         models.LogID("s-1", "ex-1"),
		SessionID:  "s-1",
		ExerciseID: "ex-1",
		Completed:  true,
		WeightUsed: somePtr(135.0),
		GoUp:       true,
		Sets: []models.SetLog{
			{SetNumber: 1, TargetReps: "8-10", ActualReps: somePtr(10), Weight: somePtr(135.0), Completed: true, CompletedAt: &completedAt},
			{SetNumber: 2, TargetReps: "8-10", Completed: false},
		},
	}
	if err := db.PutExerciseLog(ctx, log); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := db.GetExerciseLog(ctx, "s-1-ex-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, log) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, log)
	}
}

// TestInsertExerciseLogIfAbsent verifies create-if-missing semantics: the
// first insert wins and later attempts leave the stored record untouched.
func TestInsertExerciseLogIfAbsent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := models.ExerciseLog{
		ID: "s-1-ex-1", SessionID: "s-1", ExerciseID: "ex-1",
		Sets: []models.SetLog{{SetNumber: 1, TargetReps: "5"}},
	}
	inserted, err := db.InsertExerciseLogIfAbsent(ctx, first)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !inserted {
		t.Fatal("first insert reported not-inserted")
	}

	second := first
	second.Completed = true
	second.WeightUsed = somePtr(200.0)
	inserted, err = db.InsertExerciseLogIfAbsent(ctx, second)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if inserted {
		t.Error("second insert reported inserted, want no-op")
	}

	got, err := db.GetExerciseLog(ctx, "s-1-ex-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Completed || got.WeightUsed != nil {
		t.Errorf("stored log was overwritten: %+v", got)
	}

	n, err := db.CountLogsForPair(ctx, "s-1", "ex-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("log count = %d, want 1", n)
	}
}

// TestLegacySetsHydration verifies that rows written before per-set tracking
// (NULL sets column) hydrate to an empty, non-nil slice without mutating the
// stored row.
func TestLegacySetsHydration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercise_logs (id, session_id, exercise_id, completed, weight_used, go_up, completed_at, sets)
		 VALUES ('s-1-ex-1', 's-1', 'ex-1', 1, 185, 0, '2026-08-15T09:30:00.000Z', NULL)`)
	if err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	got, err := db.GetExerciseLog(ctx, "s-1-ex-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Sets == nil || len(got.Sets) != 0 {
		t.Errorf("legacy sets = %#v, want empty non-nil slice", got.Sets)
	}
	if got.WeightUsed == nil || *got.WeightUsed != 185 {
		t.Errorf("weight used = %v, want 185", got.WeightUsed)
	}

	// Hydration must be read-only: the column stays NULL.
	var isNull bool
	if err := db.conn.QueryRowContext(ctx,
		`SELECT sets IS NULL FROM exercise_logs WHERE id = 's-1-ex-1'`).Scan(&isNull); err != nil {
		t.Fatalf("check column: %v", err)
	}
	if !isNull {
		t.Error("legacy sets column was rewritten on read")
	}
}

// TestListLogsByExercise verifies the cross-session listing used for
// weight-history lookups.
func TestListLogsByExercise(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, l := range []models.ExerciseLog{
		{ID: "s-1-ex-1", SessionID: "s-1", ExerciseID: "ex-1"},
		{ID: "s-2-ex-1", SessionID: "s-2", ExerciseID: "ex-1"},
		{ID: "s-1-ex-2", SessionID: "s-1", ExerciseID: "ex-2"},
	} {
		if err := db.PutExerciseLog(ctx, l); err != nil {
			t.Fatalf("put %s: %v", l.ID, err)
		}
	}

	logs, err := db.ListLogsByExercise(ctx, "ex-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	for _, l := range logs {
		if l.ExerciseID != "ex-1" {
			t.Errorf("listing leaked log for %s", l.ExerciseID)
		}
	}
}
