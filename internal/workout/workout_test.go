package workout

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/meltforce/compound/internal/models"
	"github.com/meltforce/compound/internal/storage"
)

// testClock is the frozen "now" used across tests so date arithmetic is
// deterministic. Mid-day UTC keeps day-boundary math away from rollovers.
var testClock = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

const hour = time.Hour

// newTestService builds a Service over a fresh migrated database with a
// frozen clock and a discarded logger.
func newTestService(t *testing.T) (*Service, *storage.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compound.db")
	if err := storage.RunMigrations(path); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return testClock }
	return svc, db
}

func ptr[T any](v T) *T { return &v }

func putTemplate(t *testing.T, db *storage.DB, id, name string, sortOrder int) models.Template {
	t.Helper()
	tpl := models.Template{
		ID: id, Name: name, Emoji: "🏋️", SortOrder: sortOrder,
		CreatedAt: testClock, UpdatedAt: testClock,
	}
	if err := db.PutTemplate(context.Background(), tpl); err != nil {
		t.Fatalf("put template %s: %v", id, err)
	}
	return tpl
}

func putExercise(t *testing.T, db *storage.DB, id, templateID, name, setsReps string, sortOrder int, active bool) models.Exercise {
	t.Helper()
	ex := models.Exercise{
		ID: id, TemplateID: templateID, Name: name, SetsReps: setsReps,
		IsWeighted: true, SortOrder: sortOrder, Active: active, CreatedAt: testClock,
	}
	if err := db.PutExercise(context.Background(), ex); err != nil {
		t.Fatalf("put exercise %s: %v", id, err)
	}
	return ex
}

// putCompletedSession records a session finished "ago" before the frozen
// clock.
func putCompletedSession(t *testing.T, db *storage.DB, id, templateID string, ago time.Duration) models.Session {
	t.Helper()
	completed := testClock.Add(-ago)
	started := completed.Add(-time.Hour)
	s := models.Session{ID: id, TemplateID: templateID, StartedAt: started, CompletedAt: &completed}
	if err := db.PutSession(context.Background(), s); err != nil {
		t.Fatalf("put session %s: %v", id, err)
	}
	return s
}

func putLog(t *testing.T, db *storage.DB, l models.ExerciseLog) {
	t.Helper()
	if l.ID == "" {
		l.ID = models.LogID(l.SessionID, l.ExerciseID)
	}
	if err := db.PutExerciseLog(context.Background(), l); err != nil {
		t.Fatalf("put log %s: %v", l.ID, err)
	}
}
