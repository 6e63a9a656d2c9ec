// Package workout implements the domain logic over the record store:
// session lifecycle, per-set exercise logging, progressive-overload
// suggestions, and the read-only history aggregations.
package workout

import (
	"errors"
	"log/slog"
	"time"

	"github.com/meltforce/compound/internal/storage"
)

var (
	// ErrNoActiveSession is returned by Resume when no session is in
	// progress.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionActive is returned by StartSession while another session is
	// still in progress; at most one session may be active system-wide.
	ErrSessionActive = errors.New("a session is already active")

	// ErrSetNotFound means a mutator referenced a set number that does not
	// exist in the log. That is a caller bug, not a user-facing condition.
	ErrSetNotFound = errors.New("set not found")

	// ErrSetCompleted means an edit targeted a set that has already been
	// completed. Completed sets are immutable.
	ErrSetCompleted = errors.New("set already completed")
)

// Service holds dependencies for workout operations.
type Service struct {
	db  *storage.DB
	log *slog.Logger
	now func() time.Time
}

// New creates a Service over the given store.
func New(db *storage.DB, log *slog.Logger) *Service {
	return &Service{db: db, log: log, now: time.Now}
}
