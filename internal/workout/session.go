package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/compound/internal/models"
	"github.com/meltforce/compound/internal/storage"
)

// SessionState is the full working state of an in-progress session: the
// session row, its template, the active exercises in display order, and the
// per-exercise logs keyed by exercise id.
type SessionState struct {
	Session   models.Session
	Template  models.Template
	Exercises []models.Exercise
	Logs      map[string]models.ExerciseLog
}

// StartSession begins a new session against a template. Logs are
// pre-created for every active exercise with the previous completed
// session's weight carried in, and the active-session pointer is set so the
// session survives a restart.
func (s *Service) StartSession(ctx context.Context, templateID string) (*SessionState, error) {
	if active, err := s.db.ActiveSessionID(ctx); err != nil {
		return nil, err
	} else if active != "" {
		return nil, fmt.Errorf("session %s: %w", active, ErrSessionActive)
	}

	template, err := s.db.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	previous, err := s.PreviousWeights(ctx, templateID)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		StartedAt:  s.now().UTC(),
	}
	if err := s.db.PutSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.db.SetActiveSessionID(ctx, session.ID); err != nil {
		return nil, err
	}

	exercises, err := s.activeExercises(ctx, templateID)
	if err != nil {
		return nil, err
	}

	logs := make(map[string]models.ExerciseLog, len(exercises))
	for _, ex := range exercises {
		var carryIn *float64
		if prev, ok := previous[ex.ID]; ok {
			carryIn = prev.WeightUsed
		}
		l, err := s.GetOrCreateLog(ctx, session.ID, ex.ID, ex.SetsReps, carryIn)
		if err != nil {
			return nil, err
		}
		logs[ex.ID] = l
	}

	s.log.Info("session started", "session", session.ID, "template", template.Name)
	return &SessionState{Session: session, Template: template, Exercises: exercises, Logs: logs}, nil
}

// Resume loads the in-progress session from the active-session pointer.
// Returns ErrNoActiveSession when nothing is in progress. A pointer left
// behind by a completed session is cleared rather than resumed.
func (s *Service) Resume(ctx context.Context) (*SessionState, error) {
	id, err := s.db.ActiveSessionID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrNoActiveSession
	}

	session, err := s.db.GetSession(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// Dangling pointer, e.g. after a reset raced with an open session.
		if err := s.db.ClearActiveSessionID(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		if err := s.db.ClearActiveSessionID(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNoActiveSession
	}

	template, err := s.db.GetTemplate(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.activeExercises(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}
	logList, err := s.db.ListLogsBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	logs := make(map[string]models.ExerciseLog, len(logList))
	for _, l := range logList {
		logs[l.ExerciseID] = l
	}

	return &SessionState{Session: session, Template: template, Exercises: exercises, Logs: logs}, nil
}

// FinishSession stamps the session's completion time and clears the
// active-session pointer. A completed session is permanent history.
func (s *Service) FinishSession(ctx context.Context, sessionID string) (models.Session, error) {
	session, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if !session.Completed() {
		now := s.now().UTC()
		session.CompletedAt = &now
		if err := s.db.PutSession(ctx, session); err != nil {
			return models.Session{}, err
		}
	}
	if err := s.db.ClearActiveSessionID(ctx); err != nil {
		return models.Session{}, err
	}
	s.log.Info("session finished", "session", session.ID)
	return session, nil
}

// SetSessionNotes replaces the notes of an in-progress session.
func (s *Service) SetSessionNotes(ctx context.Context, sessionID, notes string) (models.Session, error) {
	session, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if session.Completed() {
		return models.Session{}, fmt.Errorf("session %s is completed and immutable", sessionID)
	}
	session.Notes = notes
	if err := s.db.PutSession(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// activeExercises returns the active subset of a template's exercises in
// display order.
func (s *Service) activeExercises(ctx context.Context, templateID string) ([]models.Exercise, error) {
	all, err := s.db.ListExercisesByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	active := make([]models.Exercise, 0, len(all))
	for _, e := range all {
		if e.Active {
			active = append(active, e)
		}
	}
	return active, nil
}
