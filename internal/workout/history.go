package workout

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/meltforce/compound/internal/models"
	"github.com/meltforce/compound/internal/storage"
)

// TemplateWithMeta is a template joined with its staleness and size, ready
// for display.
type TemplateWithMeta struct {
	models.Template
	LastDoneAt        *time.Time `json:"lastDoneAt"`
	DaysSinceLastDone *int       `json:"daysSinceLastDone"`
	ExerciseCount     int        `json:"exerciseCount"`
}

// ListTemplatesWithMeta returns every template with days since it was last
// completed and its active exercise count, ordered by staleness: never-done
// templates first (among themselves by manual sort order), then the longest
// untouched: a "what haven't I done in a while" ranking.
func (s *Service) ListTemplatesWithMeta(ctx context.Context) ([]TemplateWithMeta, error) {
	templates, err := s.db.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]TemplateWithMeta, 0, len(templates))
	for _, t := range templates {
		meta := TemplateWithMeta{Template: t}

		last, err := s.db.LastCompletedSession(ctx, t.ID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if err == nil && last.CompletedAt != nil {
			done := *last.CompletedAt
			days := int(now.Sub(done).Hours() / 24)
			meta.LastDoneAt = &done
			meta.DaysSinceLastDone = &days
		}

		exercises, err := s.activeExercises(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		meta.ExerciseCount = len(exercises)

		result = append(result, meta)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.DaysSinceLastDone == nil && b.DaysSinceLastDone == nil:
			return a.SortOrder < b.SortOrder
		case a.DaysSinceLastDone == nil:
			return true
		case b.DaysSinceLastDone == nil:
			return false
		default:
			return *a.DaysSinceLastDone > *b.DaysSinceLastDone
		}
	})

	return result, nil
}

// SessionWithMeta is a completed session joined with its template identity
// and how much of the workout got done.
type SessionWithMeta struct {
	models.Session
	TemplateName    string  `json:"templateName"`
	TemplateEmoji   string  `json:"templateEmoji"`
	CompletionRatio float64 `json:"completionRatio"`
}

// ListSessionsWithMeta returns all completed sessions, most recent first,
// each with the owning template's name/emoji and the ratio of completed
// exercise logs to the template's exercise count. The count includes
// deactivated exercises: their logs still count toward the numerator, so
// soft-deleting an exercise must not push a past session's ratio above 1.
// The denominator is floored at 1 so an emptied template cannot divide by
// zero.
func (s *Service) ListSessionsWithMeta(ctx context.Context) ([]SessionWithMeta, error) {
	sessions, err := s.db.ListCompletedSessions(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := s.db.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	result := make([]SessionWithMeta, 0, len(sessions))
	for _, session := range sessions {
		meta := SessionWithMeta{Session: session, TemplateName: "Unknown", TemplateEmoji: "?"}
		if t, ok := byID[session.TemplateID]; ok {
			meta.TemplateName = t.Name
			meta.TemplateEmoji = t.Emoji
		}

		logs, err := s.db.ListLogsBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		completed := 0
		for _, l := range logs {
			if l.Completed {
				completed++
			}
		}

		exercises, err := s.db.ListExercisesByTemplate(ctx, session.TemplateID)
		if err != nil {
			return nil, err
		}
		total := len(exercises)
		if total < 1 {
			total = 1
		}
		meta.CompletionRatio = float64(completed) / float64(total)

		result = append(result, meta)
	}
	return result, nil
}

// SessionDetail is the single-session join for a detail view.
type SessionDetail struct {
	Session        models.Session
	Template       models.Template
	Exercises      []models.Exercise
	LogsByExercise map[string]models.ExerciseLog
}

// SessionDetail loads one session with its template, the template's
// exercises, and the logs keyed by exercise id. Returns
// storage.ErrNotFound for an unknown session id.
func (s *Service) SessionDetail(ctx context.Context, sessionID string) (*SessionDetail, error) {
	session, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	template, err := s.db.GetTemplate(ctx, session.TemplateID)
	if errors.Is(err, storage.ErrNotFound) {
		template = models.Template{ID: session.TemplateID, Name: "Unknown", Emoji: "?"}
	} else if err != nil {
		return nil, err
	}

	exercises, err := s.db.ListExercisesByTemplate(ctx, session.TemplateID)
	if err != nil {
		return nil, err
	}
	logs, err := s.db.ListLogsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	byExercise := make(map[string]models.ExerciseLog, len(logs))
	for _, l := range logs {
		byExercise[l.ExerciseID] = l
	}

	return &SessionDetail{
		Session:        session,
		Template:       template,
		Exercises:      exercises,
		LogsByExercise: byExercise,
	}, nil
}

// PreviousWeights returns the logs of the template's most recent completed
// session keyed by exercise id, used both for "last: X lbs" display and as
// the suggestion engine's input. An empty map means the template has no
// completed session yet.
func (s *Service) PreviousWeights(ctx context.Context, templateID string) (map[string]models.ExerciseLog, error) {
	last, err := s.db.LastCompletedSession(ctx, templateID)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]models.ExerciseLog{}, nil
	}
	if err != nil {
		return nil, err
	}

	logs, err := s.db.ListLogsBySession(ctx, last.ID)
	if err != nil {
		return nil, err
	}
	byExercise := make(map[string]models.ExerciseLog, len(logs))
	for _, l := range logs {
		byExercise[l.ExerciseID] = l
	}
	return byExercise, nil
}
