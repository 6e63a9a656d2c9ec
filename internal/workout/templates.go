package workout

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/compound/internal/models"
	"github.com/meltforce/compound/internal/notation"
)

// CreateTemplate adds a new empty template at the end of the manual order.
func (s *Service) CreateTemplate(ctx context.Context, name, emoji string) (models.Template, error) {
	existing, err := s.db.ListTemplates(ctx)
	if err != nil {
		return models.Template{}, err
	}
	sortOrder := 0
	for _, t := range existing {
		if t.SortOrder >= sortOrder {
			sortOrder = t.SortOrder + 1
		}
	}

	now := s.now().UTC()
	t := models.Template{
		ID:        uuid.NewString(),
		Name:      name,
		Emoji:     emoji,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.PutTemplate(ctx, t); err != nil {
		return models.Template{}, err
	}
	return t, nil
}

// RenameTemplate changes a template's name in place.
func (s *Service) RenameTemplate(ctx context.Context, id, name string) (models.Template, error) {
	t, err := s.db.GetTemplate(ctx, id)
	if err != nil {
		return models.Template{}, err
	}
	t.Name = name
	t.UpdatedAt = s.now().UTC()
	if err := s.db.PutTemplate(ctx, t); err != nil {
		return models.Template{}, err
	}
	return t, nil
}

// DeleteTemplate hard-deletes a template. History referencing it survives
// and renders with an "Unknown" template.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.db.GetTemplate(ctx, id); err != nil {
		return err
	}
	return s.db.DeleteTemplate(ctx, id)
}

// AddExercise appends a new active exercise to a template.
func (s *Service) AddExercise(ctx context.Context, templateID, name, setsReps string, weighted bool) (models.Exercise, error) {
	if _, err := s.db.GetTemplate(ctx, templateID); err != nil {
		return models.Exercise{}, err
	}
	existing, err := s.db.ListExercisesByTemplate(ctx, templateID)
	if err != nil {
		return models.Exercise{}, err
	}
	sortOrder := 0
	for _, e := range existing {
		if e.SortOrder >= sortOrder {
			sortOrder = e.SortOrder + 1
		}
	}

	e := models.Exercise{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Name:       name,
		SetsReps:   setsReps,
		IsWeighted: weighted,
		SortOrder:  sortOrder,
		Active:     true,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.db.PutExercise(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// ExerciseUpdate is a partial edit to an exercise. Nil fields are left
// unchanged.
type ExerciseUpdate struct {
	Name       *string
	SetsReps   *string
	IsWeighted *bool
	SortOrder  *int
}

// UpdateExercise applies a partial edit via a full read-modify-write.
func (s *Service) UpdateExercise(ctx context.Context, id string, upd ExerciseUpdate) (models.Exercise, error) {
	e, err := s.db.GetExercise(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.SetsReps != nil {
		e.SetsReps = *upd.SetsReps
	}
	if upd.IsWeighted != nil {
		e.IsWeighted = *upd.IsWeighted
	}
	if upd.SortOrder != nil {
		e.SortOrder = *upd.SortOrder
	}
	if err := s.db.PutExercise(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// RemoveExercise soft-deletes an exercise. Its logs remain and the exercise
// can be reactivated later.
func (s *Service) RemoveExercise(ctx context.Context, id string) (models.Exercise, error) {
	e, err := s.db.GetExercise(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	e.Active = false
	if err := s.db.PutExercise(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// RestoreExercise reactivates a soft-deleted exercise.
func (s *Service) RestoreExercise(ctx context.Context, id string) (models.Exercise, error) {
	e, err := s.db.GetExercise(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	e.Active = true
	if err := s.db.PutExercise(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// AdjustExerciseSets bumps the set count in the exercise's notation by
// delta, flooring at one set.
func (s *Service) AdjustExerciseSets(ctx context.Context, id string, delta int) (models.Exercise, error) {
	e, err := s.db.GetExercise(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	e.SetsReps = notation.AdjustSetCount(e.SetsReps, delta)
	if err := s.db.PutExercise(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// AdjustExerciseReps bumps the numeric reps target in the exercise's
// notation by delta. Non-numeric targets ("failure") are left as they are.
func (s *Service) AdjustExerciseReps(ctx context.Context, id string, delta int) (models.Exercise, error) {
	e, err := s.db.GetExercise(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	e.SetsReps = notation.AdjustReps(e.SetsReps, delta)
	if err := s.db.PutExercise(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}
