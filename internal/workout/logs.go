package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/meltforce/compound/internal/models"
	"github.com/meltforce/compound/internal/notation"
	"github.com/meltforce/compound/internal/storage"
)

// GetOrCreateLog returns the log for a (session, exercise) pair, creating it
// if absent. The id is the deterministic composite of the pair, and creation
// goes through a conditional insert, so repeated or concurrent calls cannot
// produce duplicates.
//
// New logs get one pending set per parsed set count, each with the target
// reps from the notation and carryInWeight as the planned weight. A legacy
// log stored without set detail is returned with sets re-derived from the
// notation when one is supplied, in the snapshot only, never written back.
func (s *Service) GetOrCreateLog(ctx context.Context, sessionID, exerciseID, setsReps string, carryInWeight *float64) (models.ExerciseLog, error) {
	id := models.LogID(sessionID, exerciseID)

	existing, err := s.db.GetExerciseLog(ctx, id)
	if err == nil {
		return repairSets(existing, setsReps, carryInWeight), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.ExerciseLog{}, err
	}

	l := models.ExerciseLog{
		ID:         id,
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		Sets:       buildSets(setsReps, carryInWeight),
	}
	inserted, err := s.db.InsertExerciseLogIfAbsent(ctx, l)
	if err != nil {
		return models.ExerciseLog{}, err
	}
	if !inserted {
		// Lost the race; the winner's record is authoritative.
		existing, err := s.db.GetExerciseLog(ctx, id)
		if err != nil {
			return models.ExerciseLog{}, err
		}
		return repairSets(existing, setsReps, carryInWeight), nil
	}
	return l, nil
}

// CompleteSet records weight and actual reps for one set and marks it done,
// then recomputes the log-level summary: completed is the AND over all sets,
// weightUsed is the weight of the completed set with the highest position,
// and completedAt is stamped when the whole log transitions to complete.
// A nil weight keeps the set's planned weight, the way a prefilled input
// submits unchanged.
func (s *Service) CompleteSet(ctx context.Context, logID string, setNumber int, weight *float64, actualReps *int) (models.ExerciseLog, error) {
	l, err := s.db.GetExerciseLog(ctx, logID)
	if err != nil {
		return models.ExerciseLog{}, err
	}

	idx := setIndex(l.Sets, setNumber)
	if idx < 0 {
		return models.ExerciseLog{}, fmt.Errorf("log %s set %d: %w", logID, setNumber, ErrSetNotFound)
	}

	if weight == nil {
		weight = l.Sets[idx].Weight
	}

	now := s.now().UTC()
	l.Sets[idx].Weight = weight
	l.Sets[idx].ActualReps = actualReps
	l.Sets[idx].Completed = true
	l.Sets[idx].CompletedAt = &now

	l.Completed = true
	for _, set := range l.Sets {
		if !set.Completed {
			l.Completed = false
			break
		}
	}

	// Highest array position among completed sets wins, falling back to the
	// weight just supplied.
	l.WeightUsed = weight
	for i := len(l.Sets) - 1; i >= 0; i-- {
		if l.Sets[i].Completed {
			l.WeightUsed = l.Sets[i].Weight
			break
		}
	}

	if l.Completed && l.CompletedAt == nil {
		l.CompletedAt = &now
	}

	if err := s.db.PutExerciseLog(ctx, l); err != nil {
		return models.ExerciseLog{}, err
	}
	return l, nil
}

// SetUpdate is a partial edit to a pending set. Nil fields are left
// unchanged.
type SetUpdate struct {
	Weight     *float64
	TargetReps *string
}

// UpdateSet edits the planned weight or target reps of a not-yet-completed
// set.
func (s *Service) UpdateSet(ctx context.Context, logID string, setNumber int, upd SetUpdate) (models.ExerciseLog, error) {
	l, err := s.db.GetExerciseLog(ctx, logID)
	if err != nil {
		return models.ExerciseLog{}, err
	}

	idx := setIndex(l.Sets, setNumber)
	if idx < 0 {
		return models.ExerciseLog{}, fmt.Errorf("log %s set %d: %w", logID, setNumber, ErrSetNotFound)
	}
	if l.Sets[idx].Completed {
		return models.ExerciseLog{}, fmt.Errorf("log %s set %d: %w", logID, setNumber, ErrSetCompleted)
	}

	if upd.Weight != nil {
		l.Sets[idx].Weight = upd.Weight
	}
	if upd.TargetReps != nil {
		l.Sets[idx].TargetReps = *upd.TargetReps
	}

	if err := s.db.PutExerciseLog(ctx, l); err != nil {
		return models.ExerciseLog{}, err
	}
	return l, nil
}

// ToggleGoUp flips the flag marking this exercise for a weight increase in
// its next session.
func (s *Service) ToggleGoUp(ctx context.Context, logID string) (models.ExerciseLog, error) {
	l, err := s.db.GetExerciseLog(ctx, logID)
	if err != nil {
		return models.ExerciseLog{}, err
	}
	l.GoUp = !l.GoUp
	if err := s.db.PutExerciseLog(ctx, l); err != nil {
		return models.ExerciseLog{}, err
	}
	return l, nil
}

func setIndex(sets []models.SetLog, setNumber int) int {
	for i, set := range sets {
		if set.SetNumber == setNumber {
			return i
		}
	}
	return -1
}

func buildSets(setsReps string, carryInWeight *float64) []models.SetLog {
	if setsReps == "" {
		return []models.SetLog{}
	}
	sr := notation.Parse(setsReps)
	sets := make([]models.SetLog, sr.SetCount)
	for i := range sets {
		sets[i] = models.SetLog{SetNumber: i + 1, TargetReps: sr.TargetReps}
		if carryInWeight != nil {
			w := *carryInWeight
			sets[i].Weight = &w
		}
	}
	return sets
}

func repairSets(l models.ExerciseLog, setsReps string, carryInWeight *float64) models.ExerciseLog {
	if len(l.Sets) == 0 && setsReps != "" {
		l.Sets = buildSets(setsReps, carryInWeight)
	}
	return l
}
