package workout

import (
	"context"

	"github.com/meltforce/compound/internal/models"
)

// WeightIncrement is the flat suggestion step, in whatever unit the user
// logs (typically pounds). No unit conversion is performed.
const WeightIncrement = 5

// Suggestion is a weight-increase recommendation derived from the previous
// session.
type Suggestion struct {
	PreviousWeight  float64 `json:"previousWeight"`
	SuggestedWeight float64 `json:"suggestedWeight"`
}

// ComputeSuggestions maps exercise ids to suggestions for every previous
// log flagged go-up. The flag is set during one session and consumed during
// the next one for the same template: a deliberate one-step lookback, not a
// trend model. Pure function of the previous session's snapshot.
func ComputeSuggestions(previous map[string]models.ExerciseLog) map[string]Suggestion {
	suggestions := make(map[string]Suggestion)
	for exerciseID, l := range previous {
		if !l.GoUp {
			continue
		}
		prev := 0.0
		if l.WeightUsed != nil {
			prev = *l.WeightUsed
		}
		suggestions[exerciseID] = Suggestion{
			PreviousWeight:  prev,
			SuggestedWeight: prev + WeightIncrement,
		}
	}
	return suggestions
}

// SuggestionsForTemplate computes suggestions from the template's most
// recent completed session.
func (s *Service) SuggestionsForTemplate(ctx context.Context, templateID string) (map[string]Suggestion, error) {
	previous, err := s.PreviousWeights(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return ComputeSuggestions(previous), nil
}
