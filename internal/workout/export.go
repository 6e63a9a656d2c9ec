package workout

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/meltforce/compound/internal/models"
)

// csvDateLayout is the viewer-locale short numeric date, US style.
const csvDateLayout = "1/2/2006"

// ExportCSV writes the full workout history as CSV: one row per set, or one
// summary row for legacy logs without set detail. Rows are ordered by
// session recency, then the template's exercise order, then set number.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	sessions, err := s.db.ListCompletedSessions(ctx)
	if err != nil {
		return err
	}
	templates, err := s.db.ListTemplates(ctx)
	if err != nil {
		return err
	}
	templateByID := make(map[string]models.Template, len(templates))
	for _, t := range templates {
		templateByID[t.ID] = t
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Workout", "Exercise", "Set", "Weight (lbs)", "Reps", "Completed"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, session := range sessions {
		templateName := "Unknown"
		if t, ok := templateByID[session.TemplateID]; ok {
			templateName = t.Name
		}
		date := session.StartedAt.Local().Format(csvDateLayout)

		exercises, err := s.db.ListExercisesByTemplate(ctx, session.TemplateID)
		if err != nil {
			return err
		}
		logs, err := s.db.ListLogsBySession(ctx, session.ID)
		if err != nil {
			return err
		}
		logByExercise := make(map[string]models.ExerciseLog, len(logs))
		for _, l := range logs {
			logByExercise[l.ExerciseID] = l
		}

		for _, ex := range exercises {
			l, ok := logByExercise[ex.ID]
			if !ok {
				continue
			}

			if len(l.Sets) > 0 {
				for _, set := range l.Sets {
					row := []string{
						date, templateName, ex.Name,
						strconv.Itoa(set.SetNumber),
						formatWeight(set.Weight),
						formatReps(set.ActualReps),
						yesNo(set.Completed),
					}
					if err := cw.Write(row); err != nil {
						return fmt.Errorf("writing csv row: %w", err)
					}
				}
				continue
			}

			// Legacy log without set detail: one summary row, Set/Reps blank.
			row := []string{
				date, templateName, ex.Name,
				"", formatWeight(l.WeightUsed), "",
				yesNo(l.Completed),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}

func formatReps(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
