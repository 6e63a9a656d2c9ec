package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/meltforce/compound/internal/models"
	"github.com/meltforce/compound/internal/storage"
	"github.com/meltforce/compound/internal/workout"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <template-id>",
	Short: "Start a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.StartSession(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("started %s %s\n\n", state.Template.Emoji, state.Template.Name)
			return printSessionState(ctx, svc, state)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the in-progress session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.Resume(ctx)
			if err == workout.ErrNoActiveSession {
				fmt.Println("no session in progress")
				return nil
			}
			if err != nil {
				return err
			}
			elapsed := time.Since(state.Session.StartedAt).Round(time.Second)
			fmt.Printf("%s %s — %s elapsed\n\n", state.Template.Emoji, state.Template.Name, elapsed)
			return printSessionState(ctx, svc, state)
		})
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <exercise> <set-number>",
	Short: "Record a completed set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var weight *float64
		if cmd.Flags().Changed("weight") {
			v, _ := cmd.Flags().GetFloat64("weight")
			weight = &v
		}
		var reps *int
		if cmd.Flags().Changed("reps") {
			v, _ := cmd.Flags().GetInt("reps")
			reps = &v
		}
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.Resume(ctx)
			if err != nil {
				return err
			}
			ex, err := findExercise(state, args[0])
			if err != nil {
				return err
			}
			setNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("set number must be an integer: %q", args[1])
			}

			l, err := svc.CompleteSet(ctx, models.LogID(state.Session.ID, ex.ID), setNumber, weight, reps)
			if err != nil {
				return err
			}
			if l.Completed {
				fmt.Printf("%s: set %d done — exercise complete\n", ex.Name, setNumber)
			} else {
				fmt.Printf("%s: set %d done\n", ex.Name, setNumber)
			}
			return nil
		})
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <exercise> <set-number>",
	Short: "Edit a pending set's planned weight or target reps",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd workout.SetUpdate
		if cmd.Flags().Changed("weight") {
			v, _ := cmd.Flags().GetFloat64("weight")
			upd.Weight = &v
		}
		if cmd.Flags().Changed("target") {
			v, _ := cmd.Flags().GetString("target")
			upd.TargetReps = &v
		}
		if upd.Weight == nil && upd.TargetReps == nil {
			return fmt.Errorf("nothing to change; pass --weight and/or --target")
		}
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.Resume(ctx)
			if err != nil {
				return err
			}
			ex, err := findExercise(state, args[0])
			if err != nil {
				return err
			}
			setNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("set number must be an integer: %q", args[1])
			}

			if _, err := svc.UpdateSet(ctx, models.LogID(state.Session.ID, ex.ID), setNumber, upd); err != nil {
				return err
			}
			fmt.Printf("%s: set %d updated\n", ex.Name, setNumber)
			return nil
		})
	},
}

var goupCmd = &cobra.Command{
	Use:   "goup <exercise>",
	Short: "Toggle the go-up flag for next session's weight suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.Resume(ctx)
			if err != nil {
				return err
			}
			ex, err := findExercise(state, args[0])
			if err != nil {
				return err
			}
			l, err := svc.ToggleGoUp(ctx, models.LogID(state.Session.ID, ex.ID))
			if err != nil {
				return err
			}
			if l.GoUp {
				fmt.Printf("%s: going up next time\n", ex.Name)
			} else {
				fmt.Printf("%s: go-up cleared\n", ex.Name)
			}
			return nil
		})
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <text>",
	Short: "Set notes on the in-progress session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.Resume(ctx)
			if err != nil {
				return err
			}
			if _, err := svc.SetSessionNotes(ctx, state.Session.ID, strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Println("notes saved")
			return nil
		})
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the in-progress session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			state, err := svc.Resume(ctx)
			if err == workout.ErrNoActiveSession {
				fmt.Println("no session in progress")
				return nil
			}
			if err != nil {
				return err
			}
			session, err := svc.FinishSession(ctx, state.Session.ID)
			if err != nil {
				return err
			}
			fmt.Printf("finished %s %s after %s\n", state.Template.Emoji, state.Template.Name,
				session.CompletedAt.Sub(session.StartedAt).Round(time.Second))
			return nil
		})
	},
}

// findExercise resolves a user-supplied reference against the session's
// exercises: exact id first, then unique case-insensitive name prefix.
func findExercise(state *workout.SessionState, ref string) (models.Exercise, error) {
	for _, ex := range state.Exercises {
		if ex.ID == ref {
			return ex, nil
		}
	}

	lower := strings.ToLower(ref)
	var matches []models.Exercise
	for _, ex := range state.Exercises {
		if strings.HasPrefix(strings.ToLower(ex.Name), lower) {
			matches = append(matches, ex)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Exercise{}, fmt.Errorf("no exercise matches %q in this session", ref)
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return models.Exercise{}, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func printSessionState(ctx context.Context, svc *workout.Service, state *workout.SessionState) error {
	suggestions, err := svc.SuggestionsForTemplate(ctx, state.Template.ID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXERCISE\tSETS\tWEIGHT\tSUGGESTION")
	for _, ex := range state.Exercises {
		l := state.Logs[ex.ID]

		doneSets := 0
		for _, set := range l.Sets {
			if set.Completed {
				doneSets++
			}
		}
		sets := fmt.Sprintf("%d/%d", doneSets, len(l.Sets))
		if l.Completed {
			sets += " ✓"
		}

		weight := "-"
		if l.WeightUsed != nil {
			weight = fmt.Sprintf("%g lbs", *l.WeightUsed)
		} else if len(l.Sets) > 0 && l.Sets[0].Weight != nil {
			weight = fmt.Sprintf("%g lbs (planned)", *l.Sets[0].Weight)
		}

		suggestion := ""
		if sg, ok := suggestions[ex.ID]; ok {
			suggestion = fmt.Sprintf("go up: %g → %g lbs", sg.PreviousWeight, sg.SuggestedWeight)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ex.Name, sets, weight, suggestion)
	}
	return w.Flush()
}

func init() {
	doneCmd.Flags().Float64("weight", 0, "weight used for the set")
	doneCmd.Flags().Int("reps", 0, "reps actually performed")
	planCmd.Flags().Float64("weight", 0, "planned weight")
	planCmd.Flags().String("target", "", "target reps text, e.g. \"8-10\"")
	rootCmd.AddCommand(startCmd, statusCmd, doneCmd, planCmd, goupCmd, notesCmd, finishCmd)
}
