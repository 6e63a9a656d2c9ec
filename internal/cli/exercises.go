package cli

import (
	"context"
	"fmt"

	"github.com/meltforce/compound/internal/storage"
	"github.com/meltforce/compound/internal/workout"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage a template's exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <template-id> <name>",
	Short: "Add an exercise to a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setsReps, _ := cmd.Flags().GetString("sets")
		weighted, _ := cmd.Flags().GetBool("weighted")
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			e, err := svc.AddExercise(ctx, args[0], args[1], setsReps, weighted)
			if err != nil {
				return err
			}
			fmt.Printf("added %s (%s) %s\n", e.Name, e.ID, e.SetsReps)
			return nil
		})
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <exercise-id>",
	Short: "Edit an exercise's name, notation, or flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd workout.ExerciseUpdate
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			upd.Name = &v
		}
		if cmd.Flags().Changed("sets") {
			v, _ := cmd.Flags().GetString("sets")
			upd.SetsReps = &v
		}
		if cmd.Flags().Changed("weighted") {
			v, _ := cmd.Flags().GetBool("weighted")
			upd.IsWeighted = &v
		}
		if cmd.Flags().Changed("order") {
			v, _ := cmd.Flags().GetInt("order")
			upd.SortOrder = &v
		}
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			e, err := svc.UpdateExercise(ctx, args[0], upd)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s: %s\n", e.Name, e.SetsReps)
			return nil
		})
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:   "rm <exercise-id>",
	Short: "Deactivate an exercise (its history is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			e, err := svc.RemoveExercise(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("deactivated %s\n", e.Name)
			return nil
		})
	},
}

var exerciseRestoreCmd = &cobra.Command{
	Use:   "restore <exercise-id>",
	Short: "Reactivate a previously removed exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			e, err := svc.RestoreExercise(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("restored %s\n", e.Name)
			return nil
		})
	},
}

var exerciseAdjustCmd = &cobra.Command{
	Use:   "adjust <exercise-id>",
	Short: "Bump the sets or reps in an exercise's notation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setsDelta, _ := cmd.Flags().GetInt("sets")
		repsDelta, _ := cmd.Flags().GetInt("reps")
		if setsDelta == 0 && repsDelta == 0 {
			return fmt.Errorf("nothing to adjust; pass --sets and/or --reps")
		}
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			id := args[0]
			e, err := db.GetExercise(ctx, id)
			if err != nil {
				return err
			}
			if setsDelta != 0 {
				if e, err = svc.AdjustExerciseSets(ctx, id, setsDelta); err != nil {
					return err
				}
			}
			if repsDelta != 0 {
				if e, err = svc.AdjustExerciseReps(ctx, id, repsDelta); err != nil {
					return err
				}
			}
			fmt.Printf("%s: %s\n", e.Name, e.SetsReps)
			return nil
		})
	},
}

func init() {
	exerciseAddCmd.Flags().String("sets", "3 × 10", "sets×reps notation, e.g. \"3 × 8-10\"")
	exerciseAddCmd.Flags().Bool("weighted", true, "exercise uses weight")
	exerciseEditCmd.Flags().String("name", "", "new name")
	exerciseEditCmd.Flags().String("sets", "", "new sets×reps notation")
	exerciseEditCmd.Flags().Bool("weighted", true, "exercise uses weight")
	exerciseEditCmd.Flags().Int("order", 0, "position within the template")
	exerciseAdjustCmd.Flags().Int("sets", 0, "set count delta, e.g. 1 or -1")
	exerciseAdjustCmd.Flags().Int("reps", 0, "reps delta, e.g. 1 or -1")
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseEditCmd, exerciseRmCmd, exerciseRestoreCmd, exerciseAdjustCmd)
	rootCmd.AddCommand(exerciseCmd)
}
