package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/meltforce/compound/internal/storage"
	"github.com/meltforce/compound/internal/workout"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List workout templates by staleness",
	Long:  "Lists templates ordered by what you haven't done in a while: never-done templates first, then the longest-untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			templates, err := svc.ListTemplatesWithMeta(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEXERCISES\tLAST DONE")
			for _, t := range templates {
				last := "never"
				if t.DaysSinceLastDone != nil {
					switch d := *t.DaysSinceLastDone; d {
					case 0:
						last = "today"
					case 1:
						last = "1 day ago"
					default:
						last = fmt.Sprintf("%d days ago", d)
					}
				}
				fmt.Fprintf(w, "%s\t%s %s\t%d\t%s\n", t.ID, t.Emoji, t.Name, t.ExerciseCount, last)
			}
			return w.Flush()
		})
	},
}

var templatesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		emoji, _ := cmd.Flags().GetString("emoji")
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			t, err := svc.CreateTemplate(ctx, args[0], emoji)
			if err != nil {
				return err
			}
			fmt.Printf("created template %s (%s)\n", t.Name, t.ID)
			return nil
		})
	},
}

var templatesRenameCmd = &cobra.Command{
	Use:   "rename <template-id> <new-name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			t, err := svc.RenameTemplate(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("renamed to %s\n", t.Name)
			return nil
		})
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("deleting a template is permanent; re-run with --force")
		}
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			if err := svc.DeleteTemplate(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("template deleted")
			return nil
		})
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Show a template's exercises with previous weights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			templateID := args[0]
			template, err := db.GetTemplate(ctx, templateID)
			if err != nil {
				return err
			}
			exercises, err := db.ListExercisesByTemplate(ctx, templateID)
			if err != nil {
				return err
			}
			previous, err := svc.PreviousWeights(ctx, templateID)
			if err != nil {
				return err
			}
			suggestions := workout.ComputeSuggestions(previous)

			fmt.Printf("%s %s\n", template.Emoji, template.Name)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEXERCISE\tSETS×REPS\tLAST\tNEXT")
			for _, ex := range exercises {
				if !ex.Active {
					continue
				}
				last, next := "-", "-"
				if l, ok := previous[ex.ID]; ok && l.WeightUsed != nil {
					last = fmt.Sprintf("%g lbs", *l.WeightUsed)
				}
				if sg, ok := suggestions[ex.ID]; ok {
					next = fmt.Sprintf("%g lbs ↑", sg.SuggestedWeight)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ex.ID, ex.Name, ex.SetsReps, last, next)
			}
			return w.Flush()
		})
	},
}

func init() {
	templatesAddCmd.Flags().String("emoji", "", "emoji tag for the template")
	templatesDeleteCmd.Flags().Bool("force", false, "confirm permanent deletion")
	templatesCmd.AddCommand(templatesAddCmd, templatesRenameCmd, templatesDeleteCmd, templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}
