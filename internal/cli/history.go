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

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			sessions, err := svc.ListSessionsWithMeta(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && limit < len(sessions) {
				sessions = sessions[:limit]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tWORKOUT\tDONE")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%.0f%%\n",
					s.ID, s.StartedAt.Local().Format("2006-01-02"),
					s.TemplateEmoji, s.TemplateName, s.CompletionRatio*100)
			}
			return w.Flush()
		})
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Show one session's per-set detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			detail, err := svc.SessionDetail(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s — %s\n", detail.Template.Emoji, detail.Template.Name,
				detail.Session.StartedAt.Local().Format("2006-01-02 15:04"))
			if detail.Session.Notes != "" {
				fmt.Printf("notes: %s\n", detail.Session.Notes)
			}
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EXERCISE\tSET\tTARGET\tWEIGHT\tREPS\tDONE")
			for _, ex := range detail.Exercises {
				l, ok := detail.LogsByExercise[ex.ID]
				if !ok {
					continue
				}
				if len(l.Sets) == 0 {
					// Legacy log without set detail.
					fmt.Fprintf(w, "%s\t\t\t%s\t\t%s\n", ex.Name, formatOptFloat(l.WeightUsed), checkmark(l.Completed))
					continue
				}
				for _, set := range l.Sets {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
						ex.Name, set.SetNumber, set.TargetReps,
						formatOptFloat(set.Weight), formatOptInt(set.ActualReps), checkmark(set.Completed))
				}
			}
			return w.Flush()
		})
	},
}

func formatOptFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *f)
}

func formatOptInt(i *int) string {
	if i == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *i)
}

func checkmark(b bool) string {
	if b {
		return "✓"
	}
	return "·"
}

func init() {
	historyCmd.Flags().Int("limit", 0, "show at most this many sessions")
	rootCmd.AddCommand(historyCmd, sessionCmd)
}
