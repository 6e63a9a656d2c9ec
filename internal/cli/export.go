package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/meltforce/compound/internal/storage"
	"github.com/meltforce/compound/internal/workout"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := svc.ExportCSV(ctx, w); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(os.Stderr, "exported to %s\n", out)
			}
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data and reseed the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("this erases every template, session, and log; re-run with --force")
		}
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			if err := db.Reset(ctx); err != nil {
				return err
			}
			if err := db.Seed(ctx); err != nil {
				return err
			}
			fmt.Println("store reset; defaults reseeded")
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().String("out", "", "write CSV to this file instead of stdout")
	resetCmd.Flags().Bool("force", false, "confirm full data reset")
	rootCmd.AddCommand(exportCmd, resetCmd)
}
