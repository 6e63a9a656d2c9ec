package cli

import (
	"context"

	"github.com/meltforce/compound/internal/mcp"
	"github.com/meltforce/compound/internal/storage"
	"github.com/meltforce/compound/internal/workout"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the workout log over MCP on stdin/stdout",
	Long:  "Runs a Model Context Protocol server exposing read-only tools over the local workout data, for use by AI assistants on this machine.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *workout.Service, db *storage.DB) error {
			return mcp.ServeStdio(mcp.New(svc, rootCmd.Version, newLogger("warn")))
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
