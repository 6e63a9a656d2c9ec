// Package cli is the terminal front end: thin cobra commands over the
// workout service. All state lives in the store; commands parse arguments,
// call the service, and print.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/compound/internal/config"
	"github.com/meltforce/compound/internal/storage"
	"github.com/meltforce/compound/internal/workout"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:           "compound",
	Short:         "compound logs workouts from your terminal",
	Long:          "compound is a local-first workout log: define templates, run sessions against them, record per-set weight and reps, and review history. Data lives in a single SQLite file.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. version comes from the build via -ldflags.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")
}

// withService opens the store (fatal if it cannot be opened; there is no
// degraded mode), migrates and seeds it, and hands a ready service to fn.
func withService(fn func(ctx context.Context, svc *workout.Service, db *storage.DB) error) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath())
	if err != nil {
		return err
	}
	path := cfg.Storage.Path
	if dbPath != "" {
		path = dbPath
	}

	log := newLogger(cfg.Log.Level)

	if err := storage.RunMigrations(path); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Seed(ctx); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	return fn(ctx, workout.New(db, log), db)
}

func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return home + "/.compound/config.yaml"
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
