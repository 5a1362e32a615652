package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kanban-server",
	Short: "Kanban Board API server",
	Long: `Multi-tenant Kanban board API with comments and notifications.

Commands:
  kanban-server serve     Start the HTTP server (default)
  kanban-server migrate   Run database migrations and exit
  kanban-server seed      Create the test users
  kanban-server users     List registered users by group`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		log = logger.SetupDefault(os.Stdout, logger.ParseLevel(cfg.LogLevel))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, usersCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// connect opens the configured database and migrates the schema.
func connect() error {
	if err := database.Connect(cfg); err != nil {
		return err
	}
	return database.Migrate()
}
