package cmd

import (
	"log/slog"
	"os"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := store.NewDB(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := store.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		slog.Info("database is up to date")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
