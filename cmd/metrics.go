package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/store"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the content metrics stored by the last import",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := store.NewDB(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		metrics, err := service.NewMetricsService(db).GetLatestMetrics(context.Background())
		if err != nil {
			slog.Error("failed to load metrics", "error", err)
			os.Exit(1)
		}

		names := make([]string, 0, len(metrics))
		for name := range metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, metrics[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
