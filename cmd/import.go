package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/store"
	"github.com/spf13/cobra"
)

var (
	importDir    string
	importDryRun bool
	importPrune  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import article markdown files into the database",
	Long: `Import parses the article markdown files (YAML front matter plus body),
renders them to HTML, calculates word count and checksum, and stores them in
PostgreSQL with a daily snapshot whenever an article changed.

Examples:
  # Import ./artigos
  ./atestado import

  # Check the files without touching the database
  ./atestado import --dir content/artigos --dry-run

  # Also delete articles whose file no longer exists
  ./atestado import --prune`,
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importDir, "dir", "d", "", "Directory with article markdown files (default from config)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse the files without saving")
	importCmd.Flags().BoolVar(&importPrune, "prune", false, "Delete stored articles that have no file anymore")
}

func runImport(cmd *cobra.Command, args []string) {
	dir := importDir
	if dir == "" {
		dir = cfg.Articles.Dir
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, shutting down")
		cancel()
	}()

	parser := service.NewParser()

	if importDryRun {
		importer := service.NewImporter(parser, nil, true)
		stats, err := importer.Import(ctx, dir)
		if err != nil {
			slog.Error("import failed", "error", err)
			os.Exit(1)
		}
		importer.PrintSummary(stats)
		if stats.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	slog.Info("connecting to database")
	db, err := store.NewDB(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := store.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	articleStore := store.NewArticleStore(db)
	importer := service.NewImporter(parser, articleStore, false)

	slog.Info("starting article import", "dir", dir)
	stats, err := importer.Import(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			slog.Warn("import cancelled")
			os.Exit(1)
		}
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
	importer.PrintSummary(stats)

	// A failed file keeps its stored article, so only prune after a clean run
	if importPrune && stats.Failed == 0 {
		removed, err := articleStore.DeleteMissing(ctx, stats.Slugs)
		if err != nil {
			slog.Error("failed to prune articles", "error", err)
			os.Exit(1)
		}
		slog.Info("pruned articles", "removed", removed)
	}

	// Calculate and store content metrics
	metricsService := service.NewMetricsService(db)
	metrics, err := metricsService.CalculateAndStore(ctx)
	if err != nil {
		slog.Warn("failed to calculate metrics", "error", err)
	} else {
		slog.Info("content metrics",
			"articles", metrics.TotalArticles,
			"words", metrics.TotalWords,
			"authors", metrics.TotalAuthors,
			"average_words", metrics.AverageWords,
			"latest", metrics.LatestArticle,
			"top_author", metrics.TopAuthor,
			"top_author_articles", metrics.TopAuthorTotal,
		)
	}

	if stats.Failed > 0 {
		os.Exit(1)
	}
}
