package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

// ImportStats tracks import statistics
type ImportStats struct {
	Total     int
	Imported  int
	Changed   int
	Unchanged int
	Skipped   int
	Failed    int
	// Slugs lists every article parsed, whether or not it changed
	Slugs []string
}

// ArticleWriter persists parsed articles
type ArticleWriter interface {
	SaveArticleWithSnapshot(ctx context.Context, a *model.Article, snapshotDate time.Time) (changed bool, err error)
}

// Importer loads article markdown files into the article store
type Importer struct {
	parser *Parser
	store  ArticleWriter
	dryRun bool
	logger *slog.Logger
}

// NewImporter creates a new Importer. A nil store is only valid for dry runs.
func NewImporter(parser *Parser, store ArticleWriter, dryRun bool) *Importer {
	return &Importer{
		parser: parser,
		store:  store,
		dryRun: dryRun,
		logger: slog.Default().With("component", "importer"),
	}
}

// Import parses every *.md file in dir and saves it. The file name without extension is the slug.
func (i *Importer) Import(ctx context.Context, dir string) (*ImportStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read article directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	stats := &ImportStats{Total: len(names)}
	snapshotDate := time.Now().UTC().Truncate(24 * time.Hour)

	for idx, name := range names {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		progress := fmt.Sprintf("[%d/%d]", idx+1, stats.Total)

		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".md") {
			i.logger.Debug("skipping file", "progress", progress, "file", name)
			stats.Skipped++
			continue
		}

		slug := strings.TrimSuffix(name, filepath.Ext(name))
		if err := i.importFile(ctx, filepath.Join(dir, name), slug, snapshotDate, stats); err != nil {
			i.logger.Error("failed to import article", "progress", progress, "slug", slug, "error", err)
			stats.Failed++
			continue
		}

		i.logger.Info("imported article", "progress", progress, "slug", slug)
		stats.Imported++
	}

	return stats, nil
}

func (i *Importer) importFile(ctx context.Context, path, slug string, snapshotDate time.Time, stats *ImportStats) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	article, err := i.parser.Parse(slug, content)
	if err != nil {
		return err
	}

	stats.Slugs = append(stats.Slugs, slug)

	if i.dryRun {
		i.logger.Info("dry run", "slug", slug, "title", article.Title, "words", article.WordCount)
		stats.Unchanged++
		return nil
	}

	changed, err := i.store.SaveArticleWithSnapshot(ctx, article, snapshotDate)
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	if changed {
		stats.Changed++
	} else {
		stats.Unchanged++
	}
	return nil
}

// PrintSummary logs the import statistics
func (i *Importer) PrintSummary(stats *ImportStats) {
	i.logger.Info("import complete",
		"total", stats.Total,
		"imported", stats.Imported,
		"changed", stats.Changed,
		"unchanged", stats.Unchanged,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
}
