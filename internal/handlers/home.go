package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/templates"
)

const recentArticleCount = 3

func HomeHandler(site config.SiteConfig, articles ArticleReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		metrics := templates.HomeMetrics{}

		// The home page still renders when article data is unavailable
		totalArticles, err := articles.CountArticles(ctx)
		if err != nil {
			slog.Error("failed to count articles", "error", err)
		} else {
			metrics.TotalArticles = totalArticles
			metrics.HasData = totalArticles > 0
		}

		if metrics.HasData {
			totalWords, err := articles.GetTotalWordCount(ctx)
			if err != nil {
				slog.Error("failed to get total word count", "error", err)
			} else {
				metrics.TotalWords = totalWords
			}
		}

		recent, err := articles.GetRecent(ctx, recentArticleCount)
		if err != nil {
			slog.Error("failed to load recent articles", "error", err)
		}

		return render(c, templates.Home(site, metrics, recent))
	}
}
