package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/templates"
)

func ArticlesHandler(site config.SiteConfig, articles ArticleReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		sortBy := c.Query("sort", "date")
		order := c.Query("order", "desc")

		list, err := articles.GetAllSorted(ctx, sortBy, order)
		if err != nil {
			slog.Error("failed to load articles", "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Erro ao carregar artigos")
		}

		// Check if this is an HTMX request for just the grid
		if isHTMX(c) {
			return render(c, templates.ArticleGrid(list))
		}

		return render(c, templates.Articles(site, list, sortBy, order))
	}
}

func ArticleDetailHandler(site config.SiteConfig, articles ArticleReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		slug := c.Params("slug")

		article, err := articles.GetBySlug(ctx, slug)
		if err != nil {
			slog.Error("failed to load article", "slug", slug, "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Erro ao carregar artigo")
		}
		if article == nil {
			return c.Status(fiber.StatusNotFound).SendString("Artigo não encontrado")
		}

		snapshots, err := articles.GetSnapshots(ctx, slug)
		if err != nil {
			slog.Warn("failed to load article history", "slug", slug, "error", err)
		}

		return render(c, templates.ArticleDetail(site, article, snapshots))
	}
}
