package handlers

import (
	"context"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

// ArticleReader is the read side of the article store used by the pages
type ArticleReader interface {
	GetAllSorted(ctx context.Context, sortBy, order string) ([]model.Article, error)
	GetRecent(ctx context.Context, limit int) ([]model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	GetSnapshots(ctx context.Context, slug string) ([]model.ArticleSnapshot, error)
	CountArticles(ctx context.Context) (int, error)
	GetTotalWordCount(ctx context.Context) (int, error)
}

// Assistant answers user questions
type Assistant interface {
	Ask(ctx context.Context, question, contextTitle string) (string, error)
}

func render(c *fiber.Ctx, page templ.Component) error {
	handler := adaptor.HTTPHandler(templ.Handler(page))
	return handler(c)
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}
