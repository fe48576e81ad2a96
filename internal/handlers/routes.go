package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/templates"
)

// Deps holds what the routes need
type Deps struct {
	Site      config.SiteConfig
	Articles  ArticleReader
	Assistant Assistant
	Today     func() model.Date
}

// Register mounts every site route on app
func Register(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/", HomeHandler(d.Site, d.Articles))

	// Calculator
	app.Get("/calculadora-de-atestado", CalculatorHandler(d.Site, d.Today))
	app.Post("/calculadora-de-atestado", CalculatorActionHandler(d.Site, d.Today))

	// Articles
	app.Get("/artigos", ArticlesHandler(d.Site, d.Articles))
	app.Get("/artigos/:slug", ArticleDetailHandler(d.Site, d.Articles))

	for _, page := range templates.StaticPages {
		app.Get(page.Path, StaticHandler(d.Site, page))
	}

	// Assistant
	app.Post("/assistente", AssistantFormHandler(d.Assistant))

	api := app.Group("/api")
	api.Post("/analyze", AnalyzeAPIHandler())
	api.Post("/ask-ai", AskAIHandler(d.Assistant))
}
