package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/templates"
)

func StaticHandler(site config.SiteConfig, page templates.StaticPage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, templates.Static(site, page))
	}
}
