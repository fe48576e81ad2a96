package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/handlers"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/store"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leave calculator web server",
	Long:  `Start the web server with the leave calculator, the articles and the INSS assistant.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Flag wins over config when given explicitly
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}

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
		assistant := service.NewAssistantClient(service.AssistantConfig{
			APIKey:      cfg.Assistant.APIKey,
			BaseURL:     cfg.Assistant.BaseURL,
			Model:       cfg.Assistant.Model,
			Temperature: cfg.Assistant.Temperature,
			Timeout:     cfg.Assistant.Timeout,
		}, service.NewParser())
		if !assistant.IsConfigured() {
			slog.Warn("assistant API key not set, questions will be refused")
		}

		app := fiber.New(fiber.Config{
			AppName: cfg.Server.AppName,
		})

		app.Use(recover.New())
		app.Use(logger.New())

		handlers.Register(app, handlers.Deps{
			Site:      cfg.Site,
			Articles:  articleStore,
			Assistant: assistant,
			Today: func() model.Date {
				return model.DateOf(time.Now())
			},
		})

		slog.Info("starting server", "port", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
