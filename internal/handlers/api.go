package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/templates"
)

const assistantFailureMessage = "Ocorreu um erro ao processar sua pergunta. Tente novamente."

// analyzeRequest keeps dates as strings so one bad date drops a certificate instead of the whole request
type analyzeRequest struct {
	Certificates []struct {
		ID        string `json:"id"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Days      int    `json:"days"`
	} `json:"certificates"`
}

func (r analyzeRequest) certificates() []model.Certificate {
	certs := make([]model.Certificate, 0, len(r.Certificates))
	for _, c := range r.Certificates {
		certs = append(certs, model.Certificate{
			ID:        c.ID,
			StartDate: parseOrZero(c.StartDate),
			EndDate:   parseOrZero(c.EndDate),
			Days:      c.Days,
		})
	}
	return certs
}

func parseOrZero(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}
	}
	return d
}

type askRequest struct {
	Question     string `json:"question"`
	ContextTitle string `json:"contextTitle"`
}

func AnalyzeAPIHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req analyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido."})
		}
		return c.JSON(service.Analyze(req.certificates()))
	}
}

func AskAIHandler(assistant Assistant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": service.ErrEmptyQuestion.Error()})
		}

		answer, err := assistant.Ask(c.UserContext(), req.Question, req.ContextTitle)
		if err != nil {
			status, msg := assistantError(err)
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}
		return c.JSON(fiber.Map{"answer": answer})
	}
}

// AssistantFormHandler answers the HTMX assistant box with an HTML fragment.
// Errors are rendered into the fragment with a 200 so htmx swaps them in.
func AssistantFormHandler(assistant Assistant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		answer, err := assistant.Ask(c.UserContext(), c.FormValue("question"), c.FormValue("contextTitle"))
		if err != nil {
			_, msg := assistantError(err)
			return render(c, templates.AssistantAnswer("", msg))
		}
		return render(c, templates.AssistantAnswer(answer, ""))
	}
}

func assistantError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyQuestion):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrAssistantUnavailable):
		return fiber.StatusServiceUnavailable, err.Error()
	default:
		slog.Error("assistant request failed", "error", err)
		return fiber.StatusInternalServerError, assistantFailureMessage
	}
}
