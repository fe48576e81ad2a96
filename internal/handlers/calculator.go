package handlers

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/templates"
)

// calculatorSession is the page state rebuilt from every request. Nothing is kept server-side.
type calculatorSession struct {
	certs     []model.Certificate
	form      model.Entry
	editingID string
	err       string
}

// apply runs one form action against the session. Actions that target a certificate
// carry its id after a colon, e.g. "remove:cert-123".
func (s *calculatorSession) apply(action string) {
	name, target, _ := strings.Cut(action, ":")
	if name == "" {
		name = "add"
		if s.editingID != "" {
			name = "save"
		}
	}

	switch name {
	case "add":
		cert, err := service.ResolveEntry(service.NewCertificateID(), s.form)
		if err != nil {
			s.err = err.Error()
			return
		}
		s.certs = append(s.certs, cert)
		s.form = model.Entry{Mode: s.form.Mode}

	case "save":
		id := s.editingID
		if id == "" {
			id = service.NewCertificateID()
		}
		cert, err := service.ResolveEntry(id, s.form)
		if err != nil {
			s.err = err.Error()
			return
		}
		if idx := s.indexOf(id); idx >= 0 {
			s.certs[idx] = cert
		} else {
			s.certs = append(s.certs, cert)
		}
		s.editingID = ""
		s.form = model.Entry{Mode: s.form.Mode}

	case "edit":
		if idx := s.indexOf(target); idx >= 0 {
			s.editingID = target
			s.form = service.EntryFor(s.certs[idx])
		}

	case "cancel":
		s.editingID = ""
		s.form = model.Entry{Mode: s.form.Mode}

	case "remove":
		if idx := s.indexOf(target); idx >= 0 {
			s.certs = append(s.certs[:idx], s.certs[idx+1:]...)
		}
		if s.editingID == target {
			s.editingID = ""
			s.form = model.Entry{Mode: s.form.Mode}
		}

	case "reset":
		s.certs = nil
		s.editingID = ""
		s.form = model.Entry{}
	}
}

func (s *calculatorSession) indexOf(id string) int {
	for i, c := range s.certs {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// view analyses the collection from scratch and builds the page model
func (s *calculatorSession) view(today model.Date) templates.CalculatorView {
	certs := s.certs
	if certs == nil {
		certs = []model.Certificate{}
	}
	state, err := json.Marshal(certs)
	if err != nil {
		slog.Error("failed to encode calculator state", "error", err)
		state = []byte("[]")
	}

	analysis := service.Analyze(certs)

	return templates.CalculatorView{
		State:     string(state),
		Form:      s.form,
		EditingID: s.editingID,
		Error:     s.err,
		Analysis:  analysis,
		Advice:    service.AdviseBenefit(analysis.Summary, today),
	}
}

func decodeState(raw string) []model.Certificate {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var certs []model.Certificate
	if err := json.Unmarshal([]byte(raw), &certs); err != nil {
		slog.Warn("discarding unreadable calculator state", "error", err)
		return nil
	}
	return certs
}

func CalculatorHandler(site config.SiteConfig, today func() model.Date) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := &calculatorSession{form: model.Entry{Mode: model.EndDateMode}}
		return render(c, templates.Calculator(site, session.view(today())))
	}
}

func CalculatorActionHandler(site config.SiteConfig, today func() model.Date) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := &calculatorSession{
			certs:     decodeState(c.FormValue("state")),
			editingID: c.FormValue("editing"),
			form: model.Entry{
				Start: c.FormValue("start"),
				Mode:  model.EntryMode(c.FormValue("mode", string(model.EndDateMode))),
				End:   c.FormValue("end"),
				Days:  c.FormValue("days"),
			},
		}
		session.apply(c.FormValue("action"))

		view := session.view(today())
		if isHTMX(c) {
			return render(c, templates.CalculatorPanel(view))
		}
		return render(c, templates.Calculator(site, view))
	}
}
