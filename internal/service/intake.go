package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

// Entry validation errors. Messages are shown to users as-is.
var (
	ErrInvalidStartDate = errors.New("Data de Início inválida. Use DD/MM/AAAA.")
	ErrInvalidEndDate   = errors.New("Data de Término inválida. Use DD/MM/AAAA.")
	ErrEndBeforeStart   = errors.New("Data de Término não pode ser anterior à Data de Início.")
	ErrInvalidDayCount  = errors.New("Número de Dias de Afastamento inválido.")
)

// NewCertificateID returns a fresh opaque certificate id
func NewCertificateID() string {
	return "cert-" + uuid.NewString()
}

// ResolveEntry turns raw form input into a canonical certificate. The entry is kept on the
// certificate so an edit can reopen it in the same mode.
func ResolveEntry(id string, entry model.Entry) (model.Certificate, error) {
	entry.Start = strings.TrimSpace(entry.Start)
	entry.End = strings.TrimSpace(entry.End)
	entry.Days = strings.TrimSpace(entry.Days)
	if entry.Mode == "" {
		entry.Mode = model.EndDateMode
	}

	start, err := model.ParseDate(entry.Start)
	if err != nil {
		return model.Certificate{}, ErrInvalidStartDate
	}

	var end model.Date
	var days int

	switch entry.Mode {
	case model.DayCountMode:
		days, err = strconv.Atoi(entry.Days)
		if err != nil || days <= 0 {
			return model.Certificate{}, ErrInvalidDayCount
		}
		end = start.AddDays(days - 1)
		entry.End = ""
	default:
		end, err = model.ParseDate(entry.End)
		if err != nil {
			return model.Certificate{}, ErrInvalidEndDate
		}
		if end.Before(start) {
			return model.Certificate{}, ErrEndBeforeStart
		}
		days = start.DaysUntil(end) + 1
		entry.Mode = model.EndDateMode
		entry.Days = ""
	}

	return model.Certificate{
		ID:        id,
		StartDate: start,
		EndDate:   end,
		Days:      days,
		Entry:     &entry,
	}, nil
}

// EntryFor returns the entry a certificate was created from, or an end-date entry
// rebuilt from its dates when none was kept
func EntryFor(c model.Certificate) model.Entry {
	if c.Entry != nil {
		return *c.Entry
	}
	return model.Entry{
		Start: c.StartDate.Format(),
		Mode:  model.EndDateMode,
		End:   c.EndDate.Format(),
	}
}
