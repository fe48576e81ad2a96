package templates

import (
	"fmt"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/joseluizmed/tempodeatestadonovo2/internal/service"
)

// CalculatorView is everything the calculator page renders
type CalculatorView struct {
	// State is the JSON-encoded certificate collection carried between requests
	State     string
	Form      model.Entry
	EditingID string
	Error     string
	Analysis  model.Analysis
	Advice    *service.BenefitAdvice
}

func (v CalculatorView) mode() model.EntryMode {
	if v.Form.Mode == "" {
		return model.EndDateMode
	}
	return v.Form.Mode
}

var tableColumns = []string{"#", "Início", "Término", "Dias", "Situação", "Ações"}

func rowClass(id, editingID string) string {
	if id == editingID {
		return "border-t bg-blue-50"
	}
	return "border-t"
}

func dayCount(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, "dia", "dias"))
}

// SegmentTooltip describes a segment the way the timeline tooltip shows it
func SegmentTooltip(s model.TimelineSegment) string {
	return fmt.Sprintf("%s - %s (%s, %s)",
		s.StartDate.Format(), s.EndDate.Format(), dayCount(s.DurationDays), s.Kind.Label())
}

func segmentColor(k model.CoverKind) string {
	switch k {
	case model.KindCovered:
		return "bg-green-500"
	case model.KindOverlapping:
		return "bg-yellow-400"
	default:
		return "bg-red-500"
	}
}

func percent(days, total int) float64 {
	return float64(days) / float64(total) * 100
}

func widthStyle(days, total int) string {
	return fmt.Sprintf("width: %.4f%%", percent(days, total))
}

// leaveOutlineStyle positions the longest leave outline over the timeline
func leaveOutlineStyle(a model.Analysis) (string, bool) {
	start, _, ok := a.Span()
	leave := a.Summary.LongestContinuousLeave
	total := a.TotalDays()
	if !ok || leave.StartDate == nil || leave.TotalDays <= 0 || total <= 0 {
		return "", false
	}
	return fmt.Sprintf("left: %.4f%%; width: %.4f%%",
		percent(start.DaysUntil(*leave.StartDate), total), percent(leave.TotalDays, total)), true
}

func adviceBoxClass(level service.AdviceLevel) string {
	switch level {
	case service.AdviceExpired:
		return "border-red-500 bg-red-50 text-red-800"
	case service.AdviceUrgent:
		return "border-yellow-500 bg-yellow-50 text-yellow-800"
	default:
		return "border-blue-500 bg-blue-50 text-blue-800"
	}
}
