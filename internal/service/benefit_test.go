package service

import (
	"strings"
	"testing"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

func summaryWithLeave(start, end string) model.AnalysisSummary {
	s, e := model.MustParseDate(start), model.MustParseDate(end)
	return model.AnalysisSummary{
		LongestContinuousLeave: model.LongestLeave{StartDate: &s, EndDate: &e, TotalDays: s.DaysUntil(e) + 1},
	}
}

func TestAdviseBenefitThreshold(t *testing.T) {
	today := model.MustParseDate("01/03/2024")

	if a := AdviseBenefit(model.AnalysisSummary{}, today); a != nil {
		t.Fatalf("advice for empty summary = %+v", a)
	}
	// exactly 15 days stays with the employer
	if a := AdviseBenefit(summaryWithLeave("01/02/2024", "15/02/2024"), today); a != nil {
		t.Fatalf("advice for 15 days = %+v", a)
	}
	if a := AdviseBenefit(summaryWithLeave("01/02/2024", "16/02/2024"), today); a == nil {
		t.Fatalf("no advice for 16 days")
	}
}

func TestAdviseBenefitLevels(t *testing.T) {
	summary := summaryWithLeave("01/02/2024", "20/02/2024") // deadline 21/03/2024

	tests := []struct {
		today     string
		level     AdviceLevel
		remaining int
		text      string
	}{
		{"01/03/2024", AdviceInfo, 20, "Você tem 20 dias restantes"},
		{"11/03/2024", AdviceUrgent, 10, "Restam apenas 10 dias"},
		{"20/03/2024", AdviceUrgent, 1, "Restam apenas 1 dia para"},
		{"21/03/2024", AdviceUrgent, 0, "Restam apenas 0 dias"},
		{"22/03/2024", AdviceExpired, -1, "expirou em 21/03/2024"},
	}

	for _, tt := range tests {
		a := AdviseBenefit(summary, model.MustParseDate(tt.today))
		if a == nil {
			t.Fatalf("%s: no advice", tt.today)
		}
		if a.Level != tt.level || a.DaysRemaining != tt.remaining {
			t.Fatalf("%s: level=%s remaining=%d, want %s %d", tt.today, a.Level, a.DaysRemaining, tt.level, tt.remaining)
		}
		if a.Deadline != model.MustParseDate("21/03/2024") {
			t.Fatalf("%s: deadline = %s", tt.today, a.Deadline.Format())
		}
		if !strings.Contains(a.Text, tt.text) {
			t.Fatalf("%s: text %q does not contain %q", tt.today, a.Text, tt.text)
		}
	}
}
