package service

import (
	"fmt"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
)

const (
	// leaves longer than this are paid by the INSS rather than the employer
	benefitThresholdDays = 15
	// requests filed within this window after the leave ends are paid from day one
	benefitRequestWindowDays = 30
	benefitUrgentDays        = 10
)

// AdviceLevel is how close the benefit request deadline is
type AdviceLevel string

const (
	AdviceInfo    AdviceLevel = "info"
	AdviceUrgent  AdviceLevel = "urgent"
	AdviceExpired AdviceLevel = "expired"
)

// BenefitAdvice tells the user when to request the temporary incapacity benefit
type BenefitAdvice struct {
	Level         AdviceLevel
	Deadline      model.Date
	DaysRemaining int
	Title         string
	Text          string
}

// AdviseBenefit returns advice when the longest continuous leave exceeds 15 days, nil otherwise
func AdviseBenefit(summary model.AnalysisSummary, today model.Date) *BenefitAdvice {
	leave := summary.LongestContinuousLeave
	if leave.EndDate == nil || leave.TotalDays <= benefitThresholdDays {
		return nil
	}

	deadline := leave.EndDate.AddDays(benefitRequestWindowDays)
	remaining := today.DaysUntil(deadline)

	advice := &BenefitAdvice{Deadline: deadline, DaysRemaining: remaining}
	switch {
	case remaining < 0:
		advice.Level = AdviceExpired
		advice.Title = "Prazo Expirado"
		advice.Text = fmt.Sprintf("O prazo de 30 dias para requerer o benefício sem perdas financeiras expirou em %s.", deadline.Format())
	case remaining <= benefitUrgentDays:
		advice.Level = AdviceUrgent
		advice.Title = "Atenção!"
		advice.Text = fmt.Sprintf("Restam apenas %d %s para solicitar o benefício e garantir o pagamento desde o início do afastamento. O prazo final é %s.",
			remaining, pluralDays(remaining), deadline.Format())
	default:
		advice.Level = AdviceInfo
		advice.Title = "Prazo para Solicitação"
		advice.Text = fmt.Sprintf("Você tem %d dias restantes para solicitar o benefício sem perdas financeiras. O prazo para requerimento expira em %s.",
			remaining, deadline.Format())
	}
	return advice
}

func pluralDays(n int) string {
	if n == 1 {
		return "dia"
	}
	return "dias"
}
